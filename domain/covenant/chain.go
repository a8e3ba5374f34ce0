package covenant

import (
	"github.com/spacechains/covchain/domain/externalapi"
	"github.com/spacechains/covchain/domain/ruleerrors"
	"github.com/spacechains/covchain/domain/utils/serialization"
	"github.com/spacechains/covchain/infrastructure/logger"
)

// GenerateSequence returns the encodings of the first steps transactions of
// the chain. It fails up front with ErrInsufficientFunds if StartValue
// cannot pay for all of them.
func (e *Engine) GenerateSequence(steps uint64) ([]string, error) {
	onEnd := logger.LogAndMeasureExecutionTime(log, "GenerateSequence")
	defer onEnd()

	if steps != 0 && e.params.StartValue/steps < e.params.StepCost {
		return nil, ruleerrors.Errorf(ruleerrors.ErrInsufficientFunds,
			"generating %d transactions requires %d, have %d",
			steps, e.params.StepCost*steps, e.params.StartValue)
	}

	sequence := make([]string, 0, steps)
	outpoint := e.params.StartOutpoint
	value := e.params.StartValue
	for i := uint64(0); i < steps; i++ {
		tx, err := e.BuildStep(outpoint, value)
		if err != nil {
			return nil, err
		}
		txHex, err := serialization.EncodeTransaction(tx)
		if err != nil {
			return nil, err
		}
		sequence = append(sequence, txHex)
		log.Tracef("Generated chain step %d: %s", i, tx.ID)

		outpoint = externalapi.Outpoint{TransactionID: tx.ID, Index: 0}
		value -= e.params.StepCost
	}
	return sequence, nil
}

// AdvanceTo regenerates the chain from its start until it produces a
// transaction whose ID is target, and returns the step that follows it.
// It scans at most MaxSteps steps, so a match on the last scanned step
// is reported as ErrTargetNotFound. Running out of funds before the step
// that follows a match is also ErrTargetNotFound.
func (e *Engine) AdvanceTo(target externalapi.DomainHash) (string, externalapi.DomainHash, error) {
	onEnd := logger.LogAndMeasureExecutionTime(log, "AdvanceTo")
	defer onEnd()

	outpoint := e.params.StartOutpoint
	value := e.params.StartValue
	foundTarget := false
	for step := uint64(0); step < e.params.MaxSteps; step++ {
		if value < e.params.StepCost {
			if foundTarget {
				return "", externalapi.DomainHash{}, ruleerrors.Errorf(ruleerrors.ErrTargetNotFound,
					"chain funds ran out after %s at step %d, no step follows it", target, step-1)
			}
			return "", externalapi.DomainHash{}, ruleerrors.Errorf(ruleerrors.ErrTargetNotFound,
				"chain funds ran out after %d steps without reaching %s", step, target)
		}

		tx, err := e.BuildStep(outpoint, value)
		if err != nil {
			return "", externalapi.DomainHash{}, err
		}

		if foundTarget {
			txHex, err := serialization.EncodeTransaction(tx)
			if err != nil {
				return "", externalapi.DomainHash{}, err
			}
			log.Debugf("Chain step %d follows %s: %s", step, target, tx.ID)
			return txHex, tx.ID, nil
		}
		if tx.ID == target {
			log.Debugf("Found %s at chain step %d", target, step)
			foundTarget = true
		}

		outpoint = externalapi.Outpoint{TransactionID: tx.ID, Index: 0}
		value -= e.params.StepCost
	}

	return "", externalapi.DomainHash{}, ruleerrors.Errorf(ruleerrors.ErrTargetNotFound,
		"%s is not followed by a step within the first %d chain steps", target, e.params.MaxSteps)
}
