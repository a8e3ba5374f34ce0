package covenant

import (
	"github.com/pkg/errors"
	"github.com/spacechains/covchain/domain/externalapi"
	"github.com/spacechains/covchain/domain/ruleerrors"
	"github.com/spacechains/covchain/domain/utils/consensushashing"
	"github.com/spacechains/covchain/domain/utils/serialization"
	"github.com/spacechains/covchain/domain/utils/scripts"
)

// Engine regenerates a covenant chain from its Params. An Engine holds no
// mutable state and may be used from multiple goroutines.
type Engine struct {
	params             Params
	covenantScript     []byte
	covenantLockScript []byte
	feeBumpLockScript  []byte
}

// New returns an Engine for params.
func New(params Params) (*Engine, error) {
	err := params.Validate()
	if err != nil {
		return nil, err
	}

	covenantScript, err := scripts.CovenantScript(params.Signer.PublicKey())
	if err != nil {
		return nil, ruleerrors.Wrap(ruleerrors.ErrSignerFailure, err)
	}
	covenantLockScript, err := scripts.PayToScriptHashScript(covenantScript)
	if err != nil {
		return nil, err
	}
	feeBumpLockScript, err := scripts.PayToScriptHashScript(scripts.FeeBumpScript())
	if err != nil {
		return nil, err
	}

	return &Engine{
		params:             params,
		covenantScript:     covenantScript,
		covenantLockScript: covenantLockScript,
		feeBumpLockScript:  feeBumpLockScript,
	}, nil
}

// Params returns the parameters the engine was built with.
func (e *Engine) Params() Params {
	return e.params
}

// CovenantScript returns the unwrapped covenant script that every chain
// output is locked to.
func (e *Engine) CovenantScript() []byte {
	return append([]byte(nil), e.covenantScript...)
}

// CovenantAddress returns the pay-to-script-hash address of the covenant
// under the given address version byte. The chain is funded by paying
// StartValue to this address.
func (e *Engine) CovenantAddress(version byte) string {
	return scripts.ScriptToAddress(e.covenantScript, version)
}

// BuildStep builds and signs the chain transaction that spends prev, an
// output of prevValue locked to the covenant. The transaction has one input
// with a relative lock time of one block, a continuation output worth
// prevValue - StepCost re-locked to the covenant, and a dust output that
// anyone can spend to bump the fee.
func (e *Engine) BuildStep(prev externalapi.Outpoint, prevValue uint64) (*externalapi.Transaction, error) {
	if prevValue < e.params.StepCost {
		return nil, ruleerrors.Errorf(ruleerrors.ErrInsufficientFunds,
			"cannot spend %s: need %d, have %d", prev, e.params.StepCost, prevValue)
	}

	tx := &externalapi.Transaction{
		Version: chainTxVersion,
		Inputs: []externalapi.Input{{
			PreviousOutpoint: prev,
			Sequence:         1,
		}},
		Outputs: []externalapi.Output{
			{
				Value:      prevValue - e.params.StepCost,
				LockScript: append([]byte(nil), e.covenantLockScript...),
			},
			{
				Value:      e.params.DustValue,
				LockScript: append([]byte(nil), e.feeBumpLockScript...),
			},
		},
		LockTime: 0,
	}

	err := e.sign(tx, 0)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// sign signs input idx against the unwrapped covenant script and sets its
// unlock script to <signature> <covenant script>.
func (e *Engine) sign(tx *externalapi.Transaction, idx int) error {
	preimage, err := consensushashing.SignaturePreimage(tx, idx, e.covenantScript)
	if err != nil {
		return err
	}

	signature, err := e.params.Signer.Sign(preimage)
	if err != nil {
		if errors.Is(err, ruleerrors.ErrSignerFailure) {
			return err
		}
		return ruleerrors.Wrap(ruleerrors.ErrSignerFailure, err)
	}
	signature = append(signature, byte(consensushashing.SigHashAll))

	unlockScript := serialization.LengthPrefixed(signature)
	unlockScript = append(unlockScript, serialization.LengthPrefixed(e.covenantScript)...)
	tx.Inputs[idx].UnlockScript = unlockScript

	return serialization.UpdateTransactionID(tx)
}
