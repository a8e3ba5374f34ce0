package covenant

import (
	"github.com/spacechains/covchain/domain/externalapi"
	"github.com/spacechains/covchain/domain/ruleerrors"
)

// DefaultMaxSteps bounds chain scans to one year of ten-minute blocks.
const DefaultMaxSteps = 52560

// Default chain economics. Every step spends DefaultDustValue into the
// fee-bump output and leaves DefaultFeeValue to miners.
const (
	DefaultDustValue = 800
	DefaultFeeValue  = 1200
	DefaultStepCost  = DefaultDustValue + DefaultFeeValue
)

// chainTxVersion is the lowest transaction version that enforces relative
// lock times.
const chainTxVersion = 2

// Signer produces signatures for chain transactions.
//
// Implementations MUST be deterministic: signing the same message with the
// same key must always produce the same signature. The chain is never
// stored, and every position in it is recomputed from the starting output,
// so a randomized signer would yield a different chain on every run.
type Signer interface {
	// Sign double hashes message and signs the digest, returning a DER
	// encoded signature without a hash type byte.
	Sign(message []byte) ([]byte, error)

	// PublicKey returns the serialized public key that verifies Sign's
	// signatures.
	PublicKey() []byte
}

// Params defines a covenant chain. Two engines built from equal params
// produce identical chains.
type Params struct {
	Signer Signer

	// StartOutpoint is the funding output spent by the first chain step.
	StartOutpoint externalapi.Outpoint

	// StartValue is the value of StartOutpoint.
	StartValue uint64

	// StepCost is the value each step removes from the continuation output.
	// It must equal DustValue + FeeValue.
	StepCost uint64

	// DustValue is the value of each step's fee-bump output.
	DustValue uint64

	// FeeValue is the fee each step leaves for miners.
	FeeValue uint64

	// MaxSteps bounds the number of steps AdvanceTo regenerates.
	MaxSteps uint64
}

// Validate returns ErrInvalidParams if p cannot produce a valid chain.
func (p *Params) Validate() error {
	if p.Signer == nil {
		return ruleerrors.Errorf(ruleerrors.ErrInvalidParams, "a signer is required")
	}
	if p.DustValue == 0 {
		return ruleerrors.Errorf(ruleerrors.ErrInvalidParams, "the dust value must be positive")
	}
	if p.StepCost != p.DustValue+p.FeeValue {
		return ruleerrors.Errorf(ruleerrors.ErrInvalidParams,
			"step cost %d does not equal dust value %d plus fee value %d", p.StepCost, p.DustValue, p.FeeValue)
	}
	if p.MaxSteps == 0 {
		return ruleerrors.Errorf(ruleerrors.ErrInvalidParams, "max steps must be positive")
	}
	return nil
}
