package config

import (
	"github.com/pkg/errors"
	"github.com/spacechains/covchain/domain/covenant"
	"github.com/spacechains/covchain/domain/externalapi"
)

// Defaults of the signet deployment the chain was first published on.
const (
	defaultKey        = "eb445ec7e0fd814db1e84622cddad9cd30154ee22bc6c2a4a61f6287be39f2d2"
	defaultStartTxID  = "60c31751818bd4410eed84b1c9047863206cce2c7d4d610ce5841c4195ba6c3b"
	defaultStartVout  = 1
	defaultStartValue = 100000
)

// ChainFlags holds the parameters that define a covenant chain.
type ChainFlags struct {
	Key        string `long:"key" description:"Hex encoded private key that signs the chain" default-mask:"-"`
	StartTxID  string `long:"start-txid" description:"ID of the transaction holding the chain's funding output"`
	StartVout  uint32 `long:"start-vout" description:"Index of the chain's funding output"`
	StartValue uint64 `long:"start-value" description:"Value of the chain's funding output in satoshis"`
	StepCost   uint64 `long:"step-cost" description:"Value each chain step consumes; must equal dust-value plus fee-value"`
	DustValue  uint64 `long:"dust-value" description:"Value of each step's fee-bump output"`
	FeeValue   uint64 `long:"fee-value" description:"Fee each step leaves for miners"`
	MaxSteps   uint64 `long:"max-steps" description:"Maximum number of steps scanned when searching the chain"`
}

func defaultChainFlags() ChainFlags {
	return ChainFlags{
		Key:        defaultKey,
		StartTxID:  defaultStartTxID,
		StartVout:  defaultStartVout,
		StartValue: defaultStartValue,
		StepCost:   covenant.DefaultStepCost,
		DustValue:  covenant.DefaultDustValue,
		FeeValue:   covenant.DefaultFeeValue,
		MaxSteps:   covenant.DefaultMaxSteps,
	}
}

// ChainParams returns the covenant chain parameters described by the flags,
// signed by signer.
func (chainFlags *ChainFlags) ChainParams(signer covenant.Signer) (*covenant.Params, error) {
	startTxID, err := externalapi.NewDomainHashFromString(chainFlags.StartTxID)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid --start-txid %s", chainFlags.StartTxID)
	}

	params := &covenant.Params{
		Signer:        signer,
		StartOutpoint: externalapi.Outpoint{TransactionID: *startTxID, Index: chainFlags.StartVout},
		StartValue:    chainFlags.StartValue,
		StepCost:      chainFlags.StepCost,
		DustValue:     chainFlags.DustValue,
		FeeValue:      chainFlags.FeeValue,
		MaxSteps:      chainFlags.MaxSteps,
	}
	err = params.Validate()
	if err != nil {
		return nil, err
	}
	return params, nil
}
