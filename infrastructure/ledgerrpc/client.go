// Package ledgerrpc decodes transactions through a ledger daemon's JSON-RPC
// interface, as a second opinion on the local decoder.
package ledgerrpc

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/rpcclient"
	"github.com/btcsuite/btcutil"
	"github.com/pkg/errors"
	"github.com/spacechains/covchain/domain/externalapi"
	"github.com/spacechains/covchain/domain/ruleerrors"
)

// coinbaseOutputIndex is the previous output index of a coinbase input.
const coinbaseOutputIndex = 0xffffffff

// Config describes how to reach the ledger daemon.
type Config struct {
	// Host is the daemon's RPC address in host:port form.
	Host string
	User string
	Pass string

	// DisableTLS connects over plain HTTP.
	DisableTLS bool

	// Certificates are PEM encoded certificates trusted for TLS connections.
	Certificates []byte
}

// Client decodes transactions through a ledger daemon. It implements
// externalapi.LedgerQueryClient.
type Client struct {
	rpcClient *rpcclient.Client
}

// NewClient creates a Client for the daemon described by cfg. No connection
// is made until the first request.
func NewClient(cfg *Config) (*Client, error) {
	rpcClient, err := rpcclient.New(&rpcclient.ConnConfig{
		Host:         cfg.Host,
		User:         cfg.User,
		Pass:         cfg.Pass,
		DisableTLS:   cfg.DisableTLS,
		Certificates: cfg.Certificates,
		HTTPPostMode: true,
	}, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create RPC client for %s", cfg.Host)
	}
	log.Debugf("Created ledger RPC client for %s", cfg.Host)
	return &Client{rpcClient: rpcClient}, nil
}

// DecodeRawTransaction asks the daemon to decode txHex.
func (c *Client) DecodeRawTransaction(txHex string) (*externalapi.Transaction, error) {
	serializedTx, err := hex.DecodeString(txHex)
	if err != nil {
		return nil, ruleerrors.Wrap(ruleerrors.ErrMalformedInput, err)
	}

	result, err := c.rpcClient.DecodeRawTransaction(serializedTx)
	if err != nil {
		return nil, errors.Wrap(err, "decoderawtransaction failed")
	}
	log.Tracef("Daemon decoded transaction %s", result.Txid)

	return transactionFromRawResult(result)
}

// Close shuts the client down.
func (c *Client) Close() {
	c.rpcClient.Shutdown()
}

func transactionFromRawResult(result *btcjson.TxRawResult) (*externalapi.Transaction, error) {
	id, err := externalapi.NewDomainHashFromString(result.Txid)
	if err != nil {
		return nil, errors.Wrap(err, "daemon returned an invalid txid")
	}

	tx := &externalapi.Transaction{
		ID:       *id,
		Version:  uint32(result.Version),
		Inputs:   make([]externalapi.Input, len(result.Vin)),
		Outputs:  make([]externalapi.Output, len(result.Vout)),
		LockTime: result.LockTime,
	}

	for i, vin := range result.Vin {
		input, err := inputFromVin(&vin)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid input #%d", i)
		}
		tx.Inputs[i] = *input
	}

	for i, vout := range result.Vout {
		output, err := outputFromVout(&vout)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid output #%d", i)
		}
		tx.Outputs[i] = *output
	}

	return tx, nil
}

func inputFromVin(vin *btcjson.Vin) (*externalapi.Input, error) {
	if vin.IsCoinBase() {
		unlockScript, err := hex.DecodeString(vin.Coinbase)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		return &externalapi.Input{
			PreviousOutpoint: externalapi.Outpoint{Index: coinbaseOutputIndex},
			UnlockScript:     unlockScript,
			Sequence:         vin.Sequence,
		}, nil
	}

	previousID, err := externalapi.NewDomainHashFromString(vin.Txid)
	if err != nil {
		return nil, err
	}
	var unlockScript []byte
	if vin.ScriptSig != nil {
		unlockScript, err = hex.DecodeString(vin.ScriptSig.Hex)
		if err != nil {
			return nil, errors.WithStack(err)
		}
	}

	return &externalapi.Input{
		PreviousOutpoint: externalapi.Outpoint{TransactionID: *previousID, Index: vin.Vout},
		UnlockScript:     unlockScript,
		Sequence:         vin.Sequence,
	}, nil
}

func outputFromVout(vout *btcjson.Vout) (*externalapi.Output, error) {
	amount, err := btcutil.NewAmount(vout.Value)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if amount < 0 {
		return nil, errors.Errorf("negative value %s", amount)
	}

	lockScript, err := hex.DecodeString(vout.ScriptPubKey.Hex)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &externalapi.Output{
		Value:      uint64(amount),
		LockScript: lockScript,
	}, nil
}
