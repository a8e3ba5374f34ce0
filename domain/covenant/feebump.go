package covenant

import (
	"encoding/hex"

	"github.com/spacechains/covchain/domain/externalapi"
	"github.com/spacechains/covchain/domain/ruleerrors"
	"github.com/spacechains/covchain/domain/utils/serialization"
	"github.com/spacechains/covchain/domain/utils/scripts"
)

// FeeBumpOutputIndex is the index of the fee-bump output in every chain
// transaction.
const FeeBumpOutputIndex = 1

// BuildFeeBumpCompanion builds a transaction that spends output outputIndex
// of chain transaction chainID, worth value, into a null-data output
// committing to the hash given by auxHashHex. The fee-bump script checks no
// signature, so revealing it is the entire unlock script.
func BuildFeeBumpCompanion(chainID externalapi.DomainHash, outputIndex uint32, value uint64,
	auxHashHex string) (*externalapi.Transaction, error) {

	auxHash, err := hex.DecodeString(auxHashHex)
	if err != nil {
		return nil, ruleerrors.Wrap(ruleerrors.ErrMalformedInput, err)
	}
	nullDataScript, err := scripts.NullDataScript(auxHash)
	if err != nil {
		return nil, ruleerrors.Wrap(ruleerrors.ErrMalformedInput, err)
	}

	tx := &externalapi.Transaction{
		Version: chainTxVersion,
		Inputs: []externalapi.Input{{
			PreviousOutpoint: externalapi.Outpoint{TransactionID: chainID, Index: outputIndex},
			UnlockScript:     serialization.LengthPrefixed(scripts.FeeBumpScript()),
			Sequence:         0,
		}},
		Outputs: []externalapi.Output{{
			Value:      value,
			LockScript: nullDataScript,
		}},
		LockTime: 0,
	}

	err = serialization.UpdateTransactionID(tx)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// MergeFeeBumpCompanion appends the companion's inputs and outputs to the
// transaction encoded by rawTxHex and returns the merged encoding. The
// caller signs the merged transaction's own inputs afterwards.
func MergeFeeBumpCompanion(rawTxHex string, companion *externalapi.Transaction) (string, error) {
	tx, err := serialization.DecodeTransaction(rawTxHex)
	if err != nil {
		return "", err
	}

	companion = companion.Clone()
	tx.Inputs = append(tx.Inputs, companion.Inputs...)
	tx.Outputs = append(tx.Outputs, companion.Outputs...)

	err = serialization.UpdateTransactionID(tx)
	if err != nil {
		return "", err
	}
	log.Debugf("Merged fee-bump companion %s into %s", companion.ID, tx.ID)
	return serialization.EncodeTransaction(tx)
}

// NextChainTransactions returns the chain transaction that follows prevID,
// and rawTxHex extended to spend that transaction's fee-bump output into a
// commitment to auxHashHex.
func (e *Engine) NextChainTransactions(prevID externalapi.DomainHash, auxHashHex string,
	rawTxHex string) (chainTxHex string, mergedTxHex string, err error) {

	chainTxHex, chainID, err := e.AdvanceTo(prevID)
	if err != nil {
		return "", "", err
	}

	companion, err := BuildFeeBumpCompanion(chainID, FeeBumpOutputIndex, e.params.DustValue, auxHashHex)
	if err != nil {
		return "", "", err
	}

	mergedTxHex, err = MergeFeeBumpCompanion(rawTxHex, companion)
	if err != nil {
		return "", "", err
	}
	return chainTxHex, mergedTxHex, nil
}
