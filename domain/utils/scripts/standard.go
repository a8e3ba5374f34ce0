// Package scripts builds the fixed lock and unlock scripts of a covenant
// chain on top of btcd's script builder.
package scripts

import (
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcutil"
	"github.com/btcsuite/btcutil/base58"
	"github.com/pkg/errors"
)

// Address version bytes for pay-to-script-hash addresses.
const (
	MainnetScriptHashAddressVersion byte = 0x05
	TestnetScriptHashAddressVersion byte = 0xc4
)

// MaxDirectPushSize is the largest data push that is encoded as a single
// length byte followed by the data.
const MaxDirectPushSize = txscript.OP_DATA_75

// addDirectPush pushes data behind its length byte. A single byte is pushed
// literally, where AddData would encode small values as OP_1..OP_16.
func addDirectPush(builder *txscript.ScriptBuilder, data []byte) *txscript.ScriptBuilder {
	if len(data) == 1 {
		return builder.AddOp(txscript.OP_DATA_1).AddOp(data[0])
	}
	return builder.AddData(data)
}

// PayToScriptHashScript creates a new script to pay a transaction output to a
// script hash: OP_HASH160 <hash160(redeemScript)> OP_EQUAL.
func PayToScriptHashScript(redeemScript []byte) ([]byte, error) {
	return txscript.NewScriptBuilder().
		AddOp(txscript.OP_HASH160).
		AddData(btcutil.Hash160(redeemScript)).
		AddOp(txscript.OP_EQUAL).
		Script()
}

// ExtractScriptHash returns the 20-byte script hash of a pay-to-script-hash
// lock script, or an error if script is of any other form.
func ExtractScriptHash(script []byte) ([]byte, error) {
	if !txscript.IsPayToScriptHash(script) {
		return nil, errors.Errorf("script %x is not pay-to-script-hash", script)
	}
	hash := make([]byte, 20)
	copy(hash, script[2:22])
	return hash, nil
}

// ScriptToAddress returns the base58check pay-to-script-hash address of
// script under the given version byte.
func ScriptToAddress(script []byte, version byte) string {
	return base58.CheckEncode(btcutil.Hash160(script), version)
}

// CovenantScript returns <pubKey> OP_CHECKSIGVERIFY OP_1 OP_CHECKSEQUENCEVERIFY.
// The output can be spent only with a signature by pubKey, and only after
// its parent has one confirmation.
func CovenantScript(pubKey []byte) ([]byte, error) {
	if len(pubKey) > MaxDirectPushSize {
		return nil, errors.Errorf("public key of %d bytes is too long", len(pubKey))
	}
	return addDirectPush(txscript.NewScriptBuilder(), pubKey).
		AddOp(txscript.OP_CHECKSIGVERIFY).
		AddOp(txscript.OP_1).
		AddOp(txscript.OP_CHECKSEQUENCEVERIFY).
		Script()
}

// FeeBumpScript returns OP_0 OP_CHECKSEQUENCEVERIFY OP_1ADD, an
// anyone-can-spend script a third party uses to attach fees.
func FeeBumpScript() []byte {
	return []byte{txscript.OP_0, txscript.OP_CHECKSEQUENCEVERIFY, txscript.OP_1ADD}
}

// NullDataScript returns OP_RETURN followed by a direct push of data, which
// commits data on the ledger in a provably unspendable output.
func NullDataScript(data []byte) ([]byte, error) {
	if len(data) > MaxDirectPushSize {
		return nil, errors.Errorf("adding %d bytes of data would exceed the maximum "+
			"direct push of %d bytes", len(data), MaxDirectPushSize)
	}
	return addDirectPush(txscript.NewScriptBuilder().AddOp(txscript.OP_RETURN), data).Script()
}
