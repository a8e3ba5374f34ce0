package serialization

import (
	"bytes"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/spacechains/covchain/domain/externalapi"
	"github.com/spacechains/covchain/domain/ruleerrors"
)

// knownTransactionHex is a mainnet pay-to-pubkey-hash transaction with one
// input and two outputs.
const knownTransactionHex = "0100000001813f79011acb80925dfe69b3def355fe914bd1d96a3f5f71bf8303c6a989c7d1" +
	"000000006b483045022100ed81ff192e75a3fd2304004dcadb746fa5e24c5031ccfcf21320b0277457c98f02207a986d955c6e" +
	"0cb35d446a89d3f56100f4d7f67801c31967743a9c8e10615bed01210349fc4e631e3624a545de3f89f5d8684c7b8138bd94bd" +
	"d531d2e213bf016b278afeffffff02a135ef01000000001976a914bc3b654dca7e56b04dca18f2566cdaf02e8d9ada88ac99c3" +
	"9800000000001976a9141c4bc762dd5423e332166702cb75f40df79fea1288ac19430600"

const knownTransactionID = "452c629d67e41baec3ac6f04fe744b4b9617f8f859c63b3002f8684e7a4fee03"

func mustHash(t *testing.T, hashString string) externalapi.DomainHash {
	hash, err := externalapi.NewDomainHashFromString(hashString)
	if err != nil {
		t.Fatalf("NewDomainHashFromString(%s): %s", hashString, err)
	}
	return *hash
}

func TestDecodeKnownTransaction(t *testing.T) {
	tx, err := DecodeTransaction(knownTransactionHex)
	if err != nil {
		t.Fatalf("DecodeTransaction: %+v", err)
	}

	if tx.ID.String() != knownTransactionID {
		t.Errorf("unexpected ID: got %s, want %s", tx.ID, knownTransactionID)
	}
	if tx.Version != 1 {
		t.Errorf("unexpected version %d", tx.Version)
	}
	if tx.LockTime != 0x064319 {
		t.Errorf("unexpected lock time %x", tx.LockTime)
	}
	if len(tx.Inputs) != 1 || len(tx.Outputs) != 2 {
		t.Fatalf("unexpected shape: %d inputs, %d outputs", len(tx.Inputs), len(tx.Outputs))
	}

	input := tx.Inputs[0]
	expectedPrevious := mustHash(t, "d1c789a9c60383bf715f3f6ad9d14b91fe55f3deb369fe5d9280cb1a01793f81")
	if input.PreviousOutpoint.TransactionID != expectedPrevious {
		t.Errorf("unexpected previous ID %s", input.PreviousOutpoint.TransactionID)
	}
	if input.PreviousOutpoint.Index != 0 {
		t.Errorf("unexpected previous index %d", input.PreviousOutpoint.Index)
	}
	if len(input.UnlockScript) != 0x6b {
		t.Errorf("unexpected unlock script length %d", len(input.UnlockScript))
	}
	if input.Sequence != 0xfffffffe {
		t.Errorf("unexpected sequence %x", input.Sequence)
	}

	if tx.Outputs[0].Value != 32454049 || tx.Outputs[1].Value != 10011545 {
		t.Errorf("unexpected values %d, %d", tx.Outputs[0].Value, tx.Outputs[1].Value)
	}
	if len(tx.Outputs[0].LockScript) != 0x19 || tx.Outputs[0].LockScript[0] != 0x76 {
		t.Errorf("unexpected lock script %x", tx.Outputs[0].LockScript)
	}

	id, err := TransactionID(tx)
	if err != nil {
		t.Fatalf("TransactionID: %s", err)
	}
	if id != tx.ID {
		t.Errorf("TransactionID %s differs from the decoded ID %s", id, tx.ID)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tx, err := DecodeTransaction(knownTransactionHex)
	if err != nil {
		t.Fatalf("DecodeTransaction: %+v", err)
	}

	encoded, err := EncodeTransaction(tx)
	if err != nil {
		t.Fatalf("EncodeTransaction: %+v", err)
	}
	if encoded != knownTransactionHex {
		t.Fatalf("encode(decode(s)) != s\n got: %s\nwant: %s", encoded, knownTransactionHex)
	}

	built := &externalapi.Transaction{
		Version: 2,
		Inputs: []externalapi.Input{
			{
				PreviousOutpoint: externalapi.Outpoint{
					TransactionID: mustHash(t, "60c31751818bd4410eed84b1c9047863206cce2c7d4d610ce5841c4195ba6c3b"),
					Index:         1,
				},
				UnlockScript: []byte{0x00, 0xb2, 0x8b},
				Sequence:     1,
			},
			{
				PreviousOutpoint: externalapi.Outpoint{Index: 0xffffffff},
				Sequence:         0xffffffff,
			},
		},
		Outputs: []externalapi.Output{
			{Value: 98000, LockScript: bytes.Repeat([]byte{0x51}, 300)},
			{Value: 0},
		},
		LockTime: 500000,
	}
	err = UpdateTransactionID(built)
	if err != nil {
		t.Fatalf("UpdateTransactionID: %s", err)
	}

	builtHex, err := EncodeTransaction(built)
	if err != nil {
		t.Fatalf("EncodeTransaction: %s", err)
	}
	decoded, err := DecodeTransaction(builtHex)
	if err != nil {
		t.Fatalf("DecodeTransaction: %+v", err)
	}
	if !decoded.Equal(built) {
		t.Fatalf("decode(encode(t)) != t\n got: %s\nwant: %s", spew.Sdump(decoded), spew.Sdump(built))
	}
}

func TestTransactionIDStability(t *testing.T) {
	base, err := DecodeTransaction(knownTransactionHex)
	if err != nil {
		t.Fatalf("DecodeTransaction: %+v", err)
	}

	first, err := TransactionID(base)
	if err != nil {
		t.Fatalf("TransactionID: %s", err)
	}
	second, err := TransactionID(base)
	if err != nil {
		t.Fatalf("TransactionID: %s", err)
	}
	if first != second {
		t.Fatalf("TransactionID is not stable: %s != %s", first, second)
	}

	mutations := []struct {
		name   string
		mutate func(tx *externalapi.Transaction)
	}{
		{"value", func(tx *externalapi.Transaction) { tx.Outputs[0].Value++ }},
		{"lock script", func(tx *externalapi.Transaction) { tx.Outputs[1].LockScript[3] ^= 0xff }},
		{"unlock script", func(tx *externalapi.Transaction) { tx.Inputs[0].UnlockScript = nil }},
		{"sequence", func(tx *externalapi.Transaction) { tx.Inputs[0].Sequence = 1 }},
		{"lock time", func(tx *externalapi.Transaction) { tx.LockTime = 0 }},
		{"version", func(tx *externalapi.Transaction) { tx.Version = 2 }},
		{"outpoint", func(tx *externalapi.Transaction) { tx.Inputs[0].PreviousOutpoint.Index = 1 }},
	}
	for _, mutation := range mutations {
		tx := base.Clone()
		mutation.mutate(tx)
		id, err := TransactionID(tx)
		if err != nil {
			t.Fatalf("%s: TransactionID: %s", mutation.name, err)
		}
		if id == first {
			t.Errorf("%s: changing the field did not change the ID", mutation.name)
		}
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		hex  string
	}{
		{"empty", ""},
		{"odd length", knownTransactionHex[:len(knownTransactionHex)-1]},
		{"non-hex", "zz" + knownTransactionHex[2:]},
		{"truncated lock time", knownTransactionHex[:len(knownTransactionHex)-2]},
		{"truncated in input", knownTransactionHex[:100]},
		{"trailing data", knownTransactionHex + "00"},
		{"input count exceeds data", "01000000fd0001"},
		{"script longer than data", "010000000100000000000000000000000000000000000000000000000000000000000000000000000005aa"},
	}

	for _, test := range tests {
		_, err := DecodeTransaction(test.hex)
		if !errors.Is(err, ruleerrors.ErrMalformedInput) {
			t.Errorf("%s: expected ErrMalformedInput, got %v", test.name, err)
		}
	}
}

func TestLengthPrefixed(t *testing.T) {
	tests := []struct {
		in       []byte
		expected []byte
	}{
		{nil, []byte{0x00}},
		{[]byte{}, []byte{0x00}},
		{[]byte{0x00, 0xb2, 0x8b}, []byte{0x03, 0x00, 0xb2, 0x8b}},
		{bytes.Repeat([]byte{0x01}, 253), append([]byte{0xfd, 0xfd, 0x00}, bytes.Repeat([]byte{0x01}, 253)...)},
	}

	for i, test := range tests {
		result := LengthPrefixed(test.in)
		if !bytes.Equal(result, test.expected) {
			t.Errorf("LengthPrefixed #%d: got %x, want %x", i, result, test.expected)
		}
	}
}
