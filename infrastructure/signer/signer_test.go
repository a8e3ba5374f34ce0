package signer

import (
	"bytes"
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/btcsuite/btcd/btcec"
	"github.com/pkg/errors"
	"github.com/spacechains/covchain/domain/ruleerrors"
	"github.com/spacechains/covchain/domain/utils/hashes"
)

const testKey = "eb445ec7e0fd814db1e84622cddad9cd30154ee22bc6c2a4a61f6287be39f2d2"

func TestPublicKey(t *testing.T) {
	signer, err := NewECDSASignerFromString(testKey)
	if err != nil {
		t.Fatalf("NewECDSASignerFromString: %s", err)
	}
	expected := "03df26767289da117bea582be1aa876ba426a25cbb1ba1d709877aba2d58d9717a"
	if hex.EncodeToString(signer.PublicKey()) != expected {
		t.Fatalf("unexpected public key %x", signer.PublicKey())
	}
}

func TestSignIsDeterministicAndVerifies(t *testing.T) {
	signer, err := NewECDSASignerFromString(testKey)
	if err != nil {
		t.Fatalf("NewECDSASignerFromString: %s", err)
	}
	message := []byte("covenant chain step")

	first, err := signer.Sign(message)
	if err != nil {
		t.Fatalf("Sign: %s", err)
	}
	second, err := signer.Sign(message)
	if err != nil {
		t.Fatalf("Sign: %s", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("signatures differ: %x != %x", first, second)
	}

	signature, err := btcec.ParseDERSignature(first, btcec.S256())
	if err != nil {
		t.Fatalf("ParseDERSignature: %s", err)
	}
	publicKey, err := btcec.ParsePubKey(signer.PublicKey(), btcec.S256())
	if err != nil {
		t.Fatalf("ParsePubKey: %s", err)
	}
	digest := hashes.DoubleSHA256(message)
	if !signature.Verify(digest[:], publicKey) {
		t.Fatalf("signature does not verify against the double hash of the message")
	}
	halfOrder := new(big.Int).Rsh(btcec.S256().N, 1)
	if signature.S.Cmp(halfOrder) > 0 {
		t.Fatalf("signature S is not normalized to the lower half")
	}

	other, err := signer.Sign([]byte("another step"))
	if err != nil {
		t.Fatalf("Sign: %s", err)
	}
	if bytes.Equal(first, other) {
		t.Fatalf("different messages produced the same signature")
	}
}

func TestInvalidKeys(t *testing.T) {
	tests := []string{
		"",
		"zz",
		testKey[:62],
		"0000000000000000000000000000000000000000000000000000000000000000",
		"fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141",
	}
	for _, keyHex := range tests {
		_, err := NewECDSASignerFromString(keyHex)
		if !errors.Is(err, ruleerrors.ErrSignerFailure) {
			t.Errorf("key %q: expected ErrSignerFailure, got %v", keyHex, err)
		}
	}
}
