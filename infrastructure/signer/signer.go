// Package signer signs covenant chain transactions with deterministic
// secp256k1 ECDSA.
package signer

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcec"
	"github.com/spacechains/covchain/domain/ruleerrors"
	"github.com/spacechains/covchain/domain/utils/hashes"
)

// ECDSASigner signs with a secp256k1 private key. Nonces are derived per
// RFC 6979 and signatures are normalized to low S, so signing the same
// message twice yields the same signature.
type ECDSASigner struct {
	privateKey *btcec.PrivateKey
	publicKey  []byte
}

// NewECDSASigner returns a signer for the 32-byte private key keyBytes.
func NewECDSASigner(keyBytes []byte) (*ECDSASigner, error) {
	if len(keyBytes) != btcec.PrivKeyBytesLen {
		return nil, ruleerrors.Errorf(ruleerrors.ErrSignerFailure,
			"private key must be %d bytes, got %d", btcec.PrivKeyBytesLen, len(keyBytes))
	}

	privateKey, publicKey := btcec.PrivKeyFromBytes(btcec.S256(), keyBytes)
	if privateKey.D.Sign() == 0 || privateKey.D.Cmp(btcec.S256().N) >= 0 {
		return nil, ruleerrors.Errorf(ruleerrors.ErrSignerFailure, "private key is out of range")
	}

	return &ECDSASigner{
		privateKey: privateKey,
		publicKey:  publicKey.SerializeCompressed(),
	}, nil
}

// NewECDSASignerFromString returns a signer for the hex encoded private key
// keyHex.
func NewECDSASignerFromString(keyHex string) (*ECDSASigner, error) {
	keyBytes, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, ruleerrors.Wrap(ruleerrors.ErrSignerFailure, err)
	}
	return NewECDSASigner(keyBytes)
}

// Sign double hashes message with SHA-256 and returns the DER encoded
// signature of the digest.
func (s *ECDSASigner) Sign(message []byte) ([]byte, error) {
	digest := hashes.DoubleSHA256(message)
	signature, err := s.privateKey.Sign(digest[:])
	if err != nil {
		return nil, ruleerrors.Wrap(ruleerrors.ErrSignerFailure, err)
	}
	return signature.Serialize(), nil
}

// PublicKey returns the compressed public key.
func (s *ECDSASigner) PublicKey() []byte {
	return append([]byte(nil), s.publicKey...)
}
