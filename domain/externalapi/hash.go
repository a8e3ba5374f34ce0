package externalapi

import (
	"encoding/hex"

	"github.com/pkg/errors"
)

// DomainHashSize of array used to store hashes.
const DomainHashSize = 32

// DomainHash is a 32-byte hash held in display order, that is the byte order
// in which ledger tools print transaction identifiers. The wire encoding
// stores the reverse of this order.
type DomainHash [DomainHashSize]byte

// NewDomainHashFromByteSlice copies hashBytes (display order) into a new
// DomainHash.
func NewDomainHashFromByteSlice(hashBytes []byte) (*DomainHash, error) {
	if len(hashBytes) != DomainHashSize {
		return nil, errors.Errorf("invalid hash size. Want: %d, got: %d",
			DomainHashSize, len(hashBytes))
	}
	var hash DomainHash
	copy(hash[:], hashBytes)
	return &hash, nil
}

// NewDomainHashFromString parses a display-order hex string.
func NewDomainHashFromString(hashString string) (*DomainHash, error) {
	expectedLength := DomainHashSize * 2
	if len(hashString) != expectedLength {
		return nil, errors.Errorf("hash string length is %d, while it should be be %d",
			len(hashString), expectedLength)
	}

	hashBytes, err := hex.DecodeString(hashString)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return NewDomainHashFromByteSlice(hashBytes)
}

// NewDomainHashFromStorageBytes builds a DomainHash from bytes in storage
// (wire) order, reversing them into display order.
func NewDomainHashFromStorageBytes(storageBytes []byte) (*DomainHash, error) {
	hash, err := NewDomainHashFromByteSlice(storageBytes)
	if err != nil {
		return nil, err
	}
	reversed := hash.Reversed()
	return &reversed, nil
}

// String returns the Hash as the hexadecimal string of the hash.
func (hash DomainHash) String() string {
	return hex.EncodeToString(hash[:])
}

// Reversed returns a copy of the hash with its byte order reversed.
func (hash DomainHash) Reversed() DomainHash {
	var reversed DomainHash
	for i, b := range hash {
		reversed[DomainHashSize-1-i] = b
	}
	return reversed
}

// StorageBytes returns the hash in the byte order used by the wire encoding.
func (hash DomainHash) StorageBytes() []byte {
	reversed := hash.Reversed()
	return reversed[:]
}

// Equal returns whether hash equals to other
func (hash *DomainHash) Equal(other *DomainHash) bool {
	if hash == nil || other == nil {
		return hash == other
	}
	return *hash == *other
}
