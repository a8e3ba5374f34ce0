package hashes

import (
	"crypto/sha256"
	"hash"

	"github.com/pkg/errors"
)

// HashWriter is used to incrementally hash data without concatenating all of the data to a single buffer
// it exposes an io.Writer api and a Finalize function to get the resulting hash.
// The used hash function is double sha256.
type HashWriter struct {
	hash.Hash
}

// NewDoubleHashWriter returns a HashWriter whose Finalize applies a second
// sha256 pass over the sha256 of everything written.
func NewDoubleHashWriter() HashWriter {
	return HashWriter{sha256.New()}
}

// InfallibleWrite is just like write but doesn't return anything
func (h HashWriter) InfallibleWrite(p []byte) {
	// This write can never return an error, this is part of the hash.Hash interface contract.
	_, err := h.Write(p)
	if err != nil {
		panic(errors.Wrap(err, "this should never happen. hash.Hash interface promises to not return errors."))
	}
}

// Finalize returns the resulting double hash, in computation order.
func (h HashWriter) Finalize() [sha256.Size]byte {
	return sha256.Sum256(h.Sum(nil))
}

// DoubleSHA256 returns sha256(sha256(data)).
func DoubleSHA256(data []byte) [sha256.Size]byte {
	first := sha256.Sum256(data)
	return sha256.Sum256(first[:])
}
