package binaryserializer

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// PutUint8 writes the provided uint8 as a single byte to the given writer.
func PutUint8(w io.Writer, val uint8) error {
	_, err := w.Write([]byte{val})
	return errors.WithStack(err)
}

// PutUint16 serializes the provided uint16 in little-endian byte order and
// writes the resulting two bytes to the given writer.
func PutUint16(w io.Writer, val uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], val)
	_, err := w.Write(buf[:])
	return errors.WithStack(err)
}

// PutUint32 serializes the provided uint32 in little-endian byte order and
// writes the resulting four bytes to the given writer.
func PutUint32(w io.Writer, val uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], val)
	_, err := w.Write(buf[:])
	return errors.WithStack(err)
}

// PutUint64 serializes the provided uint64 in little-endian byte order and
// writes the resulting eight bytes to the given writer.
func PutUint64(w io.Writer, val uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], val)
	_, err := w.Write(buf[:])
	return errors.WithStack(err)
}

// PutBytes writes b as-is to the given writer.
func PutBytes(w io.Writer, b []byte) error {
	_, err := w.Write(b)
	return errors.WithStack(err)
}
