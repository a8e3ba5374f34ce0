// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hexstream

import (
	"bytes"
	"io"
	"math"

	"github.com/spacechains/covchain/domain/ruleerrors"
	"github.com/spacechains/covchain/util/binaryserializer"
)

// MaxVarIntPayload is the maximum payload size for a variable length integer.
const MaxVarIntPayload = 9

// errNonCanonicalVarInt is the common format string used for non-canonically
// encoded variable length integer errors.
var errNonCanonicalVarInt = "non-canonical varint %x - discriminant %x must " +
	"encode a value greater than %x"

// ReadVarInt consumes a compact-size integer: a discriminant byte followed,
// for the discriminants 0xfd, 0xfe and 0xff, by a 2, 4 or 8 byte
// little-endian value.
func (s *Stream) ReadVarInt() (uint64, error) {
	discriminantBytes, err := s.ReadBytes(1, false)
	if err != nil {
		return 0, err
	}
	discriminant := discriminantBytes[0]

	var valueSize uint64
	var min uint64
	switch discriminant {
	case 0xff:
		valueSize, min = 8, 0x100000000
	case 0xfe:
		valueSize, min = 4, 0x10000
	case 0xfd:
		valueSize, min = 2, 0xfd
	default:
		return uint64(discriminant), nil
	}

	valueBytes, err := s.ReadBytes(valueSize, true)
	if err != nil {
		return 0, err
	}
	rv, err := BytesToUint64(valueBytes)
	if err != nil {
		return 0, err
	}

	// The encoding is not canonical if the value could have been
	// encoded using fewer bytes.
	if rv < min {
		return 0, ruleerrors.Errorf(ruleerrors.ErrMalformedInput,
			errNonCanonicalVarInt, rv, discriminant, min)
	}
	return rv, nil
}

// WriteVarInt serializes val to w using a variable number of bytes depending
// on its value.
func WriteVarInt(w io.Writer, val uint64) error {
	if val < 0xfd {
		return binaryserializer.PutUint8(w, uint8(val))
	}

	if val <= math.MaxUint16 {
		err := binaryserializer.PutUint8(w, 0xfd)
		if err != nil {
			return err
		}
		return binaryserializer.PutUint16(w, uint16(val))
	}

	if val <= math.MaxUint32 {
		err := binaryserializer.PutUint8(w, 0xfe)
		if err != nil {
			return err
		}
		return binaryserializer.PutUint32(w, uint32(val))
	}

	err := binaryserializer.PutUint8(w, 0xff)
	if err != nil {
		return err
	}
	return binaryserializer.PutUint64(w, val)
}

// VarIntBytes returns the compact-size encoding of val.
func VarIntBytes(val uint64) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, MaxVarIntPayload))
	// A bytes.Buffer never fails to write.
	_ = WriteVarInt(buf, val)
	return buf.Bytes()
}

// VarIntSerializeSize returns the number of bytes it would take to serialize
// val as a variable length integer.
func VarIntSerializeSize(val uint64) int {
	// The value is small enough to be represented by itself, so it's
	// just 1 byte.
	if val < 0xfd {
		return 1
	}

	// Discriminant 1 byte plus 2 bytes for the uint16.
	if val <= math.MaxUint16 {
		return 3
	}

	// Discriminant 1 byte plus 4 bytes for the uint32.
	if val <= math.MaxUint32 {
		return 5
	}

	// Discriminant 1 byte plus 8 bytes for the uint64.
	return 9
}
