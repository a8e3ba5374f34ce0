package hexstream

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/spacechains/covchain/domain/ruleerrors"
)

// Stream is a read cursor over a hex-encoded byte string. Every byte read
// advances the cursor by two hex characters.
type Stream struct {
	hexString string
	index     int
}

// New returns a Stream positioned at the start of hexString.
func New(hexString string) *Stream {
	return &Stream{hexString: hexString}
}

// Position returns the number of hex characters consumed so far.
func (s *Stream) Position() int {
	return s.index
}

// IsExhausted returns whether every hex character has been consumed.
func (s *Stream) IsExhausted() bool {
	return s.index >= len(s.hexString)
}

// ReadBytes consumes byteCount bytes. When reverseByteOrder is set the bytes
// are returned in the opposite order, which turns a little-endian field into
// its big-endian (numeric or display) form.
func (s *Stream) ReadBytes(byteCount uint64, reverseByteOrder bool) ([]byte, error) {
	remaining := uint64(len(s.hexString)-s.index) / 2
	if byteCount > remaining {
		return nil, ruleerrors.Errorf(ruleerrors.ErrMalformedInput,
			"cannot read %d bytes at offset %d: only %d bytes remain", byteCount, s.index/2, remaining)
	}

	start, end := s.index, s.index+int(byteCount)*2
	decoded, err := hex.DecodeString(s.hexString[start:end])
	if err != nil {
		return nil, ruleerrors.Wrap(ruleerrors.ErrMalformedInput, err)
	}
	s.index = end

	if reverseByteOrder {
		reverseInPlace(decoded)
	}
	return decoded, nil
}

// ReadUint32 consumes a 4-byte little-endian integer.
func (s *Stream) ReadUint32() (uint32, error) {
	buf, err := s.ReadBytes(4, false)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf), nil
}

// ReadUint64 consumes an 8-byte little-endian integer.
func (s *Stream) ReadUint64() (uint64, error) {
	buf, err := s.ReadBytes(8, false)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf), nil
}

// ReverseByteOrder swaps the byte pairs of hexString so that it represents
// the opposite endianness.
func ReverseByteOrder(hexString string) (string, error) {
	if len(hexString)%2 != 0 {
		return "", ruleerrors.Errorf(ruleerrors.ErrMalformedInput,
			"hex string has odd length %d", len(hexString))
	}

	reversed := make([]byte, len(hexString))
	for i := 0; i < len(hexString); i += 2 {
		j := len(hexString) - 2 - i
		reversed[j] = hexString[i]
		reversed[j+1] = hexString[i+1]
	}
	return string(reversed), nil
}

// BytesToUint64 accumulates b as a big-endian unsigned integer.
func BytesToUint64(b []byte) (uint64, error) {
	if len(b) > 8 {
		return 0, ruleerrors.Errorf(ruleerrors.ErrMalformedInput,
			"%d bytes exceed the size of a uint64", len(b))
	}

	var value uint64
	for _, octet := range b {
		value <<= 8
		value |= uint64(octet)
	}
	return value, nil
}

func reverseInPlace(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
