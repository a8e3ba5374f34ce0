package serialization

import (
	"bytes"
	"io"

	"github.com/spacechains/covchain/domain/utils/hexstream"
	"github.com/spacechains/covchain/util/binaryserializer"
)

// LengthPrefixed returns data preceded by its compact-size length. An empty
// byte string encodes as the single byte 0x00.
func LengthPrefixed(data []byte) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, hexstream.VarIntSerializeSize(uint64(len(data)))+len(data)))
	// A bytes.Buffer never fails to write.
	_ = WriteLengthPrefixed(buf, data)
	return buf.Bytes()
}

// WriteLengthPrefixed writes data preceded by its compact-size length to w.
func WriteLengthPrefixed(w io.Writer, data []byte) error {
	err := hexstream.WriteVarInt(w, uint64(len(data)))
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	return binaryserializer.PutBytes(w, data)
}
