package binaryserializer

import (
	"bytes"
	"io"
	"testing"

	"github.com/pkg/errors"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, io.ErrShortWrite
}

func TestPutLittleEndian(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := PutUint8(buf, 0xab); err != nil {
		t.Fatalf("PutUint8: %s", err)
	}
	if err := PutUint16(buf, 0x0102); err != nil {
		t.Fatalf("PutUint16: %s", err)
	}
	if err := PutUint32(buf, 0x01020304); err != nil {
		t.Fatalf("PutUint32: %s", err)
	}
	if err := PutUint64(buf, 0x0102030405060708); err != nil {
		t.Fatalf("PutUint64: %s", err)
	}
	if err := PutBytes(buf, []byte{0xde, 0xad}); err != nil {
		t.Fatalf("PutBytes: %s", err)
	}

	expected := []byte{
		0xab,
		0x02, 0x01,
		0x04, 0x03, 0x02, 0x01,
		0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01,
		0xde, 0xad,
	}
	if !bytes.Equal(buf.Bytes(), expected) {
		t.Fatalf("unexpected serialization: got %x, want %x", buf.Bytes(), expected)
	}
}

func TestPutErrors(t *testing.T) {
	w := failingWriter{}
	for i, err := range []error{
		PutUint8(w, 1),
		PutUint16(w, 1),
		PutUint32(w, 1),
		PutUint64(w, 1),
		PutBytes(w, []byte{1}),
	} {
		if !errors.Is(err, io.ErrShortWrite) {
			t.Errorf("writer #%d: expected io.ErrShortWrite, got %v", i, err)
		}
	}
}
