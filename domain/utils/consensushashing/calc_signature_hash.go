package consensushashing

import (
	"bytes"
	"io"

	"github.com/spacechains/covchain/domain/externalapi"
	"github.com/spacechains/covchain/domain/ruleerrors"
	"github.com/spacechains/covchain/domain/utils/hashes"
	"github.com/spacechains/covchain/domain/utils/serialization"
	"github.com/spacechains/covchain/util/binaryserializer"
)

// SigHashType represents hash type bits at the end of a signature.
type SigHashType uint32

// SigHashAll commits to every input and output of the transaction. It is the
// only hash type covenant chains use.
const SigHashAll SigHashType = 0x1

// SignaturePreimage returns the bytes that a SigHashAll signature over input
// idx commits to. The input being signed carries prevLockScript in place of
// its unlock script and all other inputs carry an empty script. The
// four-byte little-endian hash type is appended.
func SignaturePreimage(tx *externalapi.Transaction, idx int, prevLockScript []byte) ([]byte, error) {
	buf := &bytes.Buffer{}
	err := writePreimage(buf, tx, idx, prevLockScript)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CalcSignatureHash returns the double hash of the SigHashAll preimage for
// input idx, in the byte order signers consume it.
func CalcSignatureHash(tx *externalapi.Transaction, idx int, prevLockScript []byte) ([externalapi.DomainHashSize]byte, error) {
	writer := hashes.NewDoubleHashWriter()
	err := writePreimage(writer, tx, idx, prevLockScript)
	if err != nil {
		return [externalapi.DomainHashSize]byte{}, err
	}
	return writer.Finalize(), nil
}

func writePreimage(w io.Writer, tx *externalapi.Transaction, idx int, prevLockScript []byte) error {
	if tx == nil {
		return ruleerrors.Errorf(ruleerrors.ErrMalformedInput, "cannot hash a nil transaction")
	}
	err := serialization.SerializeForSigning(w, tx, idx, prevLockScript)
	if err != nil {
		return err
	}
	return binaryserializer.PutUint32(w, uint32(SigHashAll))
}
