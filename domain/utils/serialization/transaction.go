package serialization

import (
	"bytes"
	"encoding/hex"
	"io"

	"github.com/pkg/errors"
	"github.com/spacechains/covchain/domain/externalapi"
	"github.com/spacechains/covchain/domain/ruleerrors"
	"github.com/spacechains/covchain/domain/utils/hashes"
	"github.com/spacechains/covchain/domain/utils/hexstream"
	"github.com/spacechains/covchain/util/binaryserializer"
)

// DecodeTransaction parses the canonical wire encoding of a transaction given
// as a hex string. The returned transaction's ID is the double hash of the
// given bytes in display order.
func DecodeTransaction(txHex string) (*externalapi.Transaction, error) {
	rawTx, err := hex.DecodeString(txHex)
	if err != nil {
		return nil, ruleerrors.Wrap(ruleerrors.ErrMalformedInput, err)
	}

	stream := hexstream.New(txHex)
	tx := &externalapi.Transaction{}

	tx.Version, err = stream.ReadUint32()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read version")
	}

	inputCount, err := stream.ReadVarInt()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read input count")
	}
	tx.Inputs = make([]externalapi.Input, 0, boundedCapacity(inputCount))
	for i := uint64(0); i < inputCount; i++ {
		input, err := readInput(stream)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read input #%d", i)
		}
		tx.Inputs = append(tx.Inputs, *input)
	}

	outputCount, err := stream.ReadVarInt()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read output count")
	}
	tx.Outputs = make([]externalapi.Output, 0, boundedCapacity(outputCount))
	for i := uint64(0); i < outputCount; i++ {
		output, err := readOutput(stream)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read output #%d", i)
		}
		tx.Outputs = append(tx.Outputs, *output)
	}

	tx.LockTime, err = stream.ReadUint32()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read lock time")
	}

	if !stream.IsExhausted() {
		return nil, ruleerrors.Errorf(ruleerrors.ErrMalformedInput,
			"unexpected trailing data at offset %d", stream.Position()/2)
	}

	tx.ID = identifierFromDigest(hashes.DoubleSHA256(rawTx))
	return tx, nil
}

// boundedCapacity caps pre-allocation so that a forged count can't force a
// huge allocation before the stream runs dry.
func boundedCapacity(count uint64) int {
	const maxPreallocation = 1024
	if count > maxPreallocation {
		return maxPreallocation
	}
	return int(count)
}

func readInput(stream *hexstream.Stream) (*externalapi.Input, error) {
	previousID, err := stream.ReadBytes(externalapi.DomainHashSize, true)
	if err != nil {
		return nil, err
	}
	input := &externalapi.Input{}
	copy(input.PreviousOutpoint.TransactionID[:], previousID)

	input.PreviousOutpoint.Index, err = stream.ReadUint32()
	if err != nil {
		return nil, err
	}

	input.UnlockScript, err = readVarBytes(stream)
	if err != nil {
		return nil, err
	}

	input.Sequence, err = stream.ReadUint32()
	if err != nil {
		return nil, err
	}
	return input, nil
}

func readOutput(stream *hexstream.Stream) (*externalapi.Output, error) {
	output := &externalapi.Output{}
	var err error
	output.Value, err = stream.ReadUint64()
	if err != nil {
		return nil, err
	}

	output.LockScript, err = readVarBytes(stream)
	if err != nil {
		return nil, err
	}
	return output, nil
}

// readVarBytes reads a length-prefixed script. Scripts are opaque byte
// strings, so no byte order correction is applied.
func readVarBytes(stream *hexstream.Stream) ([]byte, error) {
	length, err := stream.ReadVarInt()
	if err != nil {
		return nil, err
	}
	return stream.ReadBytes(length, false)
}

// SerializeTransaction writes the canonical wire encoding of tx to w.
func SerializeTransaction(w io.Writer, tx *externalapi.Transaction) error {
	err := binaryserializer.PutUint32(w, tx.Version)
	if err != nil {
		return err
	}

	err = hexstream.WriteVarInt(w, uint64(len(tx.Inputs)))
	if err != nil {
		return err
	}
	for i := range tx.Inputs {
		input := &tx.Inputs[i]
		err = writeInput(w, input, input.UnlockScript)
		if err != nil {
			return err
		}
	}

	return writeOutputsAndLockTime(w, tx)
}

// writeInput writes input using unlockScript in place of the input's own
// unlock script, so that signature preimages can substitute it.
func writeInput(w io.Writer, input *externalapi.Input, unlockScript []byte) error {
	err := writeOutpoint(w, &input.PreviousOutpoint)
	if err != nil {
		return err
	}

	err = WriteLengthPrefixed(w, unlockScript)
	if err != nil {
		return err
	}

	return binaryserializer.PutUint32(w, input.Sequence)
}

func writeOutpoint(w io.Writer, outpoint *externalapi.Outpoint) error {
	err := binaryserializer.PutBytes(w, outpoint.TransactionID.StorageBytes())
	if err != nil {
		return err
	}

	return binaryserializer.PutUint32(w, outpoint.Index)
}

func writeOutput(w io.Writer, output *externalapi.Output) error {
	err := binaryserializer.PutUint64(w, output.Value)
	if err != nil {
		return err
	}

	return WriteLengthPrefixed(w, output.LockScript)
}

func writeOutputsAndLockTime(w io.Writer, tx *externalapi.Transaction) error {
	err := hexstream.WriteVarInt(w, uint64(len(tx.Outputs)))
	if err != nil {
		return err
	}
	for i := range tx.Outputs {
		err = writeOutput(w, &tx.Outputs[i])
		if err != nil {
			return err
		}
	}

	return binaryserializer.PutUint32(w, tx.LockTime)
}

// TransactionBytes returns the canonical wire encoding of tx.
func TransactionBytes(tx *externalapi.Transaction) ([]byte, error) {
	buf := &bytes.Buffer{}
	err := SerializeTransaction(buf, tx)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeTransaction returns the canonical wire encoding of tx as a hex string.
func EncodeTransaction(tx *externalapi.Transaction) (string, error) {
	txBytes, err := TransactionBytes(tx)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(txBytes), nil
}

// TransactionID computes the identifier of tx as it currently stands: the
// double hash of its encoding, reversed into display order.
func TransactionID(tx *externalapi.Transaction) (externalapi.DomainHash, error) {
	writer := hashes.NewDoubleHashWriter()
	err := SerializeTransaction(writer, tx)
	if err != nil {
		return externalapi.DomainHash{}, err
	}
	return identifierFromDigest(writer.Finalize()), nil
}

// UpdateTransactionID recomputes tx.ID from the transaction's current fields.
func UpdateTransactionID(tx *externalapi.Transaction) error {
	id, err := TransactionID(tx)
	if err != nil {
		return err
	}
	tx.ID = id
	return nil
}

func identifierFromDigest(digest [externalapi.DomainHashSize]byte) externalapi.DomainHash {
	return externalapi.DomainHash(digest).Reversed()
}

// SerializeForSigning writes tx the way it is committed to by a signature
// over input inputIndex: that input carries lockScript as its unlock script
// and every other input carries an empty one.
func SerializeForSigning(w io.Writer, tx *externalapi.Transaction, inputIndex int, lockScript []byte) error {
	if inputIndex < 0 || inputIndex >= len(tx.Inputs) {
		return ruleerrors.Errorf(ruleerrors.ErrMalformedInput,
			"input index %d out of range for a transaction with %d inputs", inputIndex, len(tx.Inputs))
	}

	err := binaryserializer.PutUint32(w, tx.Version)
	if err != nil {
		return err
	}

	err = hexstream.WriteVarInt(w, uint64(len(tx.Inputs)))
	if err != nil {
		return err
	}
	for i := range tx.Inputs {
		var unlockScript []byte
		if i == inputIndex {
			unlockScript = lockScript
		}
		err = writeInput(w, &tx.Inputs[i], unlockScript)
		if err != nil {
			return err
		}
	}

	return writeOutputsAndLockTime(w, tx)
}
