package externalapi

import (
	"bytes"
	"fmt"
)

// Transaction is a single-ledger transaction. ID is only meaningful once
// every unlock script has been set; it must be recomputed after any other
// field changes.
type Transaction struct {
	ID       DomainHash
	Version  uint32
	Inputs   []Input
	Outputs  []Output
	LockTime uint32
}

// Input spends a previous transaction output.
type Input struct {
	PreviousOutpoint Outpoint
	UnlockScript     []byte
	// Sequence doubles as the relative time-lock when the spent output is
	// locked by the covenant script.
	Sequence uint32
}

// Outpoint references an output of a previous transaction.
type Outpoint struct {
	TransactionID DomainHash
	Index         uint32
}

// String stringifies an outpoint.
func (op Outpoint) String() string {
	return fmt.Sprintf("%s:%d", op.TransactionID, op.Index)
}

// Output locks Value smallest currency units under LockScript.
type Output struct {
	Value      uint64
	LockScript []byte
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal and Clone accordingly.
var _ = Transaction{DomainHash{}, 0, []Input{}, []Output{}, 0}

// Equal returns whether tx equals to other, comparing the identifier, the
// header fields and every input and output.
func (tx *Transaction) Equal(other *Transaction) bool {
	if tx == nil || other == nil {
		return tx == other
	}

	if tx.ID != other.ID ||
		tx.Version != other.Version ||
		tx.LockTime != other.LockTime ||
		len(tx.Inputs) != len(other.Inputs) ||
		len(tx.Outputs) != len(other.Outputs) {
		return false
	}

	for i, input := range tx.Inputs {
		if !input.Equal(&other.Inputs[i]) {
			return false
		}
	}

	for i, output := range tx.Outputs {
		if !output.Equal(&other.Outputs[i]) {
			return false
		}
	}

	return true
}

// Clone returns a deep copy of tx.
func (tx *Transaction) Clone() *Transaction {
	inputsClone := make([]Input, len(tx.Inputs))
	for i, input := range tx.Inputs {
		inputsClone[i] = *input.Clone()
	}

	outputsClone := make([]Output, len(tx.Outputs))
	for i, output := range tx.Outputs {
		outputsClone[i] = *output.Clone()
	}

	return &Transaction{
		ID:       tx.ID,
		Version:  tx.Version,
		Inputs:   inputsClone,
		Outputs:  outputsClone,
		LockTime: tx.LockTime,
	}
}

// Equal returns whether input equals to other
func (input *Input) Equal(other *Input) bool {
	return input.PreviousOutpoint == other.PreviousOutpoint &&
		bytes.Equal(input.UnlockScript, other.UnlockScript) &&
		input.Sequence == other.Sequence
}

// Clone returns a deep copy of input.
func (input *Input) Clone() *Input {
	var unlockScriptClone []byte
	if input.UnlockScript != nil {
		unlockScriptClone = make([]byte, len(input.UnlockScript))
		copy(unlockScriptClone, input.UnlockScript)
	}
	return &Input{
		PreviousOutpoint: input.PreviousOutpoint,
		UnlockScript:     unlockScriptClone,
		Sequence:         input.Sequence,
	}
}

// Equal returns whether output equals to other
func (output *Output) Equal(other *Output) bool {
	return output.Value == other.Value && bytes.Equal(output.LockScript, other.LockScript)
}

// Clone returns a deep copy of output.
func (output *Output) Clone() *Output {
	var lockScriptClone []byte
	if output.LockScript != nil {
		lockScriptClone = make([]byte, len(output.LockScript))
		copy(lockScriptClone, output.LockScript)
	}
	return &Output{
		Value:      output.Value,
		LockScript: lockScriptClone,
	}
}
