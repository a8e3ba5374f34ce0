package ruleerrors

import (
	"github.com/pkg/errors"
)

// These constants are used to identify a specific RuleError.
var (
	// ErrMalformedInput indicates wire data that is shorter than a field
	// declares, contains non-hex characters, is non-canonical, or otherwise
	// cannot be decoded.
	ErrMalformedInput = newRuleError("ErrMalformedInput")

	// ErrInsufficientFunds indicates the remaining chain value is below the
	// per-step cost.
	ErrInsufficientFunds = newRuleError("ErrInsufficientFunds")

	// ErrTargetNotFound indicates a bounded chain scan ended without matching
	// the requested identifier.
	ErrTargetNotFound = newRuleError("ErrTargetNotFound")

	// ErrSignerFailure indicates the external signer rejected the key or the
	// message.
	ErrSignerFailure = newRuleError("ErrSignerFailure")

	// ErrDecodingMismatch indicates the local decoder and the ledger daemon
	// disagree about a transaction.
	ErrDecodingMismatch = newRuleError("ErrDecodingMismatch")

	// ErrInvalidParams indicates chain parameters that cannot produce a
	// valid chain.
	ErrInvalidParams = newRuleError("ErrInvalidParams")
)

// RuleError identifies a rule violation. Callers use errors.Is against the
// sentinel values above to classify a failure.
type RuleError struct {
	message string
	inner   error
}

// Error satisfies the error interface and prints human-readable errors.
func (e RuleError) Error() string {
	if e.inner != nil {
		return e.message + ": " + e.inner.Error()
	}
	return e.message
}

// Unwrap satisfies the errors.Unwrap interface
func (e RuleError) Unwrap() error {
	return e.inner
}

// Cause satisfies the github.com/pkg/errors.Cause interface
func (e RuleError) Cause() error {
	return e.inner
}

// Is reports whether target is a RuleError with the same message, so that
// wrapped instances still match their sentinel.
func (e RuleError) Is(target error) bool {
	other, ok := target.(RuleError)
	if !ok {
		return false
	}
	return e.message == other.message
}

func newRuleError(message string) RuleError {
	return RuleError{message: message, inner: nil}
}

// Wrap returns err classified under the given sentinel rule error. A nil
// err yields nil.
func Wrap(rule RuleError, err error) error {
	if err == nil {
		return nil
	}
	return errors.WithStack(RuleError{message: rule.message, inner: err})
}

// Errorf returns a new error classified under the given sentinel with a
// formatted message.
func Errorf(rule RuleError, format string, args ...interface{}) error {
	return Wrap(rule, errors.Errorf(format, args...))
}
