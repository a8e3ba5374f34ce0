package ruleerrors

import (
	"errors"
	"io"
	"testing"
)

func TestWrapInRuleError(t *testing.T) {
	outer := Wrap(ErrMalformedInput, io.ErrUnexpectedEOF)
	expectedOuterErr := "ErrMalformedInput: unexpected EOF"

	if !errors.Is(outer, ErrMalformedInput) {
		t.Fatal("TestWrapInRuleError: Outer should be classified as ErrMalformedInput")
	}
	if errors.Is(outer, ErrTargetNotFound) {
		t.Fatal("TestWrapInRuleError: Outer should not be classified as ErrTargetNotFound")
	}
	if !errors.Is(outer, io.ErrUnexpectedEOF) {
		t.Fatal("TestWrapInRuleError: Outer should contain io.ErrUnexpectedEOF in it")
	}

	rule := &RuleError{}
	if !errors.As(outer, rule) {
		t.Fatal("TestWrapInRuleError: Outer should contain RuleError in it")
	}
	if rule.message != "ErrMalformedInput" {
		t.Fatalf("TestWrapInRuleError: Expected message = 'ErrMalformedInput', found: '%s'", rule.message)
	}
	if outer.Error() != expectedOuterErr {
		t.Fatalf("TestWrapInRuleError: Expected %s. found: %s", expectedOuterErr, outer.Error())
	}
}

func TestErrorf(t *testing.T) {
	err := Errorf(ErrInsufficientFunds, "need %d, have %d", 2000, 1999)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("TestErrorf: expected ErrInsufficientFunds, got %v", err)
	}
	expected := "ErrInsufficientFunds: need 2000, have 1999"
	if err.Error() != expected {
		t.Fatalf("TestErrorf: Expected %s. found: %s", expected, err.Error())
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(ErrSignerFailure, nil) != nil {
		t.Fatal("TestWrapNil: wrapping nil should return nil")
	}
}
