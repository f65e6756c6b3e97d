package herrors

import (
	"errors"
	"strings"
	"testing"
)

func TestParseErrorWithLine(t *testing.T) {
	e := &ParseError{Line: 12, Excerpt: "register_size 33;", Message: "width out of range"}
	msg := e.Error()
	if !strings.Contains(msg, "line 12") || !strings.Contains(msg, "width out of range") {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestParseErrorWithoutLine(t *testing.T) {
	e := &ParseError{Message: "unexpected EOF"}
	if got := e.Error(); got != "parse error: unexpected EOF" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestParseErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	e := &ParseError{Message: "wrapped", Err: inner}
	if !errors.Is(e, inner) {
		t.Fatal("expected errors.Is to find the wrapped error")
	}
}

func TestSemanticErrorWithNode(t *testing.T) {
	e := &SemanticError{Node: "field[3:0]", Message: "default overflows slice width"}
	if got := e.Error(); !strings.Contains(got, "field[3:0]") {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestInvalidInputErrorIncludesHelp(t *testing.T) {
	e := &InvalidInputError{Input: "zz", Message: "unrecognized format", Help: "try 0x.."}
	got := e.Error()
	if !strings.Contains(got, "zz") || !strings.Contains(got, "try 0x..") {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestLookupErrorMessage(t *testing.T) {
	e := &LookupError{Kind: "field", Name: "enable"}
	if got := e.Error(); got != `field not found: "enable"` {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestTriggerStateErrorMessage(t *testing.T) {
	e := &TriggerStateError{Message: "already armed"}
	if got := e.Error(); !strings.Contains(got, "already armed") {
		t.Fatalf("unexpected message: %q", got)
	}
}
