package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("root")
	err := (&DomainError{
		Category: ErrCatValidation,
		Code:     "CODE",
		Message:  "message",
	}).WithCause(cause)

	if err.Unwrap() != cause {
		t.Fatalf("expected cause to be unwrapped")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected errors.Is to match cause")
	}

	match := &DomainError{Category: ErrCatValidation, Code: "CODE"}
	if !errors.Is(err, match) {
		t.Fatalf("expected errors.Is to match category and code")
	}
	if got := err.Error(); got != "[validation] CODE: message (root)" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestDomainError_WithDetail(t *testing.T) {
	err := &DomainError{Category: ErrCatExecution, Code: "X", Message: "msg"}
	err.WithDetail("k", "v")
	if err.Details == nil || err.Details["k"] != "v" {
		t.Fatalf("expected details to be set")
	}
}

func TestErrorFactories(t *testing.T) {
	cases := []struct {
		err  *DomainError
		want ErrorCategory
	}{
		{ErrValidation("C", "m"), ErrCatValidation},
		{ErrExecution("C", "m"), ErrCatExecution},
		{ErrTimeout("m"), ErrCatTimeout},
		{ErrNotFound("log file", "app.log"), ErrCatNotFound},
		{ErrToolMissing("k9s"), ErrCatNotFound},
		{ErrIO("C", "m"), ErrCatIO},
		{ErrState("C", "m"), ErrCatState},
	}
	for _, tc := range cases {
		if tc.err.Category != tc.want {
			t.Errorf("expected category %s, got %s", tc.want, tc.err.Category)
		}
	}
	if msg := ErrNotFound("log file", "app.log").Message; msg != "log file not found: app.log" {
		t.Errorf("unexpected not found message: %q", msg)
	}
	missing := ErrToolMissing("k9s")
	if missing.Code != CodeToolMissing || missing.Message != "tool not installed: k9s" {
		t.Errorf("unexpected tool missing error: %+v", missing)
	}
}

func TestGetCategory(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", ErrTimeout("probe"))
	if GetCategory(wrapped) != ErrCatTimeout {
		t.Fatalf("expected timeout category through wrapping")
	}
	if GetCategory(errors.New("plain")) != ErrCatInternal {
		t.Fatalf("expected internal category for plain errors")
	}
	if !IsCategory(wrapped, ErrCatTimeout) {
		t.Fatalf("expected IsCategory to match")
	}
}
