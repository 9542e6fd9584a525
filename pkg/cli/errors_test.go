package cli

import (
	"errors"
	"testing"
)

func TestConfigError(t *testing.T) {
	err := NewConfigError("lint.color", "sometimes", "must be one of auto, always, never")
	want := "invalid configuration: lint.color = sometimes: must be one of auto, always, never"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestCommandError(t *testing.T) {
	inner := errors.New("validation failed")
	err := NewCommandError("lint", inner)

	want := "runbook lint: validation failed"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, inner) {
		t.Error("errors.Is() did not unwrap to the inner error")
	}
}
