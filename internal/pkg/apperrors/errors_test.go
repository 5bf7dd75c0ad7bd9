package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestCustomErrorUnwrapsToSentinel(t *testing.T) {
	wrapped := fmt.Errorf("loading branch 7: %w", ErrBranchNotFound)

	if !errors.Is(wrapped, ErrResourceNotFound) {
		t.Fatalf("expected wrapped branch error to match ErrResourceNotFound")
	}
	if errors.Is(wrapped, ErrBadRequest) {
		t.Fatalf("branch not found must not match ErrBadRequest")
	}
	if got := Message(wrapped); got != "branch not found" {
		t.Fatalf("Message() = %q, want %q", got, "branch not found")
	}
}

func TestIsMatchesAnyOfList(t *testing.T) {
	err := fmt.Errorf("%w: title is required", ErrValidationFailed)

	if !Is(err, ErrConflict, ErrBadRequest, ErrValidationFailed) {
		t.Fatalf("Is() should match the validation sentinel in the list")
	}
	if Is(err, ErrConflict) {
		t.Fatalf("Is() matched an unrelated sentinel")
	}
}

func TestMessagePrefersStatusMsg(t *testing.T) {
	err := NewCustomError(ErrConflict, "row changed").WithStatusMsg("please reload and retry")
	if got := Message(err); got != "please reload and retry" {
		t.Fatalf("Message() = %q", got)
	}
	if got := Message(errors.New("plain")); got != "plain" {
		t.Fatalf("Message() on plain error = %q", got)
	}
}
