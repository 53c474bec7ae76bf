package errors

import (
	"fmt"
	"testing"
)

func TestCorrectorError_Error(t *testing.T) {
	err := &CorrectorError{
		Code:    ErrInvalidWord,
		Status:  400,
		Message: "bad word",
	}

	expected := "INVALID_WORD: bad word"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestNewInvalidWord(t *testing.T) {
	err := NewInvalidWord("123")

	if err.Code != ErrInvalidWord {
		t.Errorf("Code = %q, want %q", err.Code, ErrInvalidWord)
	}
	if err.Status != 400 {
		t.Errorf("Status = %d, want 400", err.Status)
	}
	if err.Details["word"] != "123" {
		t.Errorf("Details[word] = %v, want %q", err.Details["word"], "123")
	}
}

func TestNewPayloadTooLarge(t *testing.T) {
	err := NewPayloadTooLarge(1024)

	if err.Status != 413 {
		t.Errorf("Status = %d, want 413", err.Status)
	}
	if err.Details["max_bytes"] != int64(1024) {
		t.Errorf("Details[max_bytes] = %v, want 1024", err.Details["max_bytes"])
	}
}

func TestNewCollaboratorUnavailable(t *testing.T) {
	err := NewCollaboratorUnavailable("frequency")

	if err.Code != ErrCollaboratorUnavailable {
		t.Errorf("Code = %q, want %q", err.Code, ErrCollaboratorUnavailable)
	}
	if err.Status != 503 {
		t.Errorf("Status = %d, want 503", err.Status)
	}
}

func TestNewInternal_NilError(t *testing.T) {
	err := NewInternal(nil)
	if err.Message != "internal error" {
		t.Errorf("Message = %q, want %q", err.Message, "internal error")
	}
}

func TestIs(t *testing.T) {
	err := NewInvalidWord("x1")

	if !Is(err, ErrInvalidWord) {
		t.Error("Is(err, ErrInvalidWord) = false, want true")
	}
	if Is(err, ErrInternal) {
		t.Error("Is(err, ErrInternal) = true, want false")
	}
	if !Is(fmt.Errorf("add word: %w", err), ErrInvalidWord) {
		t.Error("Is on wrapped error = false, want true")
	}
	if Is(fmt.Errorf("plain"), ErrInvalidWord) {
		t.Error("Is on plain error = true, want false")
	}
}

func TestStatusOf(t *testing.T) {
	if got := StatusOf(NewInvalidRequest("x")); got != 400 {
		t.Errorf("StatusOf(invalid request) = %d, want 400", got)
	}
	if got := StatusOf(fmt.Errorf("boom")); got != 500 {
		t.Errorf("StatusOf(plain) = %d, want 500", got)
	}
}
