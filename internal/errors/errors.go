package errors

import (
	goerrors "errors"
	"fmt"
)

// ErrorCode represents a corrector error code.
type ErrorCode string

const (
	ErrInvalidWord             ErrorCode = "INVALID_WORD"             // 400
	ErrInvalidRequest          ErrorCode = "INVALID_REQUEST"          // 400
	ErrPayloadTooLarge         ErrorCode = "PAYLOAD_TOO_LARGE"        // 413
	ErrCollaboratorUnavailable ErrorCode = "COLLABORATOR_UNAVAILABLE" // 503
	ErrInternal                ErrorCode = "INTERNAL"                 // 500
)

// CorrectorError is a structured error with code, status, and details.
type CorrectorError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *CorrectorError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidWord creates a 400 error for a custom word that is empty or not
// purely alphabetic.
func NewInvalidWord(word string) *CorrectorError {
	return &CorrectorError{
		Code:    ErrInvalidWord,
		Status:  400,
		Message: "please provide a single alphabetic word",
		Details: map[string]any{"word": word},
	}
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *CorrectorError {
	return &CorrectorError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewPayloadTooLarge creates a 413 error for uploads over the size limit.
func NewPayloadTooLarge(max int64) *CorrectorError {
	return &CorrectorError{
		Code:    ErrPayloadTooLarge,
		Status:  413,
		Message: fmt.Sprintf("upload exceeds maximum size of %d bytes", max),
		Details: map[string]any{"max_bytes": max},
	}
}

// NewCollaboratorUnavailable creates a 503 error for a spell-checking engine
// that cannot answer.
func NewCollaboratorUnavailable(engine string) *CorrectorError {
	return &CorrectorError{
		Code:    ErrCollaboratorUnavailable,
		Status:  503,
		Message: fmt.Sprintf("spell checker %q is unavailable", engine),
		Details: map[string]any{"engine": engine},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *CorrectorError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &CorrectorError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if err is, or wraps, a CorrectorError with the given code.
func Is(err error, code ErrorCode) bool {
	var cErr *CorrectorError
	if goerrors.As(err, &cErr) {
		return cErr.Code == code
	}
	return false
}

// StatusOf returns the HTTP status carried by err, or 500.
func StatusOf(err error) int {
	var cErr *CorrectorError
	if goerrors.As(err, &cErr) && cErr.Status != 0 {
		return cErr.Status
	}
	return 500
}
