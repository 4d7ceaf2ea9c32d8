package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnbalanced indicates that a journal entry's debits do not equal its credits,
// or that it has fewer than two lines.
var ErrUnbalanced = errors.New("journal entry is not balanced")

// ErrReferenceIntegrity indicates a posting against an unknown or inactive
// account or currency.
var ErrReferenceIntegrity = errors.New("reference integrity violation")

// ErrDataIntegrity indicates detected ledger corruption (closing drift, balance
// sheet equation mismatch). It must be surfaced, never silently corrected.
var ErrDataIntegrity = errors.New("data integrity violation")

// ErrConflict indicates the operation conflicts with the resource's current
// state, e.g. closing an already closed period.
var ErrConflict = errors.New("conflict with current state")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError wraps an underlying error with an HTTP status code and message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError with the given HTTP status code.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that unwraps to ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
