package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation conflicts with the current state
// of the resource (e.g. reversing an already reversed entry).
var ErrConflict = errors.New("conflicting state")

// ErrConcurrencyTimeout indicates that a lock wait exceeded its bound.
var ErrConcurrencyTimeout = errors.New("timed out waiting for a concurrent operation")

// ErrInternal is a generic internal failure safe to show to callers; the
// underlying store error is kept out of user-visible messages.
var ErrInternal = errors.New("internal error")

// AppError wraps a lower-level failure with a status-like code and a
// message that is safe to surface. The wrapped error is reachable via
// errors.Unwrap for logging, never for display.
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

// Is maps AppError codes onto the package sentinels so callers can use
// errors.Is without knowing which constructor produced the error.
func (e *AppError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Code == 404
	case ErrInternal:
		return e.Code == 500
	}
	return false
}

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that satisfies errors.Is(_, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// ValidationError carries every violated rule of a batch validation pass.
// Builders collect all failures and report them at once rather than failing
// fast on the first.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Reasons, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a ValidationError from the collected reasons.
func NewValidationError(reasons []string) *ValidationError {
	return &ValidationError{Reasons: reasons}
}
