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

// ErrForbidden indicates that the caller lacks the permission required for the action.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates that the resource is in a state that does not allow the action.
var ErrConflict = errors.New("conflict")

// ErrInternal indicates an unexpected failure in a backing dependency.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code alongside a message and the wrapped cause.
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

// NewAppError wraps err with a code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// ValidationError is a business-rule rejection. Its message is meant to be shown
// to the caller as-is.
type ValidationError struct {
	Reason string
	Cause  error
}

// NewValidationError builds a ValidationError with a formatted reason.
// cause may be nil or a more specific sentinel the caller can match on.
func NewValidationError(cause error, format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...), Cause: cause}
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Is makes every ValidationError match ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
