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

// ErrTallyUnreachable indicates that the Tally endpoint could not be contacted.
var ErrTallyUnreachable = errors.New("tally endpoint unreachable")

// ErrTallyRejected indicates that Tally accepted the request but reported import errors.
var ErrTallyRejected = errors.New("tally rejected the import")

// AppError carries an HTTP-ish status code alongside the wrapped cause.
// Repositories use it to surface infrastructure failures without leaking
// driver-specific error types upward.
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

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
