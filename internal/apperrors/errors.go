package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrForbidden indicates that the caller is not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrSourceFetch indicates that one of the ledger sources (openings, expenses,
// purchases or their sessions) could not be read. A report built without one
// of its sources would be misleading, so this error always fails the report.
var ErrSourceFetch = errors.New("ledger source fetch failed")

// ErrReferenceResolution indicates that a user, product or cash register lookup
// failed. Callers recover from it with placeholder display values.
var ErrReferenceResolution = errors.New("reference resolution failed")

// ErrUnknownTransactionType is returned when a ledger entry carries a type the
// balance logic does not know how to apply.
var ErrUnknownTransactionType = errors.New("unknown transaction type")

// ErrUnsupportedFormat indicates an export format with no registered renderer.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError builds an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}
