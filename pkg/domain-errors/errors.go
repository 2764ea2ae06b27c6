// Package domainerrors defines the coded error type shared by services, the
// query layer, and HTTP handlers. Stores return sentinel errors; services
// translate them into coded errors; transport translates codes into HTTP
// statuses.
package domainerrors

import (
	"errors"
	"net/http"
)

// Code classifies a domain error for callers and for HTTP mapping.
type Code string

const (
	// CodeValidation marks a required field that is missing or blank.
	CodeValidation Code = "VALIDATION"
	// CodeNotFound marks a referenced identifier with no matching record.
	CodeNotFound Code = "NOT_FOUND"
	// CodeEmptyCollection marks a list-all query that found zero records.
	// Deliberate contract: callers must distinguish "no records ever" from
	// a populated result.
	CodeEmptyCollection Code = "EMPTY_COLLECTION"
	// CodeInvalidInput marks input that fails structural parsing (bad UUID).
	CodeInvalidInput Code = "INVALID_INPUT"
	// CodeBadRequest marks a malformed request body.
	CodeBadRequest Code = "BAD_REQUEST"
	// CodeInvariantViolation marks a broken model invariant.
	CodeInvariantViolation Code = "INVARIANT_VIOLATION"
	// CodeInternal marks unexpected infrastructure failures.
	CodeInternal Code = "INTERNAL"
)

// Error carries a code, a human-readable message, and an optional cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New constructs a coded error with no underlying cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// HasCode reports whether err or anything it wraps carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for errors
// that did not originate in the domain.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a domain error code to an HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeValidation:
		return http.StatusUnprocessableEntity
	case CodeNotFound, CodeEmptyCollection:
		return http.StatusNotFound
	case CodeInvalidInput, CodeBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
