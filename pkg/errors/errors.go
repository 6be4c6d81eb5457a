// Package errors provides structured error types for crossgrid.
//
// Every failure that crosses a package boundary carries a machine-readable
// [Code] so the CLI and the HTTP server can map it to an exit status, a
// response code, or a user-facing message without string matching.
//
// # Error Codes
//
//   - INVALID_*: a caller passed malformed values to a constructor
//   - BAD_REQUEST: user input exceeded the request bounds; the message is safe
//     to echo verbatim
//   - TIMEOUT: the generation deadline expired before enumeration finished
//   - INTERNAL_ERROR: anything unanticipated
//
// # Usage
//
//	err := errors.New(errors.ErrCodeBadRequest, "Too many words! (maximum of %d)", 5)
//	if errors.Is(err, errors.ErrCodeBadRequest) {
//	    // respond with 400 and errors.UserMessage(err)
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Caller contract violations
	ErrCodeInvalidOrientation Code = "INVALID_ORIENTATION"
	ErrCodeInvalidWord        Code = "INVALID_WORD"
	ErrCodeInvalidFormat      Code = "INVALID_FORMAT"
	ErrCodeInvalidOptions     Code = "INVALID_OPTIONS"

	// User-facing request errors
	ErrCodeBadRequest Code = "BAD_REQUEST"

	// Resource limits
	ErrCodeTimeout     Code = "TIMEOUT"
	ErrCodeRateLimited Code = "RATE_LIMITED"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsClientError reports whether err was caused by the request itself: a bad
// word list, word, orientation, format or option. Such errors carry messages
// that are safe to show to the caller as-is.
func IsClientError(err error) bool {
	switch GetCode(err) {
	case ErrCodeBadRequest, ErrCodeInvalidWord, ErrCodeInvalidOrientation,
		ErrCodeInvalidFormat, ErrCodeInvalidOptions:
		return true
	}
	return false
}
