// Package errors provides structured error types for pinmap.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - Failure isolation decisions (a point, a canvas, a style or a request)
//
// # Error Codes
//
// Codes follow the taxonomy of the layout engine:
//   - CONFIGURATION: unknown region/projection/aspect, recovered by fallback
//   - DEGENERATE_BOUNDS: zero-area projected bounds, fatal for one canvas
//   - INVALID_COLOR: malformed style color, fatal for one location set's style
//   - MISSING_COORDINATE / INVALID_COORDINATE: one point is excluded
//   - OUT_OF_FRAME: a placed point lies outside its canvas (warning only)
//   - INVALID_*, NOT_FOUND, INTERNAL_ERROR: request-level failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidColor, "invalid hex color %q", s)
//	if errors.Is(err, errors.ErrCodeInvalidColor) {
//	    // fall back to the default style
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Recovered locally through a documented fallback
	ErrCodeConfiguration Code = "CONFIGURATION"

	// Layout errors
	ErrCodeDegenerateBounds  Code = "DEGENERATE_BOUNDS"
	ErrCodeInvalidColor      Code = "INVALID_COLOR"
	ErrCodeMissingCoordinate Code = "MISSING_COORDINATE"
	ErrCodeInvalidCoordinate Code = "INVALID_COORDINATE"
	ErrCodeOutOfFrame        Code = "OUT_OF_FRAME"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// GetCodeOr is GetCode with a fallback for errors that carry no code.
func GetCodeOr(err error, fallback Code) Code {
	if c := GetCode(err); c != "" {
		return c
	}
	return fallback
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

// IsRecoverable reports whether err belongs to a category that is handled
// by isolating or falling back rather than failing the request.
func IsRecoverable(err error) bool {
	switch GetCode(err) {
	case ErrCodeConfiguration, ErrCodeInvalidColor, ErrCodeMissingCoordinate, ErrCodeInvalidCoordinate:
		return true
	}
	return false
}
