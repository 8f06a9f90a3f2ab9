// Package errors provides structured error types for rnalayout.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the HTTP API and the library
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Structural failures detected while reading a pairing map use dedicated codes
// (INVALID_INDEX, SELF_PAIR, MALFORMED_RANGE). Other codes follow a
// hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - NOT_FOUND: Resource not found
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeSelfPair, "base %d is paired with itself", i)
//	if errors.Is(err, errors.ErrCodeSelfPair) {
//	    // Handle structural error
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
	// Pairing map errors
	ErrCodeInvalidIndex      Code = "INVALID_INDEX"
	ErrCodeSelfPair          Code = "SELF_PAIR"
	ErrCodeAsymmetricPairing Code = "ASYMMETRIC_PAIRING" // reserved: pairings are symmetrized instead
	ErrCodeMalformedRange    Code = "MALFORMED_RANGE"

	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidSequence  Code = "INVALID_SEQUENCE"
	ErrCodeInvalidStructure Code = "INVALID_STRUCTURE"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidOptions   Code = "INVALID_OPTIONS"
	ErrCodeLengthMismatch   Code = "LENGTH_MISMATCH"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

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

// IsInputError reports whether err was caused by bad caller input rather than
// an internal failure. Structural pairing errors count as input errors.
func IsInputError(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidIndex, ErrCodeSelfPair, ErrCodeAsymmetricPairing, ErrCodeMalformedRange,
		ErrCodeInvalidInput, ErrCodeInvalidSequence, ErrCodeInvalidStructure,
		ErrCodeInvalidFormat, ErrCodeInvalidOptions, ErrCodeLengthMismatch:
		return true
	}
	return false
}
