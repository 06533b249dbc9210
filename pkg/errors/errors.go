// Package errors provides structured error types for the packsmith application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the library packages
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Configuration validation failures (fatal, surfaced immediately)
//   - POOL_*: Card pool loading problems (per-file, non-fatal for the run)
//   - INSUFFICIENT_CARDS: An assembler draw cannot be satisfied
//   - ASSET_READ: One image failed to decode during packing (non-fatal)
//   - OUTPUT_EXISTS: The output directory is already populated
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidGrid, "grid must have at least one row, got %d", rows)
//	if errors.Is(err, errors.ErrCodeInvalidGrid) {
//	    // Handle configuration error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeAssetRead, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Configuration validation errors. These indicate a configuration mistake
	// rather than bad input data and abort the run immediately.
	ErrCodeInvalidGrid     Code = "INVALID_GRID"
	ErrCodeInvalidCardSize Code = "INVALID_CARD_SIZE"
	ErrCodeInvalidChance   Code = "INVALID_CHANCE"
	ErrCodeInvalidCount    Code = "INVALID_COUNT"
	ErrCodeInvalidSortMode Code = "INVALID_SORT_MODE"
	ErrCodeInvalidPolicy   Code = "INVALID_POLICY"
	ErrCodeInvalidWorkers  Code = "INVALID_WORKERS"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	// Pool loading errors
	ErrCodePoolLoad     Code = "POOL_LOAD"
	ErrCodePoolNotFound Code = "POOL_NOT_FOUND"

	// Assembly errors
	ErrCodeInsufficientCards Code = "INSUFFICIENT_CARDS"

	// Packing errors
	ErrCodeAssetRead Code = "ASSET_READ"

	// Output errors
	ErrCodeOutputExists Code = "OUTPUT_EXISTS"

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
