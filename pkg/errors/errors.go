// Package errors provides the coded errors shared by the Sunwheel CLI and
// HTTP server.
//
// Every failure that crosses a process boundary carries a [Code]: the server
// maps codes to HTTP statuses and the CLI maps them to exit messages, so the
// two surfaces stay consistent without string matching.
//
// Codes follow a hierarchical naming convention:
//   - INVALID_*: input validation failures
//   - *_NOT_FOUND: missing resources
//   - INTERNAL_*: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidTree, "duplicate node id: %s", id)
//	if errors.Is(err, errors.ErrCodeInvalidTree) {
//	    // handle the validation failure
//	}
//
//	// Wrap causes without losing the chain
//	err := errors.Wrap(errors.ErrCodeStore, origErr, "load document %s", id)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidTree     Code = "INVALID_TREE"
	ErrCodeInvalidNode     Code = "INVALID_NODE"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidDocument Code = "INVALID_DOCUMENT"

	// Layout errors
	ErrCodeGapExceedsRange Code = "GAP_EXCEEDS_RANGE"
	ErrCodeCyclicStructure Code = "CYCLIC_STRUCTURE"

	// Resource not found errors
	ErrCodeNotFound         Code = "NOT_FOUND"
	ErrCodeDocumentNotFound Code = "DOCUMENT_NOT_FOUND"
	ErrCodeNodeNotFound     Code = "NODE_NOT_FOUND"
	ErrCodeFileNotFound     Code = "FILE_NOT_FOUND"

	// History errors
	ErrCodeNothingToUndo Code = "NOTHING_TO_UNDO"
	ErrCodeNothingToRedo Code = "NOTHING_TO_REDO"

	// Storage errors
	ErrCodeStore Code = "STORE_ERROR"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a coded error with an optional wrapped cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error renders as "CODE: message" with the cause chained on when present.
func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error { return e.Cause }

// New creates an Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error whose cause is err.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// GetCode extracts the code from the first *Error in err's chain. It returns
// the empty code when no *Error is present.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

// UserMessage returns the message to show an end user: the coded message
// without its code prefix, or err.Error() for plain errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
