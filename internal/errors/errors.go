package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a chordtab error code.
type ErrorCode string

const (
	ErrFormat              ErrorCode = "FORMAT"               // 422
	ErrInvalidRequest      ErrorCode = "INVALID_REQUEST"      // 400
	ErrAmbiguousAddressing ErrorCode = "AMBIGUOUS_ADDRESSING" // 400
	ErrNotFound            ErrorCode = "NOT_FOUND"            // 404
	ErrFileNotFound        ErrorCode = "FILE_NOT_FOUND"       // 404
	ErrNameAlreadyExists   ErrorCode = "NAME_ALREADY_EXISTS"  // 409
	ErrInternal            ErrorCode = "INTERNAL"             // 500
)

// ChordtabError represents a structured error with code, status, and details.
type ChordtabError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *ChordtabError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewFormat creates a 422 error for a malformed chord table. Decoding a
// table is all-or-nothing: one bad row aborts the whole decode.
func NewFormat(line int, msg string) *ChordtabError {
	e := &ChordtabError{
		Code:    ErrFormat,
		Status:  422,
		Message: msg,
	}
	if line > 0 {
		e.Message = fmt.Sprintf("line %d: %s", line, msg)
		e.Details = map[string]any{"line": line}
	}
	return e
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *ChordtabError {
	return &ChordtabError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewAmbiguousAddressing creates a 400 error for when both ID and name are provided.
func NewAmbiguousAddressing() *ChordtabError {
	return &ChordtabError{
		Code:    ErrAmbiguousAddressing,
		Status:  400,
		Message: "cannot specify both id and name; use one addressing mode",
	}
}

// NewNotFound creates a 404 error for when a table cannot be found.
func NewNotFound(identifier string) *ChordtabError {
	return &ChordtabError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("table not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewFileNotFound creates a 404 error for a missing file on disk.
func NewFileNotFound(path string) *ChordtabError {
	return &ChordtabError{
		Code:    ErrFileNotFound,
		Status:  404,
		Message: fmt.Sprintf("file not found: %s", path),
		Details: map[string]any{"path": path},
	}
}

// NewNameAlreadyExists creates a 409 error for table name collisions.
func NewNameAlreadyExists(name string) *ChordtabError {
	return &ChordtabError{
		Code:    ErrNameAlreadyExists,
		Status:  409,
		Message: fmt.Sprintf("table with name %q already exists", name),
		Details: map[string]any{"name": name},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *ChordtabError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &ChordtabError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is (or wraps) a ChordtabError with the given code.
func Is(err error, code ErrorCode) bool {
	var cErr *ChordtabError
	if stderrors.As(err, &cErr) {
		return cErr.Code == code
	}
	return false
}
