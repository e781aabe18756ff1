package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Codes for every failure the services can report. Handlers and the
// deletion listener branch on these, never on error strings.
const (
	CodeInvalidID            = "InvalidId"
	CodeInvalidAuthorFields  = "InvalidAuthorFields"
	CodeInvalidTitle         = "InvalidTitle"
	CodeMissingRequiredField = "MissingRequiredField"
	CodeMissingAuthorList    = "MissingAuthorList"
	CodeEmptyAuthorList      = "EmptyAuthorList"
	CodeUnknownAuthor        = "UnknownAuthor"
	CodeUnknownDocument      = "UnknownDocument"
	CodeUnknownReferencedDoc = "UnknownReferencedDocument"
	CodeDuplicateEdge        = "DuplicateEdge"
	CodeEdgeNotFound         = "EdgeNotFound"
	CodeNotFound             = "NotFound"
	CodeInvalidSearchTerm    = "InvalidSearchTerm"
	CodeStoreConflict        = "StoreConflict"
	CodeStoreFailure         = "StoreFailure"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func Newf(status int, code, format string, args ...interface{}) *Error {
	return &Error{Status: status, Code: code, Err: fmt.Errorf(format, args...)}
}

// BadRequest covers the input-validation and state-conflict categories;
// everything the original surfaced as a 400.
func BadRequest(code, format string, args ...interface{}) *Error {
	return Newf(http.StatusBadRequest, code, format, args...)
}

func NotFound(code, format string, args ...interface{}) *Error {
	return Newf(http.StatusNotFound, code, format, args...)
}

func Conflict(code, format string, args ...interface{}) *Error {
	return Newf(http.StatusConflict, code, format, args...)
}

// Store wraps an unexpected persistence failure.
func Store(err error) *Error {
	return New(http.StatusInternalServerError, CodeStoreFailure, err)
}

// As extracts an *Error if err carries one.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// CodeOf returns the taxonomy code of err, or "" for plain errors.
func CodeOf(err error) string {
	if ae, ok := As(err); ok {
		return ae.Code
	}
	return ""
}

// StatusOf returns the HTTP status an error maps to, defaulting to 500.
func StatusOf(err error) int {
	if ae, ok := As(err); ok && ae.Status != 0 {
		return ae.Status
	}
	return http.StatusInternalServerError
}
