// Package errors defines the structured errors shared by the toric CLI
// and the job API.
//
// Failures that cross a process boundary carry a machine-readable
// [Code] next to the human-readable message, so clients can branch on
// the category without parsing text:
//
//	err := errors.New(errors.ErrCodeInvalidProblem, "matrix row %d is ragged", i)
//	if errors.Is(err, errors.ErrCodeInvalidProblem) {
//	    // reject the request
//	}
//
// Wrap keeps the cause on the chain, so the standard library's
// errors.Is and errors.As still see through an *Error:
//
//	err := errors.Wrap(errors.ErrCodeStore, cause, "persist job %s", id)
package errors

import (
	"errors"
	"fmt"
)

// Code identifies an error category. Codes appear verbatim in API
// responses and must stay stable.
type Code string

// The error vocabulary. INVALID_* codes reject input, JOB_* report job
// lifecycle conflicts, and the remainder are server-side failures.
const (
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidProblem Code = "INVALID_PROBLEM"

	ErrCodeNotFound    Code = "NOT_FOUND"
	ErrCodeJobNotFound Code = "JOB_NOT_FOUND"
	ErrCodeJobNotDone  Code = "JOB_NOT_DONE"
	ErrCodeJobFailed   Code = "JOB_FAILED"

	ErrCodeStore    Code = "STORE_ERROR"
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error pairs a Code with a formatted message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// New builds an *Error from a code and a printf-style message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error that records cause as the underlying error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

// Unwrap exposes the cause to the standard errors package.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether the first *Error on err's chain carries code.
func Is(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// GetCode returns the code of the first *Error on err's chain, or the
// empty string when there is none.
func GetCode(err error) Code {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Code
}

// UserMessage strips the code prefix: for an *Error it returns just the
// message, for any other error the full Error() text.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	return e.Message
}
