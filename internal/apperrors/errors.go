// Package apperrors defines the typed error codes surfaced to procedure callers.
package apperrors

import (
	"errors"
	"fmt"
)

// Code identifies a class of failure visible to callers.
type Code string

const (
	// CodeBadRequest covers input validation and business-rule preconditions.
	CodeBadRequest Code = "BAD_REQUEST"

	// CodeUnauthorized means no actor could be resolved from the session.
	CodeUnauthorized Code = "UNAUTHORIZED"

	// CodeForbidden means the actor lacks the required capability.
	CodeForbidden Code = "FORBIDDEN"

	// CodeNotFound means the target row is absent.
	CodeNotFound Code = "NOT_FOUND"

	// CodeUnavailable means the persistence layer could not take a write.
	CodeUnavailable Code = "UNAVAILABLE"
)

// Error carries a Code, a caller-safe message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func BadRequest(message string) *Error {
	return &Error{Code: CodeBadRequest, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Code: CodeUnauthorized, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Code: CodeForbidden, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message}
}

// Unavailable wraps a storage failure on a write path.
func Unavailable(message string, err error) *Error {
	return &Error{Code: CodeUnavailable, Message: message, Err: err}
}

// CodeOf returns the Code of the first *Error in err's chain, or "" if none.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}
