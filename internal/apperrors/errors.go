package apperrors

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeNotFound     Code = "NOT_FOUND"
	CodePrecondition Code = "PRECONDITION_FAILED"
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeConflict     Code = "CONFLICT"
)

// Error is the application error carried from the service layer up to the
// HTTP handlers, which map the code to a status.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message}
}

func Precondition(message string) *Error {
	return &Error{Code: CodePrecondition, Message: message}
}

func Validation(message string) *Error {
	return &Error{Code: CodeValidation, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Code: CodeConflict, Message: message}
}

// Wrap attaches a cause to a typed error.
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

func codeOf(err error) (Code, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code, true
	}
	return "", false
}

func IsNotFound(err error) bool {
	c, ok := codeOf(err)
	return ok && c == CodeNotFound
}

func IsPrecondition(err error) bool {
	c, ok := codeOf(err)
	return ok && c == CodePrecondition
}

func IsValidation(err error) bool {
	c, ok := codeOf(err)
	return ok && c == CodeValidation
}

func IsConflict(err error) bool {
	c, ok := codeOf(err)
	return ok && c == CodeConflict
}
