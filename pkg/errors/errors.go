package errors

import (
	"errors"
	"fmt"
)

// Category codes. Every domain code descends from CodeUniversity.
const (
	CodeUniversity = "UNIVERSITY_ERROR"
	CodeValidation = "VALIDATION_ERROR"
	CodeEnrollment = "ENROLLMENT_ERROR"
	CodeGrade      = "GRADE_ERROR"
	CodePayment    = "PAYMENT_ERROR"
	CodeInternal   = "INTERNAL_ERROR"
)

// Error represents a typed domain error tagged by category code.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches errors by code so that clones of a predefined error compare equal to it.
// Any domain error also matches the root ErrUniversity.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	if t.Code == e.Code {
		return true
	}
	return t.Code == CodeUniversity && e.Code != CodeInternal
}

// New creates a new Error instance.
func New(code string, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Predefined errors, one per category.
var (
	ErrUniversity = New(CodeUniversity, "university error")
	ErrValidation = New(CodeValidation, "validation failed")
	ErrEnrollment = New(CodeEnrollment, "enrollment failed")
	ErrGrade      = New(CodeGrade, "grade rejected")
	ErrPayment    = New(CodePayment, "payment rejected")
	ErrInternal   = New(CodeInternal, "internal error")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// Clonef is Clone with a formatted message.
func Clonef(err *Error, format string, args ...interface{}) *Error {
	return Clone(err, fmt.Sprintf(format, args...))
}

// Label returns the human readable category name used by the console.
func Label(err error) string {
	switch FromError(err).Code {
	case CodeValidation:
		return "Validation Error"
	case CodeEnrollment:
		return "Enrollment Error"
	case CodeGrade:
		return "Grade Error"
	case CodePayment:
		return "Payment Error"
	case CodeUniversity:
		return "University Error"
	default:
		return "Internal Error"
	}
}
