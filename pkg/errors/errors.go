package errors

import (
	"errors"
	"fmt"
)

// Severity classifies how an error affects the generation run.
type Severity int

const (
	// SeverityWarning errors are embedded in the output as comments and
	// do not stop generation.
	SeverityWarning Severity = iota
	// SeverityFatal errors terminate the run with a non-zero exit.
	SeverityFatal
)

// Error represents a typed generation error.
type Error struct {
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Severity Severity `json:"-"`
	Err      error    `json:"-"`
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

// New creates a new Error instance.
func New(code string, severity Severity, message string) *Error {
	return &Error{Code: code, Severity: severity, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, severity Severity, message string) *Error {
	return &Error{Code: code, Severity: severity, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrConfig       = New("CONFIG_ERROR", SeverityFatal, "invalid generator configuration")
	ErrPrecondition = New("PRECONDITION_FAILED", SeverityFatal, "precondition failed")
	ErrBestEffort   = New("BEST_EFFORT_MISS", SeverityWarning, "best-effort miss")
	ErrFormat       = New("FORMAT_WARNING", SeverityWarning, "malformed input line")
	ErrInternal     = New("INTERNAL_ERROR", SeverityFatal, "internal error")
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
	return Wrap(err, ErrInternal.Code, ErrInternal.Severity, ErrInternal.Message)
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

// IsFatal reports whether err should terminate the run.
func IsFatal(err error) bool {
	e := FromError(err)
	return e != nil && e.Severity == SeverityFatal
}
