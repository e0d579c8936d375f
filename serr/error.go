// Package serr defines the structured error surface described by the error
// handling design: configuration conflicts, structural coverage/rule
// problems, and solver failures each get their own kind so callers can
// branch on them without string matching.
package serr

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind distinguishes the error-handling categories from the error design.
type Kind string

const (
	KindConfig    Kind = "config"
	KindCoverage  Kind = "coverage"
	KindRule      Kind = "rule"
	KindSolver    Kind = "solver"
	KindTransport Kind = "transport"
)

// Error wraps the built-in error interface to allow JSON marshaling and to
// carry a Kind plus optional Field/ConstraintID context.
type Error struct {
	KindVal      Kind   `json:"kind"`
	Message      string `json:"message"`
	Field        string `json:"field,omitempty"`
	ConstraintID string `json:"constraintId,omitempty"`
	cause        error
}

// New creates a config-kind error from a format string.
func New(format string, a ...interface{}) *Error {
	return &Error{KindVal: KindConfig, Message: fmt.Sprintf(format, a...)}
}

// NewKind creates an error of the given kind.
func NewKind(kind Kind, format string, a ...interface{}) *Error {
	return &Error{KindVal: kind, Message: fmt.Sprintf(format, a...)}
}

// WithField sets the Field on the error and returns it for chaining.
func (e *Error) WithField(field string) *Error {
	if e == nil {
		return nil
	}
	e.Field = field
	return e
}

// WithConstraintID sets the ConstraintID on the error and returns it for chaining.
func (e *Error) WithConstraintID(id string) *Error {
	if e == nil {
		return nil
	}
	e.ConstraintID = id
	return e
}

// WithCause attaches the system-level cause (not marshaled).
func (e *Error) WithCause(cause error) *Error {
	if e == nil {
		return nil
	}
	e.cause = cause
	return e
}

// Kind returns the error's kind.
func (e *Error) Kind() Kind {
	if e == nil {
		return ""
	}
	return e.KindVal
}

// IsNil reports whether the error (or its message) is effectively empty.
func (e *Error) IsNil() bool {
	return e == nil || (e.Message == "" && e.cause == nil)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field=%s)", e.KindVal, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.KindVal, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// MarshalJSON customizes marshaling; the cause (a raw Go error) is omitted.
func (e Error) MarshalJSON() ([]byte, error) {
	type alias Error
	return json.Marshal(&struct {
		alias
	}{alias: alias(e)})
}

// IsKind reports whether err (or any error it wraps) is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.KindVal == k
	}
	return false
}
