// Package errors provides structured error handling for the slashcmd CLI.
// Every failure carries a kind discriminant so callers can switch on it
// instead of inspecting runtime types, plus the operation and language
// the failure occurred under.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	// NotFound means a requested command is absent from the resolved manifest.
	NotFound Kind = iota
	// Validation means the input was rejected before any work happened:
	// empty search query, malformed namespace, depth or segment violation.
	Validation
	// Cache means the local snapshot was unreadable or corrupt. Callers
	// recover this kind silently by treating it as a cache miss.
	Cache
	// Fetch means the remote registry failed: network, timeout, or a
	// non-2xx status. Never retried here.
	Fetch
	// Comparison means a manifest shape broke the diff invariants.
	Comparison
)

// String returns a human-readable name for the error kind.
func (k Kind) String() string {
	switch k {
	case NotFound:
		return "Not Found"
	case Validation:
		return "Validation Error"
	case Cache:
		return "Cache Error"
	case Fetch:
		return "Fetch Error"
	case Comparison:
		return "Comparison Error"
	default:
		return "Error"
	}
}

// Error is the single structured error type used across the CLI.
type Error struct {
	// Kind is the failure discriminant.
	Kind Kind
	// Op names the operation that failed (e.g. "list", "update").
	Op string
	// Language is the resolved language code the operation ran under.
	Language string
	// Message is a human-readable description of what went wrong.
	Message string
	// Remediation is a list of actionable steps to resolve the error.
	Remediation []string
	// Err is the wrapped cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, msg)
	}
	return msg
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithOp tags the error with an operation name and language. Both tags are
// set-once: existing tags are preserved so the innermost call site wins.
func (e *Error) WithOp(op, language string) *Error {
	if e.Op == "" {
		e.Op = op
	}
	if e.Language == "" {
		e.Language = language
	}
	return e
}

// New creates an error of the given kind.
func New(kind Kind, message string, remediation ...string) *Error {
	return &Error{
		Kind:        kind,
		Message:     message,
		Remediation: remediation,
	}
}

// Newf creates an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewNotFound creates a not-found error.
func NewNotFound(message string, remediation ...string) *Error {
	return New(NotFound, message, remediation...)
}

// NewValidation creates a validation error.
func NewValidation(message string, remediation ...string) *Error {
	return New(Validation, message, remediation...)
}

// NewCache creates a cache error.
func NewCache(message string, remediation ...string) *Error {
	return New(Cache, message, remediation...)
}

// NewFetch creates a fetch error.
func NewFetch(message string, remediation ...string) *Error {
	return New(Fetch, message, remediation...)
}

// NewComparison creates a comparison error.
func NewComparison(message string, remediation ...string) *Error {
	return New(Comparison, message, remediation...)
}

// Wrap wraps an existing error under the given kind, preserving the cause
// for errors.Is/As chains. Returns nil when err is nil.
func Wrap(err error, kind Kind, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// IsKind reports whether err is (or wraps) an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	e := AsError(err)
	return e != nil && e.Kind == kind
}

// AsError attempts to convert an error to an *Error.
// Returns nil if no *Error is found in the chain.
func AsError(err error) *Error {
	var e *Error
	if stderrors.As(err, &e) {
		return e
	}
	return nil
}
