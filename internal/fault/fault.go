// Package fault defines the stable error taxonomy shared by the
// translation pipeline. Every failure that can cross the API boundary
// carries a machine-readable Kind; raw driver diagnostics and
// credentials never do.
package fault

import (
	"errors"
	"fmt"
)

type Kind string

const (
	// Generation covers inference-endpoint failures: unreachable,
	// unauthorized, malformed or empty output, timeout.
	Generation Kind = "generation_error"

	// Validation kinds. Statements failing these are never executed
	// and never retried.
	Extraction        Kind = "extraction_error"
	MultiStatement    Kind = "multi_statement_error"
	WriteStatement    Kind = "write_statement_error"
	UnsafeConstruct   Kind = "unsafe_construct_error"
	UnknownIdentifier Kind = "unknown_identifier_error"

	Execution     Kind = "execution_error"
	Serialization Kind = "serialization_error"
	Config        Kind = "config_error"

	Internal Kind = "internal_error"
)

// Error pairs a Kind with a human-readable message. The wrapped cause
// stays server-side; only Kind and Message are serialized to callers.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), cause: err}
}

// KindOf classifies an arbitrary error. Errors outside the taxonomy
// map to Internal.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return Internal
}

// MessageOf returns the caller-safe message for an error.
func MessageOf(err error) string {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Message
	}
	return "internal error"
}

// IsValidation reports whether the kind denotes a validation denial.
// Validation denials indicate the statement must be re-derived, not
// resubmitted, so they are never retried.
func IsValidation(kind Kind) bool {
	switch kind {
	case Extraction, MultiStatement, WriteStatement, UnsafeConstruct, UnknownIdentifier:
		return true
	default:
		return false
	}
}

// Retryable reports whether a bounded retry is permitted for the kind.
func Retryable(kind Kind) bool {
	return kind == Generation || kind == Execution
}
