package domain

import "errors"

// Kind classifies a user-facing failure. The HTTP layer maps each kind to a
// status code.
type Kind string

const (
	KindValidation        Kind = "VALIDATION"
	KindConflict          Kind = "CONFLICT"
	KindNotFound          Kind = "NOT_FOUND"
	KindExpired           Kind = "EXPIRED"
	KindInvalid           Kind = "INVALID"
	KindInvalidToken      Kind = "INVALID_TOKEN"
	KindUnauthorized      Kind = "UNAUTHORIZED"
	KindForbidden         Kind = "FORBIDDEN"
	KindDependencyFailure Kind = "DEPENDENCY_FAILURE"
)

// Error is a failure whose Message is safe to show to the caller.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap returns an error with its own message that still matches err with
// errors.Is.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func (e *Error) Error() string { return string(e.Kind) + ": " + e.Message }

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of the first *Error in err's chain, or "" when err
// is not a domain error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// MessageOf returns the caller-safe message of the first *Error in err's
// chain, or "".
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return ""
}
