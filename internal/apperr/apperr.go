// Package apperr classifies service-layer failures so handlers can translate
// them into HTTP statuses without string matching.
package apperr

import (
	"errors"
)

type Kind int

const (
	// KindInternal covers persistence and downstream failures.
	KindInternal Kind = iota
	// KindValidation covers malformed or missing input.
	KindValidation
	// KindNotFound covers references to absent entities.
	KindNotFound
	// KindAuthorization covers callers lacking the required relationship.
	KindAuthorization
	// KindConflict covers operations contradicting current state.
	KindConflict
	// KindUnavailable covers upstream API failures.
	KindUnavailable
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Authorization(message string) error {
	return &Error{Kind: KindAuthorization, Message: message}
}

func Conflict(message string) error {
	return &Error{Kind: KindConflict, Message: message}
}

func Internal(message string, err error) error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

func Unavailable(message string, err error) error {
	return &Error{Kind: KindUnavailable, Message: message, Err: err}
}

// KindOf reports the kind of err. Unclassified errors count as internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Message returns the human-readable message for err, falling back to
// err.Error() for unclassified errors.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
