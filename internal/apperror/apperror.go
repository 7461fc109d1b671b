// Package apperror defines the typed errors returned by the service layer.
// Every error carries an explicit Kind so that the transport boundary can map
// it to a response code without inspecting the message text.
package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an application error.
type Kind int

const (
	// KindInternal is the zero value: anything not classified otherwise.
	KindInternal Kind = iota
	// KindValidation marks malformed user input.
	KindValidation
	// KindAuth marks missing or invalid credentials.
	KindAuth
	// KindConflict marks a uniqueness violation (duplicate email).
	KindConflict
	// KindNotFound marks a referenced resource that does not exist.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Error is an error with a Kind and a user-facing Message.
// Err holds the underlying cause and is never shown to clients.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error of the given kind.
func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Validation creates a KindValidation error.
func Validation(message string) *Error {
	return New(KindValidation, message, nil)
}

// Auth creates a KindAuth error.
func Auth(message string) *Error {
	return New(KindAuth, message, nil)
}

// Conflict creates a KindConflict error.
func Conflict(message string, err error) *Error {
	return New(KindConflict, message, err)
}

// NotFound creates a KindNotFound error.
func NotFound(message string) *Error {
	return New(KindNotFound, message, nil)
}

// Internal creates a KindInternal error wrapping err.
func Internal(message string, err error) *Error {
	return New(KindInternal, message, err)
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf reports the Kind of err. Untyped errors are KindInternal.
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return KindInternal
}

func IsValidation(err error) bool { return err != nil && KindOf(err) == KindValidation }
func IsAuth(err error) bool       { return err != nil && KindOf(err) == KindAuth }
func IsConflict(err error) bool   { return err != nil && KindOf(err) == KindConflict }
func IsNotFound(err error) bool   { return err != nil && KindOf(err) == KindNotFound }
