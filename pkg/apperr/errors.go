// Package apperr defines the error type every layer returns to the HTTP error
// formatter. The kind decides the response status; the message is what the
// client sees; the wrapped cause is only logged.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindUnauthorized
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error carries a client-facing message and an HTTP-mappable kind.
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

func (e *Error) Unwrap() error { return e.Err }

// Status maps the kind to an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindConflict:
		// conflicts are reported as unprocessable input, not 409
		return http.StatusUnprocessableEntity
	case KindInternal:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Validation(message string) *Error   { return New(KindValidation, message) }
func NotFound(message string) *Error     { return New(KindNotFound, message) }
func Unauthorized(message string) *Error { return New(KindUnauthorized, message) }
func Conflict(message string) *Error     { return New(KindConflict, message) }

// Internal wraps an unexpected failure. The cause stays reachable through
// errors.Is/As but is never rendered to the client.
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// Is lets sentinel values declared with New match copies that only differ
// in the wrapped cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e == t || (e.Kind == t.Kind && e.Message == t.Message && t.Err == nil)
}

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// KindOf reports the kind of err, KindInternal for foreign errors.
func KindOf(err error) Kind {
	if ae, ok := As(err); ok {
		return ae.Kind
	}
	return KindInternal
}
