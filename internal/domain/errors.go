package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure so the transport layer can map it to a
// status code without parsing messages.
type ErrorKind string

const (
	KindNotFound     ErrorKind = "NOT_FOUND"
	KindUnauthorized ErrorKind = "UNAUTHORIZED"
	KindConflict     ErrorKind = "CONFLICT"
	KindValidation   ErrorKind = "VALIDATION"
	KindInternal     ErrorKind = "INTERNAL"
)

// Error is the single error type returned across service boundaries.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches two domain errors by kind, so callers can write
// errors.Is(err, domain.ErrConflict) without caring about the message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// Kind sentinels for errors.Is checks.
var (
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrUnauthorized = &Error{Kind: KindUnauthorized}
	ErrConflict     = &Error{Kind: KindConflict}
	ErrValidation   = &Error{Kind: KindValidation}
	ErrInternal     = &Error{Kind: KindInternal}
)

func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Unauthorizedf(format string, args ...any) *Error {
	return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Internalf(err error, format string, args ...any) *Error {
	return &Error{Kind: KindInternal, Message: fmt.Sprintf(format, args...), Err: err}
}

// WrapInternalf returns err unchanged when it already carries a kind, so a
// Conflict or NotFound raised inside a repository keeps its classification
// through a generic wrap site. Anything else becomes an internal failure.
func WrapInternalf(err error, format string, args ...any) error {
	var de *Error
	if errors.As(err, &de) {
		return err
	}
	return Internalf(err, format, args...)
}

// KindOf extracts the kind from any error, defaulting to KindInternal for
// errors that did not originate in this package.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}
