// Cookbook - Recipe Catalog and Pantry Backend
// Copyright 2026 Cookbook contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/opencookbook/cookbook

// Package apperr defines the typed error kinds surfaced by the service
// layer. Every failure crossing a package boundary is one of these kinds;
// the API layer maps kinds to HTTP status codes and never inspects the
// wrapped cause.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the caller.
type Kind int

const (
	// KindInternal is the fallback for unexpected storage or runtime
	// failures. The wrapped cause is logged, never returned to clients.
	KindInternal Kind = iota

	// KindNotFound indicates a referenced entity does not exist.
	KindNotFound

	// KindUnauthorized indicates no caller identity where one is required.
	KindUnauthorized

	// KindForbidden indicates the caller does not own the target entity.
	KindForbidden

	// KindValidation indicates input that fails a domain constraint.
	KindValidation

	// KindConflict indicates a uniqueness violation or a detected
	// concurrent write on the same aggregate.
	KindConflict
)

// String returns the stable code used in API responses and logs.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NOT_FOUND"
	case KindUnauthorized:
		return "UNAUTHORIZED"
	case KindForbidden:
		return "FORBIDDEN"
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindConflict:
		return "CONFLICT"
	default:
		return "INTERNAL_ERROR"
	}
}

// Error is a kind-classified error with an optional wrapped cause.
type Error struct {
	kind    Kind
	message string
	cause   error
}

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

// Newf creates an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{kind: kind, message: fmt.Sprintf(format, args...)}
}

// Wrap classifies an underlying error under the given kind. The cause is
// preserved for errors.Is/errors.As and logging, the message is what
// clients may see.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{kind: kind, message: message, cause: cause}
}

// Internal wraps an unexpected failure. The client-visible message is
// generic; the cause carries the detail for logs.
func Internal(cause error) *Error {
	return &Error{kind: KindInternal, message: "internal error", cause: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.kind, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.message)
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.cause
}

// Kind returns the error classification.
func (e *Error) Kind() Kind {
	return e.kind
}

// Message returns the client-visible message.
func (e *Error) Message() string {
	return e.message
}

// KindOf returns the kind of err, walking the wrap chain. Errors that do
// not carry a kind report KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
