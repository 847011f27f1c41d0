// Package errs defines the sentinel errors shared across the booking and
// document-issuing core. Handlers map these to HTTP responses in one place.
package errs

import "errors"

// ErrValidation marks caller-supplied data that violates a precondition.
// Reported verbatim to the caller, never retried.
var ErrValidation = errors.New("validation failed")

// ErrStoreUnavailable marks a transient persistence failure. The whole
// operation is safe to retry: no number is consumed, no partial record exists.
var ErrStoreUnavailable = errors.New("store unavailable")

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrCodeSpaceExhausted is returned when booking-code generation keeps
// colliding with existing codes past the retry bound. Operator-visible,
// extremely rare.
var ErrCodeSpaceExhausted = errors.New("booking code space exhausted")

// Validation wraps msg as an ErrValidation so callers can both match the
// class with errors.Is and surface the specific message.
func Validation(msg string) error {
	return &validationError{msg: msg}
}

type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Is(target error) bool { return target == ErrValidation }
