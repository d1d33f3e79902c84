// Package apperr defines the error taxonomy shared by the service and
// transport layers. Services return these; the HTTP layer maps them to
// status codes with errors.Is.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers bill/item/participant lookup misses, including
	// claim writes rejected by a foreign-key constraint.
	ErrNotFound = errors.New("not found")

	// ErrValidation covers missing or malformed input caught before any
	// write.
	ErrValidation = errors.New("validation failed")

	// ErrConflictExhausted means short-code generation collided on every
	// attempt within the retry bound. Fatal to bill creation.
	ErrConflictExhausted = errors.New("short code generation exhausted retries")

	// ErrUpstream means an external collaborator (receipt OCR) failed or
	// returned unusable data. Not retried automatically.
	ErrUpstream = errors.New("upstream failure")

	// ErrPersistence covers store read/write failures.
	ErrPersistence = errors.New("persistence failure")
)

// NotFoundf wraps ErrNotFound with a formatted message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Validationf wraps ErrValidation with a formatted message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Upstream wraps err as an upstream failure.
func Upstream(err error) error {
	return fmt.Errorf("%w: %w", ErrUpstream, err)
}

// Persistence wraps err as a persistence failure.
func Persistence(err error) error {
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}
