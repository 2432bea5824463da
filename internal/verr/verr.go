// Package verr defines the error kinds shared by the core packages.
//
// Every failing operation wraps exactly one of the sentinel errors
// below, so callers can classify failures with errors.Is while the
// wrapped message stays human readable.
package verr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed input: empty filenames, negative
	// or non-numeric counts, wrong argument shapes.
	ErrValidation = errors.New("validation error")

	// ErrNotFound marks lookups of filenames that were never created.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks attempts to recreate an existing file or to
	// snapshot a node that is already a snapshot.
	ErrConflict = errors.New("conflict")

	// ErrState marks operations invalid for the current tree state,
	// such as rolling back past the root.
	ErrState = errors.New("invalid state")

	// ErrRange marks out-of-range version ids and top-k requests
	// exceeding the number of indexed files.
	ErrRange = errors.New("out of range")
)

// Validationf returns a ValidationError with a formatted message.
func Validationf(format string, args ...any) error {
	return wrapf(ErrValidation, format, args...)
}

// NotFoundf returns a NotFoundError with a formatted message.
func NotFoundf(format string, args ...any) error {
	return wrapf(ErrNotFound, format, args...)
}

// Conflictf returns a ConflictError with a formatted message.
func Conflictf(format string, args ...any) error {
	return wrapf(ErrConflict, format, args...)
}

// Statef returns a StateError with a formatted message.
func Statef(format string, args ...any) error {
	return wrapf(ErrState, format, args...)
}

// Rangef returns a RangeError with a formatted message.
func Rangef(format string, args ...any) error {
	return wrapf(ErrRange, format, args...)
}

func wrapf(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}
