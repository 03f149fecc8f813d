// Package session holds the lifecycle plumbing shared by every analysis
// technique: identifiers, a monotonic clock, the error taxonomy and the
// registries that own session records.
//
// Engines (why, scamper) never keep global state. Each engine is handed its
// own Registry at construction time by the composition root.
package session

import (
	"errors"
	"fmt"
)

// Error taxonomy. Every failure an engine reports wraps exactly one of these,
// so transports can tell recoverable caller mistakes from internal faults.
var (
	// ErrValidation marks malformed or out-of-domain input.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks a reference to an unknown session.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks an operation the current session state forbids.
	ErrConflict = errors.New("conflict")

	// ErrDuplicateID is returned by Registry.Insert when the id is taken.
	ErrDuplicateID = fmt.Errorf("%w: duplicate session id", ErrConflict)
)

// Validationf builds an ErrValidation-wrapped error.
func Validationf(format string, args ...any) error {
	return wrapf(ErrValidation, format, args...)
}

// NotFoundf builds an ErrNotFound-wrapped error.
func NotFoundf(format string, args ...any) error {
	return wrapf(ErrNotFound, format, args...)
}

// Conflictf builds an ErrConflict-wrapped error.
func Conflictf(format string, args ...any) error {
	return wrapf(ErrConflict, format, args...)
}

func wrapf(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}

// Kind returns the taxonomy name of err: "validation", "not_found",
// "conflict", or "" when err is not a domain error.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConflict):
		return "conflict"
	default:
		return ""
	}
}

// IsDomainError reports whether err belongs to the taxonomy above.
// Domain errors are always recoverable by the caller.
func IsDomainError(err error) bool {
	return Kind(err) != ""
}
