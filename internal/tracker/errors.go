package tracker

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors distinguishing the failure kinds callers need to react to.
// Anything not wrapping one of these is an internal storage error.
var (
	// ErrValidation marks malformed input, rejected before any transaction opens
	ErrValidation = errors.New("invalid input")

	// ErrNotFound marks an operation targeting an id with no matching row
	ErrNotFound = errors.New("not found")

	// ErrIntegrity marks a write that would violate a foreign key relationship;
	// the whole transaction has been rolled back
	ErrIntegrity = errors.New("integrity violation")
)

func validationErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func notFoundErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// wrapWriteError classifies a storage error from a write path. SQLite reports
// foreign key violations as a constraint failure in the error text; the
// modernc driver does not expose a typed error for it.
func wrapWriteError(err error, op string) error {
	if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
		return fmt.Errorf("%w: %s: %v", ErrIntegrity, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
