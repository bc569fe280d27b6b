package core

import (
	"errors"
	"fmt"
)

// ErrInconsistentState marks a pipeline invariant violation. It is never
// produced by bad input, only by a bug.
var ErrInconsistentState = errors.New("internal consistency violation")

// Error constructors with context
func NewValidationError(field string, reason string) error {
	return fmt.Errorf("validation failed for %s: %s", field, reason)
}

func NewConsistencyError(detail string) error {
	return fmt.Errorf("%w: %s", ErrInconsistentState, detail)
}

// IsConsistencyError checks for a pipeline invariant violation
func IsConsistencyError(err error) bool {
	return errors.Is(err, ErrInconsistentState)
}
