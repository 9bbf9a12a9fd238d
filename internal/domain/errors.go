package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvariantViolation marks an entity whose persisted fields contradict
	// each other (e.g. assigned employee id differs from staff_member_id).
	// Such records are surfaced, never silently repaired.
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrMalformedRecord marks an entity missing a field required for a
	// computation. Aggregates skip the affected contribution and continue.
	ErrMalformedRecord = errors.New("malformed record")
)

// ValidationError rejects caller input before it reaches persistence.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
