package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound = errors.New("resource not found")

	// Validation errors
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidPeriod     = fmt.Errorf("%w: unknown period", ErrInvalidInput)
	ErrInvalidQuery      = fmt.Errorf("%w: listing query", ErrInvalidInput)
	ErrInvalidReasonForm = errors.New("reason form is not valid")
	ErrNoReasons         = fmt.Errorf("%w: no reason selected", ErrInvalidReasonForm)
	ErrOtherReasonEmpty  = fmt.Errorf("%w: other reason has no text", ErrInvalidReasonForm)
	ErrFormState         = errors.New("reason form is in the wrong state")

	// Statistics errors
	ErrNoData     = errors.New("no statistics for period")
	ErrSuperseded = errors.New("stats load superseded by a newer request")

	// Export errors
	ErrUnknownFormat = fmt.Errorf("%w: unknown export format", ErrInvalidInput)
)

// NewNotFoundError builds a not-found error for a resource id
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

// NewValidationError builds an invalid-input error for one field
func NewValidationError(field string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidInput, field, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidReasonForm) ||
		errors.Is(err, ErrFormState)
}
