package models

import (
	"errors"
	"fmt"
)

// Request-terminal error taxonomy. Handlers map these onto HTTP statuses;
// everything else surfaces as a 500.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
)

// ValidationError rejects unknown enum values and malformed fields at the
// boundary instead of storing them verbatim.
type ValidationError struct {
	Reason string
}

func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s", e.Reason)
}
