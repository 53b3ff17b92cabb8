package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation request is missing a required field or targets a non-bookable date
	ErrValidation = errors.New("domain: validation failed")

	// ErrIllegalTransition transition is not allowed from the record's current status
	ErrIllegalTransition = errors.New("domain: illegal status transition")

	// ErrAccessDenied actor is not allowed to apply the transition to this record
	ErrAccessDenied = errors.New("domain: access denied")

	// ErrCollaboratorUnavailable persistence or backend did not respond, nothing was applied
	ErrCollaboratorUnavailable = errors.New("domain: collaborator unavailable")
)

// FieldError validation error bound to a request field
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrValidation, e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return ErrValidation
}

func NewFieldError(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}
