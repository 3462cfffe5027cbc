package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors that make up the failure taxonomy.
var (
	// ErrValidation is matched by every *ValidationError and by ErrNoFieldsProvided.
	ErrValidation = errors.New("validation failed")

	// ErrReferenceMissing is matched by every *ReferenceError.
	ErrReferenceMissing = errors.New("referenced entity does not exist")

	// ErrDuplicate is returned when a unique or primary key is already taken.
	ErrDuplicate = errors.New("duplicate entry")

	// ErrStorage wraps any other failure reported by the store.
	ErrStorage = errors.New("storage failure")

	// ErrNoFieldsProvided is returned by Update when the patch is empty.
	ErrNoFieldsProvided = fmt.Errorf("%w: no fields provided", ErrValidation)
)

// ValidationError describes one rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError returns a *ValidationError for field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ReferenceError reports a foreign key that points at no row.
type ReferenceError struct {
	// Field is the input field holding the reference, e.g. "subscriber_id".
	Field string
	// Entity is the referenced entity, e.g. "subscriber".
	Entity string
}

// NewReferenceError returns a *ReferenceError for field pointing at entity.
func NewReferenceError(field, entity string) *ReferenceError {
	return &ReferenceError{Field: field, Entity: entity}
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s does not reference an existing %s", e.Field, e.Entity)
}

// Is reports whether target is ErrReferenceMissing.
func (e *ReferenceError) Is(target error) bool {
	return target == ErrReferenceMissing
}
