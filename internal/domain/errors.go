package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is the sentinel all trip validation failures wrap.
// Handlers should map this to HTTP 422 Unprocessable Entity.
// Use errors.As with *ValidationError to inspect the field and kind.
var ErrValidation = errors.New("validation error")

// ValidationKind identifies which rule a ValidationError violated.
// Callers need to tell "wrong type" apart from "empty/missing", so the kind
// is part of the error value rather than just the message.
type ValidationKind string

const (
	// FieldRequired: a required text field is missing or blank after trimming.
	FieldRequired ValidationKind = "required_field"

	// FieldWrongType: a non-text value was supplied where text is required.
	// With typed structs this can only arise at the JSON boundary, where the
	// decoder reports the offending field.
	FieldWrongType ValidationKind = "wrong_type"

	// FieldInvalidDate: a date field is present but not a valid YYYY-MM-DD
	// calendar date.
	FieldInvalidDate ValidationKind = "invalid_date_format"

	// FieldDateOrder: start_date and end_date are both present and valid,
	// but start_date falls after end_date.
	FieldDateOrder ValidationKind = "date_order"
)

// ValidationError describes a single trip validation failure.
// Validation stops at the first violation, so one error carries everything
// the caller needs.
type ValidationError struct {
	Field string
	Kind  ValidationKind
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case FieldRequired:
		return fmt.Sprintf("%s is required", e.Field)
	case FieldWrongType:
		return fmt.Sprintf("%s must be a string", e.Field)
	case FieldInvalidDate:
		return fmt.Sprintf("%s must be a valid date in YYYY-MM-DD format", e.Field)
	case FieldDateOrder:
		return "start_date must not be after end_date"
	}
	return fmt.Sprintf("%s is invalid", e.Field)
}

// Is makes errors.Is(err, ErrValidation) succeed for every ValidationError,
// so handlers can map the whole family to 422 without enumerating kinds.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
