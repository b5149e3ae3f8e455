// Package domain contains the core data types for the trip planner backend.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, handler).
package domain

import (
	"strings"
	"time"
)

// DateLayout is the only accepted calendar date format for trip dates.
const DateLayout = "2006-01-02"

// Trip represents a single travel record owned by a user.
// Dates are kept as YYYY-MM-DD strings end to end — the database columns are
// text and validation parses them only to check well-formedness and ordering.
// Nil pointer fields mean "not provided" and map to NULL columns.
type Trip struct {
	TripUUID    string  `json:"trip_uuid"`
	UserUUID    string  `json:"user_uuid"`
	Name        string  `json:"name"`
	Destination string  `json:"destination"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
	Preferences *string `json:"preferences,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// Validate checks the full record against the trip business rules:
//
//   - trip_uuid, user_uuid, name, destination: non-empty after trimming
//   - start_date, end_date: when present, a valid YYYY-MM-DD calendar date
//   - when both dates are present, start_date must not be after end_date
//
// The first violation wins; the returned error is a *ValidationError
// wrapping ErrValidation. Both create and edit paths validate the full
// record, so a trip that passed Validate is safe to persist as-is.
func (t Trip) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"trip_uuid", t.TripUUID},
		{"user_uuid", t.UserUUID},
		{"name", t.Name},
		{"destination", t.Destination},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &ValidationError{Field: r.field, Kind: FieldRequired}
		}
	}

	start, err := parseOptionalDate(t.StartDate)
	if err != nil {
		return &ValidationError{Field: "start_date", Kind: FieldInvalidDate}
	}
	end, err := parseOptionalDate(t.EndDate)
	if err != nil {
		return &ValidationError{Field: "end_date", Kind: FieldInvalidDate}
	}

	if start != nil && end != nil && start.After(*end) {
		return &ValidationError{Field: "start_date", Kind: FieldDateOrder}
	}

	return nil
}

// parseOptionalDate parses a nillable YYYY-MM-DD string.
// time.Parse rejects out-of-range months and month-aware day values
// (e.g. "2025-13-01" and "2025-02-30" both fail).
func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	d, err := time.Parse(DateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
