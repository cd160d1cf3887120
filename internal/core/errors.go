package core

import "errors"

// Validation errors are returned to the immediate caller and reported by
// the presentation layer. Not-found conditions are plain booleans, never
// errors.
var (
	// ErrInvalidDailyDosage is returned by forecasts when the daily
	// dosage is not a positive integer.
	ErrInvalidDailyDosage = errors.New("daily dosage must be a positive integer")

	// ErrInvalidDate is returned when a prescription or expiration date
	// does not parse as a YYYY-MM-DD calendar date.
	ErrInvalidDate = errors.New("dates must be in YYYY-MM-DD format")

	// ErrEmptyName is returned when a member name is blank.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrNoActiveMember is returned when an inventory operation is
	// requested with no member selected.
	ErrNoActiveMember = errors.New("no member selected")
)
