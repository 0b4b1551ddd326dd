package valuation

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange indicates a date range whose start is after its end.
	ErrInvalidRange = errors.New("invalid date range")

	// ErrInvalidStep indicates a series sampling step lower than one day.
	ErrInvalidStep = errors.New("series step must be at least one day")
)

// InvalidDateError is returned when a string cannot be parsed into a calendar date.
type InvalidDateError struct {
	Input string
	Err   error
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q, want format %q", e.Input, DateFormat)
}

func (e *InvalidDateError) Unwrap() error { return e.Err }

// InvalidPossessionError is returned when a possession record breaks an invariant.
type InvalidPossessionError struct {
	Label  string
	Reason string
}

func (e *InvalidPossessionError) Error() string {
	if e.Label == "" {
		return "invalid possession: " + e.Reason
	}
	return fmt.Sprintf("invalid possession %q: %s", e.Label, e.Reason)
}
