package saju

import "fmt"

// ValidationError reports an input field outside its documented range.
type ValidationError struct {
	Field string
	Value int
	Min   int
	Max   int
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
	}
	return fmt.Sprintf("invalid %s %d: must be between %d and %d", e.Field, e.Value, e.Min, e.Max)
}

// ChartExtractionError means the calendar has no record for the birth date.
type ChartExtractionError struct {
	Year, Month, Day int
	Err              error
}

func (e *ChartExtractionError) Error() string {
	return fmt.Sprintf("no calendar record for %04d-%02d-%02d", e.Year, e.Month, e.Day)
}

func (e *ChartExtractionError) Unwrap() error { return e.Err }

func checkRange(field string, v, lo, hi int) error {
	if v < lo || v > hi {
		return &ValidationError{Field: field, Value: v, Min: lo, Max: hi}
	}
	return nil
}

// ValidateDate checks a birth moment before any lookup. Out-of-range values are never clamped.
func ValidateDate(year, month, day, hour int) error {
	if err := checkRange("year", year, 1900, 2100); err != nil {
		return err
	}
	if err := checkRange("month", month, 1, 12); err != nil {
		return err
	}
	if err := checkRange("day", day, 1, 31); err != nil {
		return err
	}
	return checkRange("hour", hour, 0, 23)
}
