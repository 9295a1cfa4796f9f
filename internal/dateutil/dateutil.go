// Package dateutil converts between the two date representations the
// client deals with: the server wire format DD.MM.YYYY and the
// YYYY-MM-DD keys used for local caches. Both conversions are lossless
// and deterministic; store logic depends on that.
package dateutil

import (
	"fmt"
	"time"
)

const (
	// WireFormat is the date layout used by the server API.
	WireFormat = "02.01.2006"

	// KeyFormat is the date layout used for cache keys and display.
	KeyFormat = "2006-01-02"
)

// FormatWire renders a time as a DD.MM.YYYY wire date.
func FormatWire(t time.Time) string {
	return t.Format(WireFormat)
}

// FormatKey renders a time as a YYYY-MM-DD cache key.
func FormatKey(t time.Time) string {
	return t.Format(KeyFormat)
}

// ParseWire parses a DD.MM.YYYY wire date.
func ParseWire(s string) (time.Time, error) {
	t, err := time.Parse(WireFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing wire date %q: %w", s, err)
	}
	return t, nil
}

// ParseKey parses a YYYY-MM-DD cache key.
func ParseKey(s string) (time.Time, error) {
	t, err := time.Parse(KeyFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date key %q: %w", s, err)
	}
	return t, nil
}

// WireToKey converts a DD.MM.YYYY string to its YYYY-MM-DD key.
func WireToKey(s string) (string, error) {
	t, err := ParseWire(s)
	if err != nil {
		return "", err
	}
	return FormatKey(t), nil
}

// KeyToWire converts a YYYY-MM-DD key to its DD.MM.YYYY wire form.
func KeyToWire(s string) (string, error) {
	t, err := ParseKey(s)
	if err != nil {
		return "", err
	}
	return FormatWire(t), nil
}

// MonthAnchor returns the first day of t's month. Month navigation
// always steps from this anchor so that stepping from Jan 31 lands in
// February instead of rolling over to March.
func MonthAnchor(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// AddMonths steps n calendar months from t's month anchor.
func AddMonths(t time.Time, n int) time.Time {
	anchor := MonthAnchor(t)
	return anchor.AddDate(0, n, 0)
}

// MonthWindow returns the first and last day of t's month.
func MonthWindow(t time.Time) (first, last time.Time) {
	first = MonthAnchor(t)
	last = first.AddDate(0, 1, -1)
	return first, last
}
