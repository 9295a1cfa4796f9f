package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWireKeyRoundTrip(t *testing.T) {
	wires := []string{"01.01.2024", "29.02.2024", "31.12.1999", "09.06.2025"}
	for _, s := range wires {
		key, err := WireToKey(s)
		require.NoError(t, err)
		back, err := KeyToWire(key)
		require.NoError(t, err)
		assert.Equal(t, s, back)
	}
}

func TestKeyWireRoundTrip(t *testing.T) {
	keys := []string{"2024-01-01", "2024-02-29", "1999-12-31"}
	for _, s := range keys {
		wire, err := KeyToWire(s)
		require.NoError(t, err)
		back, err := WireToKey(wire)
		require.NoError(t, err)
		assert.Equal(t, s, back)
	}
}

func TestParseWire_Invalid(t *testing.T) {
	for _, s := range []string{"", "2024-01-01", "32.01.2024", "01/01/2024", "1.1.2024"} {
		_, err := ParseWire(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestAddMonths_AnchorsToFirst(t *testing.T) {
	// Stepping from Jan 31 must land in February, not skip to March.
	jan31 := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)
	next := AddMonths(jan31, 1)
	assert.Equal(t, time.February, next.Month())
	assert.Equal(t, 1, next.Day())

	prev := AddMonths(time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC), -1)
	assert.Equal(t, time.February, prev.Month())
	assert.Equal(t, 1, prev.Day())
}

func TestAddMonths_YearBoundary(t *testing.T) {
	dec := time.Date(2024, time.December, 15, 0, 0, 0, 0, time.UTC)
	next := AddMonths(dec, 1)
	assert.Equal(t, 2025, next.Year())
	assert.Equal(t, time.January, next.Month())

	jan := time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC)
	prev := AddMonths(jan, -1)
	assert.Equal(t, 2024, prev.Year())
	assert.Equal(t, time.December, prev.Month())
}

func TestMonthWindow(t *testing.T) {
	cases := []struct {
		in          string
		first, last string
	}{
		{"2024-02-10", "2024-02-01", "2024-02-29"},
		{"2025-02-10", "2025-02-01", "2025-02-28"},
		{"2025-01-31", "2025-01-01", "2025-01-31"},
		{"2025-04-01", "2025-04-01", "2025-04-30"},
	}
	for _, tc := range cases {
		in, err := ParseKey(tc.in)
		require.NoError(t, err)
		first, last := MonthWindow(in)
		assert.Equal(t, tc.first, FormatKey(first))
		assert.Equal(t, tc.last, FormatKey(last))
	}
}
