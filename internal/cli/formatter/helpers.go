package formatter

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatHours renders fractional hours compactly: 8 -> "8h",
// 7.5 -> "7.5h".
func FormatHours(hours float64) string {
	s := strconv.FormatFloat(hours, 'f', -1, 64)
	return s + "h"
}

// FormatHoursPair renders actual against expected hours, colored by
// whether the actual meets the expectation.
func FormatHoursPair(actual, expected float64) string {
	pair := fmt.Sprintf("%s / %s", FormatHours(actual), FormatHours(expected))
	if actual >= expected {
		return StyleGreen.Render(pair)
	}
	return StyleYellow.Render(pair)
}

// Truncate shortens s to max visible characters with an ellipsis.
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return strings.TrimSpace(s[:max-1]) + "…"
}
