package cli

import "time"

// monthGrid lays out t's month as rows of seven days starting on
// Monday. Cells outside the month are zero times.
func monthGrid(t time.Time) [][]time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1)

	var weeks [][]time.Time
	week := make([]time.Time, 7)
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		idx := mondayIndex(day.Weekday())
		week[idx] = day
		if idx == 6 {
			weeks = append(weeks, week)
			week = make([]time.Time, 7)
		}
	}
	if mondayIndex(last.Weekday()) != 6 {
		weeks = append(weeks, week)
	}
	return weeks
}

// mondayIndex maps a weekday to its column in a Monday-first week.
func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}
