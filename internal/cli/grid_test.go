package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthGrid_June2025(t *testing.T) {
	// June 2025 starts on a Sunday and ends on a Monday.
	weeks := monthGrid(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))
	require.Len(t, weeks, 6)

	// First week: only the Sunday cell is set.
	for i := 0; i < 6; i++ {
		assert.True(t, weeks[0][i].IsZero())
	}
	assert.Equal(t, 1, weeks[0][6].Day())

	// Last week: only Monday is set.
	assert.Equal(t, 30, weeks[5][0].Day())
	for i := 1; i < 7; i++ {
		assert.True(t, weeks[5][i].IsZero())
	}
}

func TestMonthGrid_CoversEveryDay(t *testing.T) {
	weeks := monthGrid(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))

	seen := map[int]bool{}
	for _, week := range weeks {
		for _, day := range week {
			if !day.IsZero() {
				assert.Equal(t, time.February, day.Month())
				seen[day.Day()] = true
			}
		}
	}
	assert.Len(t, seen, 29)
}

func TestMonthGrid_FullRectangle(t *testing.T) {
	// September 2025 starts on a Monday; first row has no padding.
	weeks := monthGrid(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 1, weeks[0][0].Day())
	assert.Equal(t, 7, weeks[0][6].Day())
}

func TestMondayIndex(t *testing.T) {
	assert.Equal(t, 0, mondayIndex(time.Monday))
	assert.Equal(t, 5, mondayIndex(time.Saturday))
	assert.Equal(t, 6, mondayIndex(time.Sunday))
}
