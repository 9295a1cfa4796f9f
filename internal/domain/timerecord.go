package domain

import (
	"errors"
	"strings"
)

// TimeRecord is a single day's logged hours. Date is in server wire
// format (DD.MM.YYYY). The server enforces at most one record per user
// per day; local caches mirror that by keying on the date.
type TimeRecord struct {
	ID          int     `json:"id"`
	Date        string  `json:"date"`
	Hours       float64 `json:"hours"`
	UserID      int     `json:"userId"`
	Description string  `json:"description"`
}

// CreateTimeRecord is the payload for logging a new record.
type CreateTimeRecord struct {
	Date        string  `json:"date"`
	Hours       float64 `json:"hours"`
	Description string  `json:"description"`
}

// UpdateTimeRecord is the partial payload for editing a record.
type UpdateTimeRecord struct {
	Date        string   `json:"date,omitempty"`
	Hours       *float64 `json:"hours,omitempty"`
	Description string   `json:"description,omitempty"`
}

var (
	ErrHoursOutOfRange  = errors.New("hours must be between 0 and 24")
	ErrEmptyDescription = errors.New("description must not be empty")
)

// Validate checks the client-side constraints before a record is sent.
func (c CreateTimeRecord) Validate() error {
	if c.Hours <= 0 || c.Hours > 24 {
		return ErrHoursOutOfRange
	}
	if strings.TrimSpace(c.Description) == "" {
		return ErrEmptyDescription
	}
	return nil
}
