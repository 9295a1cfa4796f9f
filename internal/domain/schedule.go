package domain

// ScheduleEntry is one day of the configured work schedule. Date is in
// server wire format (DD.MM.YYYY).
type ScheduleEntry struct {
	ID            int     `json:"id"`
	Date          string  `json:"date"`
	RequiredHours float64 `json:"requiredHours"`
}

// ScheduleItem is the write-side shape for bulk schedule updates.
type ScheduleItem struct {
	Date          string  `json:"date"`
	RequiredHours float64 `json:"requiredHours"`
}
