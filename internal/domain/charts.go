package domain

// ActualVsRequiredPoint compares logged against scheduled hours for one
// day of the month. Date is in server wire format.
type ActualVsRequiredPoint struct {
	Date          string  `json:"date"`
	ActualHours   float64 `json:"actualHours"`
	RequiredHours float64 `json:"requiredHours"`
}

// CumulativePoint is one step of a user's running total.
type CumulativePoint struct {
	Date            string  `json:"date"`
	CumulativeHours float64 `json:"cumulativeHours"`
}

// CumulativeHoursByUser is one user's running-total series.
type CumulativeHoursByUser struct {
	UserID int               `json:"userId"`
	Email  string            `json:"email"`
	Data   []CumulativePoint `json:"data"`
}

// ActualVsPlannedPoint compares one user's logged hours against the
// monthly plan.
type ActualVsPlannedPoint struct {
	UserID       int     `json:"userId"`
	Email        string  `json:"email"`
	ActualHours  float64 `json:"actualHours"`
	PlannedHours float64 `json:"plannedHours"`
}
