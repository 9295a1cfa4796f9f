package domain

// User is the server-side account identity. Email may be empty on
// identities reconstructed from a bare whoami check.
type User struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// IsAdmin reports whether the user may access admin surfaces
// (statistics, schedule editing, user management).
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserStatistics is one row of the per-user monthly aggregation.
type UserStatistics struct {
	UserID        int     `json:"userId"`
	Email         string  `json:"email"`
	TotalHours    float64 `json:"totalHours"`
	ExpectedHours float64 `json:"expectedHours,omitempty"`
}
