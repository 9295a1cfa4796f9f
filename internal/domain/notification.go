package domain

// Notification is a server-generated message for the signed-in user.
// IsRead only ever transitions unread -> read; the client never
// reverses it.
type Notification struct {
	ID      int    `json:"id"`
	Message string `json:"message"`
	IsGood  bool   `json:"isGood"`
	IsRead  bool   `json:"isRead"`
	Date    string `json:"date"`
}
