package users

import "time"

// Event is a single identity-provider user event
type Event struct {
	Type        string    `json:"type"`
	UserID      string    `json:"user_id"`
	Role        string    `json:"role"`
	PhoneNumber string    `json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
}
