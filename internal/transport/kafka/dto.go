package kafka

import (
	"strings"
	"time"

	"beexpress/internal/service/users"
)

// EventDTO is a data transfer object for users.Event. The field names
// follow the identity provider's webhook payload.
type EventDTO struct {
	Type string `json:"type"`
	Data struct {
		ID          string    `json:"id"`
		Role        string    `json:"role"`
		PhoneNumber string    `json:"phone_number"`
		CreatedAt   time.Time `json:"created_at"`
	} `json:"data"`
}

// ToDomain converts EventDTO to users.Event
func ToDomain(dto EventDTO) users.Event {
	return users.Event{
		Type:        strings.TrimSpace(dto.Type),
		UserID:      strings.TrimSpace(dto.Data.ID),
		Role:        strings.TrimSpace(dto.Data.Role),
		PhoneNumber: strings.TrimSpace(dto.Data.PhoneNumber),
		CreatedAt:   dto.Data.CreatedAt,
	}
}
