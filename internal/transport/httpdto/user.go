package httpdto

import (
	"time"

	"mutual-aid/internal/domain/user"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContactInfo string `json:"contact_info"`
	Location    string `json:"location,omitempty"`
	Role        string `json:"role"`
	CreatedAt   string `json:"created_at"`
}

// FromUser converts a domain user to UserDTO
func FromUser(u user.User) UserDTO {
	return UserDTO{
		ID:          u.ID.String(),
		Name:        u.Name,
		ContactInfo: u.ContactInfo,
		Location:    u.Location,
		Role:        string(u.Role),
		CreatedAt:   u.CreatedAt.UTC().Format(time.RFC3339),
	}
}
