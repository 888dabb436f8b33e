package httpdto

import (
	"time"

	"mutual-aid/internal/domain/user"
)

// RegisterRequest is used for POST /users/register
type RegisterRequest struct {
	Name        string `json:"name" binding:"required"`
	ContactInfo string `json:"contact_info" binding:"required"`
	Location    string `json:"location,omitempty"`
	Role        string `json:"role" binding:"required"`
}

// LoginRequest is used for POST /users/login
type LoginRequest struct {
	ContactInfo string `json:"contact_info" binding:"required"`
}

// AuthResponse is returned after register and login. The session token is
// what the client stores as its session record.
type AuthResponse struct {
	User         UserDTO `json:"user"`
	SessionToken string  `json:"session_token"`
	ExpiresAt    string  `json:"expires_at"`
}

func NewAuthResponse(u user.User, token string, expiresAt time.Time) AuthResponse {
	return AuthResponse{
		User:         FromUser(u),
		SessionToken: token,
		ExpiresAt:    expiresAt.UTC().Format(time.RFC3339),
	}
}
