package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is fixed at registration.
type Role string

const (
	RoleResident Role = "Resident"
	RoleHelper   Role = "Helper"
)

// ParseRole accepts the canonical names case-insensitively, plus the
// requester/volunteer names used by the older client.
func ParseRole(value string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "resident", "requester":
		return RoleResident, true
	case "helper", "volunteer":
		return RoleHelper, true
	default:
		return "", false
	}
}

// User represents the users table
type User struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	Name        string    `gorm:"type:varchar(255);not null"`
	ContactInfo string    `gorm:"type:varchar(255);not null"`
	ContactKey  string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_contact_key"`
	Location    string    `gorm:"type:varchar(255)"`
	Role        Role      `gorm:"type:varchar(16);not null"`
	CreatedAt   time.Time
}

func (User) TableName() string {
	return "users"
}

func (u User) IsHelper() bool {
	return u.Role == RoleHelper
}

// NormalizeContact produces the lookup key for a contact identifier.
func NormalizeContact(contact string) string {
	return strings.ToLower(strings.TrimSpace(contact))
}
