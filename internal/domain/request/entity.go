package request

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryGroceries      Category = "Groceries"
	CategoryHomeRepair     Category = "Home Repair"
	CategoryTransportation Category = "Transportation"
	CategoryPetCare        Category = "Pet Care"
	CategoryGardening      Category = "Gardening"
	CategoryTechSupport    Category = "Tech Support"
	CategoryOther          Category = "Other"
)

// Categories lists the accepted categories in display order.
var Categories = []Category{
	CategoryGroceries,
	CategoryHomeRepair,
	CategoryTransportation,
	CategoryPetCare,
	CategoryGardening,
	CategoryTechSupport,
	CategoryOther,
}

func ParseCategory(value string) (Category, bool) {
	value = strings.TrimSpace(value)
	for _, c := range Categories {
		if strings.EqualFold(string(c), value) {
			return c, true
		}
	}
	return "", false
}

type Urgency string

const (
	UrgencyLow    Urgency = "Low"
	UrgencyMedium Urgency = "Medium"
	UrgencyHigh   Urgency = "High"
)

// ParseUrgency defaults to Medium when value is blank.
func ParseUrgency(value string) (Urgency, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return UrgencyMedium, true
	case "low":
		return UrgencyLow, true
	case "medium":
		return UrgencyMedium, true
	case "high":
		return UrgencyHigh, true
	default:
		return "", false
	}
}

// HelpRequest represents the help_requests table
type HelpRequest struct {
	ID           uuid.UUID     `gorm:"type:varchar(36);primaryKey"`
	ResidentID   uuid.UUID     `gorm:"type:varchar(36);not null;index"`
	ResidentName string        `gorm:"type:varchar(255)"`
	Title        string        `gorm:"type:varchar(255);not null"`
	Description  string        `gorm:"type:text"`
	Category     Category      `gorm:"type:varchar(32);not null"`
	Urgency      Urgency       `gorm:"type:varchar(16);not null"`
	Location     string        `gorm:"type:varchar(255)"`
	Status       Status        `gorm:"type:varchar(16);not null;index"`
	HelperID     uuid.NullUUID `gorm:"type:varchar(36);index"`
	HelperName   string        `gorm:"type:varchar(255)"`
	Attachments  string        `gorm:"type:text"`
	CreatedAt    time.Time     `gorm:"index"`
	UpdatedAt    time.Time
}

func (HelpRequest) TableName() string {
	return "help_requests"
}

// IsAssignedHelper reports whether userID is the helper bound to the request.
func (r HelpRequest) IsAssignedHelper(userID uuid.UUID) bool {
	return r.HelperID.Valid && userID != uuid.Nil && r.HelperID.UUID == userID
}

// IsParticipant reports whether userID is the owner or the assigned helper.
func (r HelpRequest) IsParticipant(userID uuid.UUID) bool {
	return (userID != uuid.Nil && r.ResidentID == userID) || r.IsAssignedHelper(userID)
}

// ChatOpen is the conversation display rule: open once a helper took the
// request, and only for its two participants.
func (r HelpRequest) ChatOpen(viewerID uuid.UUID) bool {
	return r.Status != StatusPending && r.IsParticipant(viewerID)
}

// Filter narrows a request listing. Zero fields do not filter.
type Filter struct {
	Status     Status
	ResidentID uuid.NullUUID
	HelperID   uuid.NullUUID
}
