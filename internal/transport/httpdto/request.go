package httpdto

import (
	"time"

	"mutual-aid/internal/domain/request"
)

// CreateHelpRequest is used for POST /requests. requester_id is the name
// older clients send for resident_id.
type CreateHelpRequest struct {
	ResidentID   string `json:"resident_id"`
	RequesterID  string `json:"requester_id"`
	ResidentName string `json:"resident_name,omitempty"`
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description,omitempty"`
	Category     string `json:"category" binding:"required"`
	Urgency      string `json:"urgency,omitempty"`
	Location     string `json:"location,omitempty"`
}

func (r CreateHelpRequest) Resident() string {
	if r.ResidentID != "" {
		return r.ResidentID
	}
	return r.RequesterID
}

// UpdateHelpRequest is used for PUT /requests/:id
type UpdateHelpRequest struct {
	Status      string `json:"status" binding:"required"`
	HelperID    string `json:"helper_id,omitempty"`
	VolunteerID string `json:"volunteer_id,omitempty"`
	HelperName  string `json:"helper_name,omitempty"`
}

func (r UpdateHelpRequest) Helper() string {
	if r.HelperID != "" {
		return r.HelperID
	}
	return r.VolunteerID
}

// ListHelpRequestsQuery holds query parameters for GET /requests
type ListHelpRequestsQuery struct {
	Status      string `form:"status"`
	ResidentID  string `form:"resident_id"`
	RequesterID string `form:"requester_id"`
	HelperID    string `form:"helper_id"`
	VolunteerID string `form:"volunteer_id"`
}

func (q ListHelpRequestsQuery) Resident() string {
	if q.ResidentID != "" {
		return q.ResidentID
	}
	return q.RequesterID
}

func (q ListHelpRequestsQuery) Helper() string {
	if q.HelperID != "" {
		return q.HelperID
	}
	return q.VolunteerID
}

// HelpRequestDTO represents a help request in API responses
type HelpRequestDTO struct {
	ID           string `json:"id"`
	ResidentID   string `json:"resident_id"`
	ResidentName string `json:"resident_name"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	Urgency      string `json:"urgency"`
	Location     string `json:"location,omitempty"`
	Status       string `json:"status"`
	HelperID     string `json:"helper_id,omitempty"`
	HelperName   string `json:"helper_name,omitempty"`
	Attachments  string `json:"attachments,omitempty"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

func FromHelpRequest(r request.HelpRequest) HelpRequestDTO {
	dto := HelpRequestDTO{
		ID:           r.ID.String(),
		ResidentID:   r.ResidentID.String(),
		ResidentName: r.ResidentName,
		Title:        r.Title,
		Description:  r.Description,
		Category:     string(r.Category),
		Urgency:      string(r.Urgency),
		Location:     r.Location,
		Status:       string(r.Status),
		HelperName:   r.HelperName,
		Attachments:  r.Attachments,
		CreatedAt:    r.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    r.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if r.HelperID.Valid {
		dto.HelperID = r.HelperID.UUID.String()
	}
	return dto
}

func FromHelpRequestSlice(items []request.HelpRequest) []HelpRequestDTO {
	dtos := make([]HelpRequestDTO, len(items))
	for i, r := range items {
		dtos[i] = FromHelpRequest(r)
	}
	return dtos
}

// DeleteResponse is returned by DELETE /requests/:id
type DeleteResponse struct {
	Message string `json:"message"`
}
