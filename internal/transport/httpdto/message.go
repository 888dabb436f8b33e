package httpdto

import (
	"time"

	"mutual-aid/internal/domain/chat"
)

// PostMessageRequest is used for POST /chat. message is accepted in place of
// text for older clients.
type PostMessageRequest struct {
	RequestID  string `json:"request_id" binding:"required"`
	SenderID   string `json:"sender_id"`
	SenderName string `json:"sender_name,omitempty"`
	Text       string `json:"text"`
	Message    string `json:"message"`
}

func (r PostMessageRequest) Body() string {
	if r.Text != "" {
		return r.Text
	}
	return r.Message
}

// ChatMessageDTO represents a chat message in API responses
type ChatMessageDTO struct {
	ID         string `json:"id"`
	RequestID  string `json:"request_id"`
	SenderID   string `json:"sender_id"`
	SenderName string `json:"sender_name"`
	Text       string `json:"text"`
	Timestamp  string `json:"timestamp"`
}

func FromChatMessage(m chat.Message) ChatMessageDTO {
	return ChatMessageDTO{
		ID:         m.ID.String(),
		RequestID:  m.RequestID.String(),
		SenderID:   m.SenderID.String(),
		SenderName: m.SenderName,
		Text:       m.Text,
		Timestamp:  m.Timestamp.UTC().Format(time.RFC3339Nano),
	}
}

func FromChatMessageSlice(items []chat.Message) []ChatMessageDTO {
	dtos := make([]ChatMessageDTO, len(items))
	for i, m := range items {
		dtos[i] = FromChatMessage(m)
	}
	return dtos
}

// ChatAvailabilityDTO is returned by GET /chat/:requestId/availability
type ChatAvailabilityDTO struct {
	RequestID string `json:"request_id"`
	ViewerID  string `json:"viewer_id"`
	Open      bool   `json:"open"`
}
