package chat

import (
	"time"

	"github.com/google/uuid"
)

// Message represents the chat_messages table. Rows are never updated.
type Message struct {
	ID         uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	RequestID  uuid.UUID `gorm:"type:varchar(36);not null;index:idx_chat_request_ts,priority:1"`
	SenderID   uuid.UUID `gorm:"type:varchar(36);not null"`
	SenderName string    `gorm:"type:varchar(255)"`
	Text       string    `gorm:"type:text;not null"`
	Timestamp  time.Time `gorm:"precision:3;not null;index:idx_chat_request_ts,priority:2"`
}

func (Message) TableName() string {
	return "chat_messages"
}
