package repository

import (
	"context"
	"time"

	"mutual-aid/internal/domain/chat"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &GormChatRepository{db: db}
}

func (r *GormChatRepository) Create(ctx context.Context, m *chat.Message) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return storeError("create message", err)
	}
	return nil
}

func (r *GormChatRepository) GetRequestMessages(ctx context.Context, requestID uuid.UUID, after time.Time) ([]chat.Message, error) {
	var messages []chat.Message
	q := r.db.WithContext(ctx).Where("request_id = ?", requestID)
	if !after.IsZero() {
		q = q.Where("timestamp > ?", after)
	}
	if err := q.Order("timestamp ASC").Order("id ASC").Find(&messages).Error; err != nil {
		return nil, storeError("list messages", err)
	}
	return messages, nil
}

func (r *GormChatRepository) DeleteRequestMessages(ctx context.Context, requestID uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&chat.Message{}, "request_id = ?", requestID).Error; err != nil {
		return storeError("delete messages", err)
	}
	return nil
}
