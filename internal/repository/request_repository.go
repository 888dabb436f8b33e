package repository

import (
	"context"
	"errors"
	"time"

	"mutual-aid/internal/domain/request"
	aid_errors "mutual-aid/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormRequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &GormRequestRepository{db: db}
}

func (r *GormRequestRepository) Create(ctx context.Context, hr *request.HelpRequest) error {
	if err := r.db.WithContext(ctx).Create(hr).Error; err != nil {
		return storeError("create request", err)
	}
	return nil
}

func (r *GormRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (request.HelpRequest, error) {
	var hr request.HelpRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&hr).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return request.HelpRequest{}, aid_errors.ErrNotFound
		}
		return request.HelpRequest{}, storeError("get request", err)
	}
	return hr, nil
}

func (r *GormRequestRepository) List(ctx context.Context, filter request.Filter) ([]request.HelpRequest, error) {
	var items []request.HelpRequest
	q := r.db.WithContext(ctx).Model(&request.HelpRequest{})

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.ResidentID.Valid {
		q = q.Where("resident_id = ?", filter.ResidentID.UUID)
	}
	if filter.HelperID.Valid {
		q = q.Where("helper_id = ?", filter.HelperID.UUID)
	}

	if err := q.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, storeError("list requests", err)
	}
	return items, nil
}

func (r *GormRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, expected request.Status, change StatusChange) error {
	updates := map[string]interface{}{
		"status":     change.Status,
		"updated_at": time.Now(),
	}
	if change.HelperID.Valid {
		updates["helper_id"] = change.HelperID
		updates["helper_name"] = change.HelperName
	}

	res := r.db.WithContext(ctx).
		Model(&request.HelpRequest{}).
		Where("id = ? AND status = ?", id, expected).
		Updates(updates)
	if res.Error != nil {
		return storeError("update request status", res.Error)
	}
	if res.RowsAffected == 0 {
		return aid_errors.ErrInvalidTransition
	}
	return nil
}

func (r *GormRequestRepository) SetAttachments(ctx context.Context, id uuid.UUID, url string) error {
	res := r.db.WithContext(ctx).
		Model(&request.HelpRequest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"attachments": url, "updated_at": time.Now()})
	if res.Error != nil {
		return storeError("set attachments", res.Error)
	}
	if res.RowsAffected == 0 {
		return aid_errors.ErrNotFound
	}
	return nil
}

func (r *GormRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&request.HelpRequest{}, "id = ?", id).Error; err != nil {
		return storeError("delete request", err)
	}
	return nil
}
