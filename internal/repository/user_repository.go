package repository

import (
	"context"
	"errors"

	"mutual-aid/internal/domain/user"
	aid_errors "mutual-aid/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(ctx context.Context, u *user.User) error {
	res := r.db.WithContext(ctx).Create(u)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return aid_errors.ErrDuplicateContact
		}
		return storeError("create user", res.Error)
	}
	return nil
}

func (r *GormUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	var u user.User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, aid_errors.ErrNotFound
		}
		return user.User{}, storeError("get user", err)
	}
	return u, nil
}

func (r *GormUserRepository) GetUserByContact(ctx context.Context, contactKey string) (user.User, error) {
	var u user.User
	err := r.db.WithContext(ctx).
		Where("contact_key = ?", contactKey).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, aid_errors.ErrNotFound
		}
		return user.User{}, storeError("get user by contact", err)
	}
	return u, nil
}
