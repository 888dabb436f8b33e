package repository

import (
	"context"

	"gorm.io/gorm"
)

// NewGormStore wires the SQL repositories over one connection pool.
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Users:    NewUserRepository(db),
		Requests: NewRequestRepository(db),
		Chat:     NewChatRepository(db),
		health: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
}
