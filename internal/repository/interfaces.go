package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"mutual-aid/internal/domain/chat"
	"mutual-aid/internal/domain/request"
	"mutual-aid/internal/domain/user"
)

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error)
	// GetUserByContact looks a user up by normalized contact key.
	GetUserByContact(ctx context.Context, contactKey string) (user.User, error)
}

// StatusChange is the write half of a status transition.
type StatusChange struct {
	Status     request.Status
	HelperID   uuid.NullUUID
	HelperName string
}

type RequestRepository interface {
	Create(ctx context.Context, r *request.HelpRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (request.HelpRequest, error)
	List(ctx context.Context, filter request.Filter) ([]request.HelpRequest, error)
	// UpdateStatus writes change only while the stored status still equals
	// expected. A lost race returns ErrInvalidTransition.
	UpdateStatus(ctx context.Context, id uuid.UUID, expected request.Status, change StatusChange) error
	SetAttachments(ctx context.Context, id uuid.UUID, url string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ChatRepository interface {
	Create(ctx context.Context, m *chat.Message) error
	// GetRequestMessages returns messages ordered by timestamp ascending.
	// A non-zero after excludes messages at or before it.
	GetRequestMessages(ctx context.Context, requestID uuid.UUID, after time.Time) ([]chat.Message, error)
	DeleteRequestMessages(ctx context.Context, requestID uuid.UUID) error
}

// Store bundles the repositories one backend provides.
type Store struct {
	Users    UserRepository
	Requests RequestRepository
	Chat     ChatRepository
	health   func(ctx context.Context) error
}

// HealthCheck probes the backing store.
func (s *Store) HealthCheck(ctx context.Context) error {
	if s.health == nil {
		return nil
	}
	return s.health(ctx)
}
