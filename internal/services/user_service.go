package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"mutual-aid/internal/domain/user"
	"mutual-aid/internal/repository"
	aid_errors "mutual-aid/pkg/errors"
	"mutual-aid/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserCache is the optional read-through profile cache.
type UserCache interface {
	GetUser(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetUserIDByContact(ctx context.Context, contactKey string) (uuid.UUID, error)
	SetUser(ctx context.Context, u user.User) error
}

type UserService struct {
	repo  repository.UserRepository
	cache UserCache
	log   *logger.Logger
	now   func() time.Time
}

func NewUserService(repo repository.UserRepository, cache UserCache, l *logger.Logger) *UserService {
	if l == nil {
		l = logger.NewNop()
	}
	return &UserService{repo: repo, cache: cache, log: l, now: time.Now}
}

type RegisterInput struct {
	Name        string
	ContactInfo string
	Location    string
	Role        string
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	name := strings.TrimSpace(in.Name)
	contact := strings.TrimSpace(in.ContactInfo)
	role, ok := user.ParseRole(in.Role)
	if name == "" || contact == "" || !ok {
		return user.User{}, aid_errors.ErrInvalidInput
	}

	key := user.NormalizeContact(contact)
	if _, err := s.repo.GetUserByContact(ctx, key); err == nil {
		return user.User{}, aid_errors.ErrDuplicateContact
	} else if !errors.Is(err, aid_errors.ErrNotFound) {
		return user.User{}, err
	}

	u := user.User{
		ID:          uuid.New(),
		Name:        name,
		ContactInfo: contact,
		ContactKey:  key,
		Location:    strings.TrimSpace(in.Location),
		Role:        role,
		CreatedAt:   s.now().UTC(),
	}
	// a concurrent registration that slipped past the lookup still hits
	// the unique index here
	if err := s.repo.Create(ctx, &u); err != nil {
		return user.User{}, err
	}

	s.log.WithContext(ctx).Info("user registered", zap.String("id", u.ID.String()), zap.String("role", string(u.Role)))
	s.remember(ctx, u)
	return u, nil
}

// Login resolves a contact identifier to its user. No credential is checked.
func (s *UserService) Login(ctx context.Context, contact string) (user.User, error) {
	key := user.NormalizeContact(contact)
	if key == "" {
		return user.User{}, aid_errors.ErrInvalidInput
	}

	if s.cache != nil {
		if id, err := s.cache.GetUserIDByContact(ctx, key); err == nil && id != uuid.Nil {
			if cached, err := s.cache.GetUser(ctx, id); err == nil && cached != nil {
				return *cached, nil
			}
		}
	}

	u, err := s.repo.GetUserByContact(ctx, key)
	if err != nil {
		return user.User{}, err
	}
	s.remember(ctx, u)
	return u, nil
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (user.User, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetUser(ctx, id); err == nil && cached != nil {
			return *cached, nil
		}
	}

	u, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return user.User{}, err
	}
	s.remember(ctx, u)
	return u, nil
}

func (s *UserService) remember(ctx context.Context, u user.User) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetUser(ctx, u); err != nil {
		s.log.WithContext(ctx).Warn("user cache write failed", zap.Error(err))
	}
}
