package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"mutual-aid/internal/domain/request"
	"mutual-aid/internal/domain/user"
	"mutual-aid/internal/repository"
	aid_errors "mutual-aid/pkg/errors"
	"mutual-aid/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RequestService struct {
	repo  repository.RequestRepository
	chat  repository.ChatRepository
	users repository.UserRepository
	log   *logger.Logger
	now   func() time.Time
}

func NewRequestService(repo repository.RequestRepository, chat repository.ChatRepository, users repository.UserRepository, l *logger.Logger) *RequestService {
	if l == nil {
		l = logger.NewNop()
	}
	return &RequestService{repo: repo, chat: chat, users: users, log: l, now: time.Now}
}

type CreateRequestInput struct {
	ResidentID   uuid.UUID
	ResidentName string
	Title        string
	Description  string
	Category     string
	Urgency      string
	Location     string
}

// Actor is whoever asks for a status transition.
type Actor struct {
	ID   uuid.UUID
	Name string
}

func (s *RequestService) Create(ctx context.Context, in CreateRequestInput) (request.HelpRequest, error) {
	title := strings.TrimSpace(in.Title)
	category, okCategory := request.ParseCategory(in.Category)
	urgency, okUrgency := request.ParseUrgency(in.Urgency)
	if in.ResidentID == uuid.Nil || title == "" || !okCategory || !okUrgency {
		return request.HelpRequest{}, aid_errors.ErrInvalidInput
	}

	residentName := strings.TrimSpace(in.ResidentName)
	if residentName == "" {
		if u, err := s.users.GetUserByID(ctx, in.ResidentID); err == nil {
			residentName = u.Name
		}
	}

	created := s.now().UTC()
	hr := request.HelpRequest{
		ID:           uuid.New(),
		ResidentID:   in.ResidentID,
		ResidentName: residentName,
		Title:        title,
		Description:  strings.TrimSpace(in.Description),
		Category:     category,
		Urgency:      urgency,
		Location:     strings.TrimSpace(in.Location),
		Status:       request.StatusPending,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	if err := s.repo.Create(ctx, &hr); err != nil {
		return request.HelpRequest{}, err
	}

	s.log.WithContext(ctx).Info("request created",
		zap.String("id", hr.ID.String()),
		zap.String("resident_id", hr.ResidentID.String()),
		zap.String("category", string(hr.Category)))
	return hr, nil
}

// List does not apply role-based filtering; callers pick the subset.
func (s *RequestService) List(ctx context.Context, filter request.Filter) ([]request.HelpRequest, error) {
	return s.repo.List(ctx, filter)
}

func (s *RequestService) GetByID(ctx context.Context, id uuid.UUID) (request.HelpRequest, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateStatus moves a request one step along Pending -> Accepted ->
// In-progress -> Completed. Actor checks run before state checks.
func (s *RequestService) UpdateStatus(ctx context.Context, id uuid.UUID, target request.Status, actor Actor) (request.HelpRequest, error) {
	hr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return request.HelpRequest{}, err
	}

	var change repository.StatusChange
	switch target {
	case request.StatusAccepted:
		helper, err := s.resolveHelper(ctx, actor)
		if err != nil {
			return request.HelpRequest{}, err
		}
		if hr.Status != request.StatusPending {
			return request.HelpRequest{}, aid_errors.ErrInvalidTransition
		}
		name := helper.Name
		if name == "" {
			name = strings.TrimSpace(actor.Name)
		}
		change = repository.StatusChange{
			Status:     request.StatusAccepted,
			HelperID:   uuid.NullUUID{UUID: helper.ID, Valid: true},
			HelperName: name,
		}
	case request.StatusInProgress, request.StatusCompleted:
		if !hr.IsAssignedHelper(actor.ID) {
			return request.HelpRequest{}, aid_errors.ErrUnauthorized
		}
		if !request.CanTransition(hr.Status, target) {
			return request.HelpRequest{}, aid_errors.ErrInvalidTransition
		}
		change = repository.StatusChange{Status: target}
	default:
		return request.HelpRequest{}, aid_errors.ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, id, hr.Status, change); err != nil {
		return request.HelpRequest{}, err
	}

	s.log.WithContext(ctx).Info("request status changed",
		zap.String("id", id.String()),
		zap.String("from", string(hr.Status)),
		zap.String("to", string(target)),
		zap.String("actor_id", actor.ID.String()))
	return s.repo.GetByID(ctx, id)
}

func (s *RequestService) resolveHelper(ctx context.Context, actor Actor) (user.User, error) {
	if actor.ID == uuid.Nil {
		return user.User{}, aid_errors.ErrUnauthorized
	}
	u, err := s.users.GetUserByID(ctx, actor.ID)
	if errors.Is(err, aid_errors.ErrNotFound) {
		return user.User{}, aid_errors.ErrUnauthorized
	}
	if err != nil {
		return user.User{}, err
	}
	if !u.IsHelper() {
		return user.User{}, aid_errors.ErrUnauthorized
	}
	return u, nil
}

func (s *RequestService) SetAttachment(ctx context.Context, id uuid.UUID, url string) error {
	return s.repo.SetAttachments(ctx, id, url)
}

// Delete removes the request and its conversation. Missing requests are not
// an error.
func (s *RequestService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.chat.DeleteRequestMessages(ctx, id); err != nil {
		return err
	}
	s.log.WithContext(ctx).Info("request deleted", zap.String("id", id.String()))
	return nil
}
