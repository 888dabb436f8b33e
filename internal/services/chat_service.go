package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"mutual-aid/internal/domain/chat"
	"mutual-aid/internal/proxy"
	"mutual-aid/internal/repository"
	aid_errors "mutual-aid/pkg/errors"
	"mutual-aid/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultSenderName = "User"

// timestampPrecision is the coarsest precision of the supported stores
// (MySQL datetime(3)). Stamps are truncated to it so the value returned
// to the poster equals the stored one.
const timestampPrecision = time.Millisecond

type ChatService struct {
	repo   repository.ChatRepository
	access *proxy.AccessControl
	users  repository.UserRepository
	log    *logger.Logger
	now    func() time.Time

	mu        sync.Mutex
	lastStamp time.Time
}

func NewChatService(repo repository.ChatRepository, access *proxy.AccessControl, users repository.UserRepository, l *logger.Logger) *ChatService {
	if l == nil {
		l = logger.NewNop()
	}
	return &ChatService{repo: repo, access: access, users: users, log: l, now: time.Now}
}

type PostMessageInput struct {
	RequestID  uuid.UUID
	SenderID   uuid.UUID
	SenderName string
	Text       string
}

func (s *ChatService) PostMessage(ctx context.Context, in PostMessageInput) (chat.Message, error) {
	text := strings.TrimSpace(in.Text)
	if in.RequestID == uuid.Nil || in.SenderID == uuid.Nil || text == "" {
		return chat.Message{}, aid_errors.ErrInvalidInput
	}

	if err := s.access.CanPostMessage(ctx, in.SenderID, in.RequestID); err != nil {
		return chat.Message{}, err
	}

	senderName := strings.TrimSpace(in.SenderName)
	if senderName == "" {
		senderName = defaultSenderName
		if u, err := s.users.GetUserByID(ctx, in.SenderID); err == nil {
			senderName = u.Name
		}
	}

	m := chat.Message{
		ID:         uuid.New(),
		RequestID:  in.RequestID,
		SenderID:   in.SenderID,
		SenderName: senderName,
		Text:       text,
		Timestamp:  s.nextStamp(),
	}
	if err := s.repo.Create(ctx, &m); err != nil {
		return chat.Message{}, err
	}

	s.log.WithContext(ctx).Debug("chat message posted",
		zap.String("request_id", m.RequestID.String()),
		zap.String("sender_id", m.SenderID.String()))
	return m, nil
}

// nextStamp returns a store-precision timestamp strictly after every stamp
// this service has issued, so polling with after never skips a message
// posted within the same tick.
func (s *ChatService) nextStamp() time.Time {
	t := s.now().UTC().Truncate(timestampPrecision)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !t.After(s.lastStamp) {
		t = s.lastStamp.Add(timestampPrecision)
	}
	s.lastStamp = t
	return t
}

// ListMessages returns the conversation oldest first. A non-zero after
// limits the result to newer messages.
func (s *ChatService) ListMessages(ctx context.Context, requestID uuid.UUID, after time.Time) ([]chat.Message, error) {
	return s.repo.GetRequestMessages(ctx, requestID, after)
}

// Availability evaluates the chat display rule for viewerID.
func (s *ChatService) Availability(ctx context.Context, requestID, viewerID uuid.UUID) (bool, error) {
	return s.access.CanViewChat(ctx, viewerID, requestID)
}
