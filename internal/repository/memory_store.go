package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"mutual-aid/internal/domain/chat"
	"mutual-aid/internal/domain/request"
	"mutual-aid/internal/domain/user"
	aid_errors "mutual-aid/pkg/errors"

	"github.com/google/uuid"
)

// memoryDB holds all tables of the in-memory backend behind one lock, so a
// compare-and-swap on a request is atomic like its SQL counterpart.
type memoryDB struct {
	mu       sync.RWMutex
	users    map[uuid.UUID]user.User
	contacts map[string]uuid.UUID
	requests []request.HelpRequest
	messages []chat.Message
}

// NewMemoryStore returns a Store kept entirely in process memory. Each call
// returns an independent store.
func NewMemoryStore() *Store {
	db := &memoryDB{
		users:    make(map[uuid.UUID]user.User),
		contacts: make(map[string]uuid.UUID),
	}
	return &Store{
		Users:    &MemoryUserRepository{db: db},
		Requests: &MemoryRequestRepository{db: db},
		Chat:     &MemoryChatRepository{db: db},
	}
}

type MemoryUserRepository struct {
	db *memoryDB
}

func (r *MemoryUserRepository) Create(ctx context.Context, u *user.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, exists := r.db.contacts[u.ContactKey]; exists {
		return aid_errors.ErrDuplicateContact
	}
	r.db.users[u.ID] = *u
	r.db.contacts[u.ContactKey] = u.ID
	return nil
}

func (r *MemoryUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	if err := ctx.Err(); err != nil {
		return user.User{}, err
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	u, ok := r.db.users[id]
	if !ok {
		return user.User{}, aid_errors.ErrNotFound
	}
	return u, nil
}

func (r *MemoryUserRepository) GetUserByContact(ctx context.Context, contactKey string) (user.User, error) {
	if err := ctx.Err(); err != nil {
		return user.User{}, err
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	id, ok := r.db.contacts[contactKey]
	if !ok {
		return user.User{}, aid_errors.ErrNotFound
	}
	return r.db.users[id], nil
}

type MemoryRequestRepository struct {
	db *memoryDB
}

func (r *MemoryRequestRepository) Create(ctx context.Context, hr *request.HelpRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.requests = append(r.db.requests, *hr)
	return nil
}

func (r *MemoryRequestRepository) indexOf(id uuid.UUID) int {
	for i := range r.db.requests {
		if r.db.requests[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *MemoryRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (request.HelpRequest, error) {
	if err := ctx.Err(); err != nil {
		return request.HelpRequest{}, err
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return request.HelpRequest{}, aid_errors.ErrNotFound
	}
	return r.db.requests[i], nil
}

func (r *MemoryRequestRepository) List(ctx context.Context, filter request.Filter) ([]request.HelpRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	items := make([]request.HelpRequest, 0, len(r.db.requests))
	// newest insert first so equal timestamps still list newest first
	for i := len(r.db.requests) - 1; i >= 0; i-- {
		hr := r.db.requests[i]
		if filter.Status != "" && hr.Status != filter.Status {
			continue
		}
		if filter.ResidentID.Valid && hr.ResidentID != filter.ResidentID.UUID {
			continue
		}
		if filter.HelperID.Valid && (!hr.HelperID.Valid || hr.HelperID.UUID != filter.HelperID.UUID) {
			continue
		}
		items = append(items, hr)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (r *MemoryRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, expected request.Status, change StatusChange) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return aid_errors.ErrNotFound
	}
	hr := &r.db.requests[i]
	if hr.Status != expected {
		return aid_errors.ErrInvalidTransition
	}
	hr.Status = change.Status
	if change.HelperID.Valid {
		hr.HelperID = change.HelperID
		hr.HelperName = change.HelperName
	}
	hr.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryRequestRepository) SetAttachments(ctx context.Context, id uuid.UUID, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return aid_errors.ErrNotFound
	}
	r.db.requests[i].Attachments = url
	r.db.requests[i].UpdatedAt = time.Now()
	return nil
}

func (r *MemoryRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if i := r.indexOf(id); i >= 0 {
		r.db.requests = append(r.db.requests[:i], r.db.requests[i+1:]...)
	}
	return nil
}

type MemoryChatRepository struct {
	db *memoryDB
}

func (r *MemoryChatRepository) Create(ctx context.Context, m *chat.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.messages = append(r.db.messages, *m)
	return nil
}

func (r *MemoryChatRepository) GetRequestMessages(ctx context.Context, requestID uuid.UUID, after time.Time) ([]chat.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	messages := make([]chat.Message, 0)
	for _, m := range r.db.messages {
		if m.RequestID != requestID {
			continue
		}
		if !after.IsZero() && !m.Timestamp.After(after) {
			continue
		}
		messages = append(messages, m)
	}
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp.Before(messages[j].Timestamp)
	})
	return messages, nil
}

func (r *MemoryChatRepository) DeleteRequestMessages(ctx context.Context, requestID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	kept := r.db.messages[:0]
	for _, m := range r.db.messages {
		if m.RequestID != requestID {
			kept = append(kept, m)
		}
	}
	r.db.messages = kept
	return nil
}
