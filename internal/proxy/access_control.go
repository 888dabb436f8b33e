package proxy

import (
	"context"

	"mutual-aid/internal/repository"
	aid_errors "mutual-aid/pkg/errors"

	"github.com/google/uuid"
)

// AccessControl decides who may use a request's conversation. In open mode
// any sender may post to an existing request; strict mode applies the same
// rule clients use to display the chat.
type AccessControl struct {
	requests repository.RequestRepository
	strict   bool
}

func NewAccessControl(requests repository.RequestRepository, strict bool) *AccessControl {
	return &AccessControl{requests: requests, strict: strict}
}

func (a *AccessControl) CanPostMessage(ctx context.Context, userID, requestID uuid.UUID) error {
	hr, err := a.requests.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if a.strict && !hr.ChatOpen(userID) {
		return aid_errors.ErrUnauthorized
	}
	return nil
}

// CanViewChat reports whether the conversation is open to userID.
func (a *AccessControl) CanViewChat(ctx context.Context, userID, requestID uuid.UUID) (bool, error) {
	hr, err := a.requests.GetByID(ctx, requestID)
	if err != nil {
		return false, err
	}
	return hr.ChatOpen(userID), nil
}
