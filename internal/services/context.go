package services

import (
	"context"

	"mutual-aid/pkg/logger"

	"github.com/google/uuid"
)

type ctxKey string

var actorIDKey ctxKey = "actor_id"

// WithActorContext records the session user on ctx. The logger key is set
// too so log lines carry the user.
func WithActorContext(ctx context.Context, actorID uuid.UUID) context.Context {
	ctx = context.WithValue(ctx, actorIDKey, actorID)
	return context.WithValue(ctx, logger.UserIdKey, actorID.String())
}

func ActorIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(actorIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
