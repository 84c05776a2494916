package store

import (
	"context"
	"time"

	"github.com/phrazzld/cards-api/internal/domain"
)

// SystemActor is recorded in audit columns when no caller identity is known.
const SystemActor = "CARDS_MS"

type actorKey struct{}

// WithActor returns a copy of ctx identifying the principal performing writes.
func WithActor(ctx context.Context, actor string) context.Context {
	if actor == "" {
		return ctx
	}
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the principal stored by WithActor, or SystemActor.
func ActorFromContext(ctx context.Context) string {
	if actor, ok := ctx.Value(actorKey{}).(string); ok && actor != "" {
		return actor
	}
	return SystemActor
}

// Clock returns the current time. Stores accept one so tests can pin audit timestamps.
type Clock func() time.Time

// UTCNow is the default Clock.
func UTCNow() time.Time {
	return time.Now().UTC()
}

// StampCreated sets the creation and modification audit fields for an insert.
func StampCreated(ctx context.Context, card *domain.Card, now time.Time) {
	actor := ActorFromContext(ctx)
	card.Audit = domain.Audit{
		CreatedAt: now,
		CreatedBy: actor,
		UpdatedAt: now,
		UpdatedBy: actor,
	}
}

// StampUpdated sets the modification audit fields for an update, preserving creation data.
func StampUpdated(ctx context.Context, card *domain.Card, now time.Time) {
	card.Audit.UpdatedAt = now
	card.Audit.UpdatedBy = ActorFromContext(ctx)
}
