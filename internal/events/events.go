package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/cards-api/internal/domain"
)

// Card lifecycle event types.
const (
	CardCreated = "card.created"
	CardUpdated = "card.updated"
	CardDeleted = "card.deleted"
)

// CardEvent describes a completed change to a card.
type CardEvent struct {
	ID              uuid.UUID `json:"id"`
	Type            string    `json:"type"`
	CardID          int64     `json:"cardId"`
	MobileNumber    string    `json:"mobileNumber"`
	CardNumber      string    `json:"cardNumber"`
	TotalLimit      int       `json:"totalLimit"`
	AmountUsed      int       `json:"amountUsed"`
	AvailableAmount int       `json:"availableAmount"`
	Actor           string    `json:"actor"`
	OccurredAt      time.Time `json:"occurredAt"`
}

// NewCardEvent builds an event of eventType for card, performed by actor.
func NewCardEvent(eventType string, card *domain.Card, actor string) *CardEvent {
	return &CardEvent{
		ID:              uuid.New(),
		Type:            eventType,
		CardID:          card.ID,
		MobileNumber:    card.MobileNumber,
		CardNumber:      card.CardNumber,
		TotalLimit:      card.TotalLimit,
		AmountUsed:      card.AmountUsed,
		AvailableAmount: card.AvailableAmount,
		Actor:           actor,
		OccurredAt:      time.Now().UTC(),
	}
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	HandleEvent(ctx context.Context, event *CardEvent) error
}

// HandlerFunc adapts a function to the EventHandler interface.
type HandlerFunc func(ctx context.Context, event *CardEvent) error

// HandleEvent calls f(ctx, event).
func (f HandlerFunc) HandleEvent(ctx context.Context, event *CardEvent) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *CardEvent) error
}
