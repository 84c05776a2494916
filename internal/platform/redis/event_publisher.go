package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/phrazzld/cards-api/internal/events"
	"github.com/redis/go-redis/v9"
)

// DefaultEventChannel is the pub/sub channel card events are published on.
const DefaultEventChannel = "cards:events"

// EventPublisher is an events.EventHandler that publishes card events as JSON
// on a Redis pub/sub channel.
type EventPublisher struct {
	client  redis.Cmdable
	channel string
}

var _ events.EventHandler = (*EventPublisher)(nil)

// NewEventPublisher returns a publisher writing to channel, or DefaultEventChannel when empty.
func NewEventPublisher(client redis.Cmdable, channel string) *EventPublisher {
	// ALLOW-PANIC: constructor enforcing required dependencies
	if client == nil {
		panic("redis client cannot be nil")
	}
	if channel == "" {
		channel = DefaultEventChannel
	}
	return &EventPublisher{client: client, channel: channel}
}

// Channel returns the pub/sub channel events are published on.
func (p *EventPublisher) Channel() string {
	return p.channel
}

// HandleEvent implements events.EventHandler.
func (p *EventPublisher) HandleEvent(ctx context.Context, event *events.CardEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode card event: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish card event %s: %w", event.ID, err)
	}
	return nil
}
