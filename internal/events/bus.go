// Package events publishes change notifications for connected clients.
// Delivery to subscribers is the bus collaborator's responsibility; the
// service layer only publishes, and publish failures never fail the
// primary write.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Type identifies a change-notification event
type Type string

const (
	MatchChanged    Type = "match.changed"
	ProgressChanged Type = "progress.changed"
	MessageNew      Type = "message.new"
)

// Event is a single change notification
type Event struct {
	Type       Type                   `json:"type"`
	EntityID   uuid.UUID              `json:"entityId"`
	ActorID    uuid.UUID              `json:"actorId"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
	OccurredAt time.Time              `json:"occurredAt"`
}

// Publisher fans out change notifications to subscribers
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// RedisBus publishes events over Redis pub/sub channels, one channel per
// event type under a common prefix.
type RedisBus struct {
	client *redis.Client
	prefix string
	logger zerolog.Logger
}

// NewRedisBus creates a Redis-backed publisher
func NewRedisBus(client *redis.Client, logger zerolog.Logger) *RedisBus {
	return &RedisBus{
		client: client,
		prefix: "skillbridge.events",
		logger: logger,
	}
}

// Publish serializes the event and publishes it on its type channel
func (b *RedisBus) Publish(ctx context.Context, event Event) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	channel := fmt.Sprintf("%s.%s", b.prefix, event.Type)
	if err := b.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish event to %s: %w", channel, err)
	}

	b.logger.Debug().
		Str("channel", channel).
		Str("entityId", event.EntityID.String()).
		Msg("Event published")

	return nil
}

// NopPublisher discards all events. Used when Redis is disabled and in tests.
type NopPublisher struct{}

// Publish implements Publisher
func (NopPublisher) Publish(ctx context.Context, event Event) error {
	return nil
}
