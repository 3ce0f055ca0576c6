package ports

import (
	"context"
	"time"

	"cafe/internal/core/domain/model/kernel"
)

// OutboxMessage is a domain event stored in the same transaction as the
// aggregate change that produced it, waiting to be published.
type OutboxMessage struct {
	ID        kernel.UUID
	EventID   kernel.UUID
	EventName string
	Key       string
	Payload   []byte
	CreatedAt time.Time
}

// OutboxRepository reads and acknowledges stored messages. Messages are
// written by the unit of work when it commits.
type OutboxRepository interface {
	// FetchPending returns up to limit unsent messages, oldest first, locking
	// them so that concurrent relays skip them.
	FetchPending(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkSent records the publication time of the given messages.
	MarkSent(ctx context.Context, ids []kernel.UUID, at time.Time) error
}

// EventPublisher delivers outbox messages to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, messages ...OutboxMessage) error
}
