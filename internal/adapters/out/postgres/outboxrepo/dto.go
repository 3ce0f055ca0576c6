// Package outboxrepo stores domain events in the outbox_messages table until
// the relay publishes them.
package outboxrepo

import (
	"encoding/json"
	"fmt"
	"time"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/ports"

	"github.com/google/uuid"
)

// OutboxMessageDTO is one stored event. SentAt stays NULL until the message
// is published.
type OutboxMessageDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EventID   uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null"`
	EventName string     `gorm:"type:varchar(100);not null"`
	Key       string     `gorm:"type:varchar(100);not null"`
	Payload   string     `gorm:"type:jsonb;not null"`
	CreatedAt time.Time  `gorm:"index;not null"`
	SentAt    *time.Time `gorm:"index"`
}

// TableName specifies the database table name for outbox messages.
func (OutboxMessageDTO) TableName() string {
	return "outbox_messages"
}

// FromEvent encodes a domain event as an outbox row keyed by its aggregate.
func FromEvent(event kernel.DomainEvent) (OutboxMessageDTO, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return OutboxMessageDTO{}, fmt.Errorf("encode %s: %w", event.EventName(), err)
	}

	return OutboxMessageDTO{
		ID:        uuid.New(),
		EventID:   event.EventID().Bytes(),
		EventName: event.EventName(),
		Key:       event.AggregateID().String(),
		Payload:   string(payload),
		CreatedAt: event.OccurredAt(),
	}, nil
}

func toPort(dto OutboxMessageDTO) (ports.OutboxMessage, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	eventID, err := kernel.UUIDFromBytes(dto.EventID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}

	return ports.OutboxMessage{
		ID:        id,
		EventID:   eventID,
		EventName: dto.EventName,
		Key:       dto.Key,
		Payload:   []byte(dto.Payload),
		CreatedAt: dto.CreatedAt,
	}, nil
}
