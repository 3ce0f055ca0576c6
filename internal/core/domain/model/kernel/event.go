package kernel

import "time"

// DomainEvent is a fact recorded by an aggregate and published after the
// transaction that produced it commits.
type DomainEvent interface {
	EventID() UUID
	EventName() string
	AggregateID() UUID
	OccurredAt() time.Time
}
