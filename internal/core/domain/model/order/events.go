package order

import (
	"time"

	"cafe/internal/core/domain/model/kernel"
)

// StatusChangedEventName is the name under which status changes are published.
const StatusChangedEventName = "order.status.changed"

// StatusChanged is recorded on creation (From is Unknown) and on every transition.
type StatusChanged struct {
	ID      kernel.UUID `json:"eventId"`
	OrderID kernel.UUID `json:"orderId"`
	From    Status      `json:"from"`
	To      Status      `json:"to"`
	ActorID kernel.UUID `json:"actorId"`
	At      time.Time   `json:"occurredAt"`
}

func (e StatusChanged) EventID() kernel.UUID {
	return e.ID
}

func (e StatusChanged) EventName() string {
	return StatusChangedEventName
}

func (e StatusChanged) AggregateID() kernel.UUID {
	return e.OrderID
}

func (e StatusChanged) OccurredAt() time.Time {
	return e.At
}
