// Package ports defines the contracts between the café core and its adapters:
// repositories bound to a unit of work, the idempotency store and the event
// publisher used by the outbox relay.
package ports

import (
	"context"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order together with its lines.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status and audit changes of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its identifier.
	// Returns an errs.ObjectNotFoundError when no order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row until the transaction ends,
	// so concurrent transitions on the same order run one after another.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Delete removes an order and its lines.
	// Returns an errs.ObjectNotFoundError when no order exists.
	Delete(ctx context.Context, id kernel.UUID) error
}
