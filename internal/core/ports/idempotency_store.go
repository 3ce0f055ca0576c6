package ports

import (
	"context"
	"errors"

	"cafe/internal/core/domain/model/kernel"
)

// ErrIdempotencyKeyInProgress is returned by Claim while another request that
// holds the same key has not finished creating its order.
var ErrIdempotencyKeyInProgress = errors.New("a request with this idempotency key is still in progress")

// IdempotencyStore remembers which order a client-supplied idempotency key
// created, so that a retried request does not create a second order. Keys are
// scoped to the customer the order is placed for.
type IdempotencyStore interface {
	// Claim reserves key for orderID before the order is created. When the key
	// is already taken it returns the recorded order and false, or
	// ErrIdempotencyKeyInProgress while that order is still being created.
	Claim(ctx context.Context, customerID kernel.UUID, key string, orderID kernel.UUID) (kernel.UUID, bool, error)

	// Complete records that the order claimed under key was committed.
	Complete(ctx context.Context, customerID kernel.UUID, key string, orderID kernel.UUID) error

	// Release drops a claim whose order was not created.
	Release(ctx context.Context, customerID kernel.UUID, key string, orderID kernel.UUID) error
}
