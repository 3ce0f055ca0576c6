// Package redis keeps idempotency keys of order creation in Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultTTL is how long a replayed request still finds its order.
	DefaultTTL = 24 * time.Hour

	// PendingTTL bounds how long a claim blocks retries when its request dies
	// before completing or releasing it.
	PendingTTL = time.Minute

	keyPrefix     = "idempotency:orders:"
	pendingPrefix = "pending:"
)

var (
	// completeScript swaps our pending marker for the order id.
	completeScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
end
return false
`)

	// releaseScript deletes the key only while it still holds our marker.
	releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)
)

// IdempotencyStore maps Idempotency-Key header values to the orders they
// created. A key is first stored as a pending marker and then replaced by the
// order id once the order is committed.
type IdempotencyStore struct {
	client     *redis.Client
	ttl        time.Duration
	pendingTTL time.Duration
}

// NewIdempotencyStore uses DefaultTTL when ttl is not positive.
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl, pendingTTL: PendingTTL}
}

// NewClient opens a client with short timeouts; a slow Redis must not stall
// order creation.
func NewClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
}

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

func (s *IdempotencyStore) Claim(
	ctx context.Context,
	customerID kernel.UUID,
	key string,
	orderID kernel.UUID,
) (kernel.UUID, bool, error) {
	redisKey := storageKey(customerID, key)

	// a second round covers a key expiring between SETNX and GET
	for range 2 {
		claimed, err := s.client.SetNX(ctx, redisKey, pendingValue(orderID), s.pendingTTL).Result()
		if err != nil {
			return kernel.UUID{}, false, fmt.Errorf("claim idempotency key: %w", err)
		}
		if claimed {
			return orderID, true, nil
		}

		value, err := s.client.Get(ctx, redisKey).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return kernel.UUID{}, false, fmt.Errorf("read idempotency key: %w", err)
		}

		if strings.HasPrefix(value, pendingPrefix) {
			return kernel.UUID{}, false, ports.ErrIdempotencyKeyInProgress
		}

		existing, err := kernel.UUIDFromString(value)
		if err != nil {
			return kernel.UUID{}, false, fmt.Errorf("stored order id for idempotency key: %w", err)
		}
		return existing, false, nil
	}

	return kernel.UUID{}, false, ports.ErrIdempotencyKeyInProgress
}

// Complete fails when the claim expired before the order was committed.
func (s *IdempotencyStore) Complete(ctx context.Context, customerID kernel.UUID, key string, orderID kernel.UUID) error {
	err := completeScript.Run(ctx, s.client,
		[]string{storageKey(customerID, key)},
		pendingValue(orderID), orderID.String(), s.ttl.Milliseconds(),
	).Err()
	if errors.Is(err, redis.Nil) {
		return errors.New("complete idempotency key: claim no longer held")
	}
	if err != nil {
		return fmt.Errorf("complete idempotency key: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) Release(ctx context.Context, customerID kernel.UUID, key string, orderID kernel.UUID) error {
	err := releaseScript.Run(ctx, s.client, []string{storageKey(customerID, key)}, pendingValue(orderID)).Err()
	if err != nil {
		return fmt.Errorf("release idempotency key: %w", err)
	}
	return nil
}

func storageKey(customerID kernel.UUID, key string) string {
	return keyPrefix + customerID.String() + ":" + key
}

func pendingValue(orderID kernel.UUID) string {
	return pendingPrefix + orderID.String()
}
