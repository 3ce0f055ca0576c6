package redis_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	cafe_redis "cafe/internal/adapters/out/redis"
	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/ports"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type IdempotencyStoreIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	client    *redis.Client
	store     *cafe_redis.IdempotencyStore
}

func (suite *IdempotencyStoreIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	suite.container = container
	suite.Require().NoError(err)

	endpoint, err := container.Endpoint(ctx, "")
	suite.Require().NoError(err)

	suite.client = cafe_redis.NewClient(endpoint)
	suite.store = cafe_redis.NewIdempotencyStore(suite.client, time.Minute)
}

func (suite *IdempotencyStoreIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.client.FlushAll(context.Background()).Err())
}

func (suite *IdempotencyStoreIntegrationTestSuite) TearDownSuite() {
	if suite.client != nil {
		suite.Require().NoError(suite.client.Close())
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *IdempotencyStoreIntegrationTestSuite) TestClaim_NewKey() {
	orderID := kernel.NewUUID()

	stored, claimed, err := suite.store.Claim(context.Background(), kernel.NewUUID(), "never-seen", orderID)

	suite.Require().NoError(err)
	suite.True(claimed)
	suite.True(stored.IsEqual(orderID))
}

func (suite *IdempotencyStoreIntegrationTestSuite) TestClaim_SameKeyDifferentCustomers() {
	ctx := context.Background()
	alice, bob := kernel.NewUUID(), kernel.NewUUID()
	aliceOrder, bobOrder := kernel.NewUUID(), kernel.NewUUID()

	_, claimed, err := suite.store.Claim(ctx, alice, "shared", aliceOrder)
	suite.Require().NoError(err)
	suite.Require().True(claimed)
	suite.Require().NoError(suite.store.Complete(ctx, alice, "shared", aliceOrder))

	stored, claimed, err := suite.store.Claim(ctx, bob, "shared", bobOrder)
	suite.Require().NoError(err)
	suite.True(claimed)
	suite.True(stored.IsEqual(bobOrder))
	suite.Require().NoError(suite.store.Complete(ctx, bob, "shared", bobOrder))

	replayed, claimed, err := suite.store.Claim(ctx, alice, "shared", kernel.NewUUID())
	suite.Require().NoError(err)
	suite.False(claimed)
	suite.True(replayed.IsEqual(aliceOrder))
}

func (suite *IdempotencyStoreIntegrationTestSuite) TestClaim_ConcurrentRetries() {
	ctx := context.Background()
	customer := kernel.NewUUID()
	const attempts = 16

	var (
		wg         sync.WaitGroup
		claims     atomic.Int32
		inProgress atomic.Int32
		failures   atomic.Int32
	)
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, claimed, err := suite.store.Claim(ctx, customer, "retry", kernel.NewUUID())
			switch {
			case errors.Is(err, ports.ErrIdempotencyKeyInProgress):
				inProgress.Add(1)
			case err != nil:
				failures.Add(1)
			case claimed:
				claims.Add(1)
			}
		}()
	}
	wg.Wait()

	suite.Equal(int32(1), claims.Load())
	suite.Equal(int32(attempts-1), inProgress.Load())
	suite.Zero(failures.Load())
}

func (suite *IdempotencyStoreIntegrationTestSuite) TestCompleteThenClaim() {
	ctx := context.Background()
	customer := kernel.NewUUID()
	orderID := kernel.NewUUID()

	_, claimed, err := suite.store.Claim(ctx, customer, "key-1", orderID)
	suite.Require().NoError(err)
	suite.Require().True(claimed)
	suite.Require().NoError(suite.store.Complete(ctx, customer, "key-1", orderID))

	stored, claimed, err := suite.store.Claim(ctx, customer, "key-1", kernel.NewUUID())
	suite.Require().NoError(err)
	suite.False(claimed)
	suite.True(stored.IsEqual(orderID))

	ttl, err := suite.client.TTL(ctx, "idempotency:orders:"+customer.String()+":key-1").Result()
	suite.Require().NoError(err)
	suite.Greater(ttl, time.Duration(0))
	suite.LessOrEqual(ttl, time.Minute)
}

func (suite *IdempotencyStoreIntegrationTestSuite) TestRelease_AllowsNewClaim() {
	ctx := context.Background()
	customer := kernel.NewUUID()
	first := kernel.NewUUID()

	_, claimed, err := suite.store.Claim(ctx, customer, "key-2", first)
	suite.Require().NoError(err)
	suite.Require().True(claimed)

	// another request's release must not drop our claim
	suite.Require().NoError(suite.store.Release(ctx, customer, "key-2", kernel.NewUUID()))
	_, _, err = suite.store.Claim(ctx, customer, "key-2", kernel.NewUUID())
	suite.Require().ErrorIs(err, ports.ErrIdempotencyKeyInProgress)

	suite.Require().NoError(suite.store.Release(ctx, customer, "key-2", first))

	second := kernel.NewUUID()
	stored, claimed, err := suite.store.Claim(ctx, customer, "key-2", second)
	suite.Require().NoError(err)
	suite.True(claimed)
	suite.True(stored.IsEqual(second))
}

func (suite *IdempotencyStoreIntegrationTestSuite) TestComplete_LostClaim() {
	err := suite.store.Complete(context.Background(), kernel.NewUUID(), "key-3", kernel.NewUUID())

	suite.Require().Error(err)
}

func (suite *IdempotencyStoreIntegrationTestSuite) TestClaim_CorruptValue() {
	ctx := context.Background()
	customer := kernel.NewUUID()
	suite.Require().NoError(
		suite.client.Set(ctx, "idempotency:orders:"+customer.String()+":bad", "not-a-uuid", time.Minute).Err(),
	)

	_, _, err := suite.store.Claim(ctx, customer, "bad", kernel.NewUUID())

	suite.Require().Error(err)
}

func TestIdempotencyStoreIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(IdempotencyStoreIntegrationTestSuite))
}
