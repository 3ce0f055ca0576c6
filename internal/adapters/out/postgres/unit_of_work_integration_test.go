package postgres_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	postgres_adapter "cafe/internal/adapters/out/postgres"
	"cafe/internal/adapters/out/postgres/outboxrepo"
	"cafe/internal/adapters/out/postgres/pgtest"
	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/order"
	"cafe/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

var placedAt = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func createTestOrder(t *testing.T) *order.Order {
	t.Helper()
	q, err := kernel.NewQuantity(2)
	if err != nil {
		t.Fatal(err)
	}
	price, err := kernel.MoneyFromString("3.40")
	if err != nil {
		t.Fatal(err)
	}
	line, err := order.NewLine(kernel.NewUUID(), q, price)
	if err != nil {
		t.Fatal(err)
	}
	customer := kernel.NewUUID()
	o, err := order.NewOrder(kernel.NewUUID(), customer, []order.Line{line}, "", customer, placedAt)
	if err != nil {
		t.Fatal(err)
	}
	return o
}

// UnitOfWorkIntegrationTestSuite tests transactions and outbox writes against PostgreSQL.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) outboxRows() []outboxrepo.OutboxMessageDTO {
	var rows []outboxrepo.OutboxMessageDTO
	suite.Require().NoError(suite.db.Order("created_at").Find(&rows).Error)
	return rows
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WritesEventsToOutbox() {
	ctx := context.Background()
	o := createTestOrder(suite.T())

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))

	suite.Require().NoError(o.Pay(kernel.NewUUID(), placedAt.Add(time.Minute)))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	rows := suite.outboxRows()
	suite.Require().Len(rows, 2)
	suite.Empty(o.DomainEvents(), "committed events should be cleared")

	for _, row := range rows {
		suite.Equal(order.StatusChangedEventName, row.EventName)
		suite.Equal(o.ID().String(), row.Key)
		suite.Nil(row.SentAt)
	}

	var payload map[string]any
	suite.Require().NoError(json.Unmarshal([]byte(rows[1].Payload), &payload))
	suite.Equal("PENDING", payload["from"])
	suite.Equal("PAID", payload["to"])
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsOrderAndEvents() {
	ctx := context.Background()
	o := createTestOrder(suite.T())

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().Error(err)
	suite.Empty(suite.outboxRows())
	suite.Len(o.DomainEvents(), 1, "events stay on the aggregate when nothing was committed")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRepositoriesShareTheTransaction() {
	ctx := context.Background()
	o := createTestOrder(suite.T())

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))

	inside, err := uow.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(inside.ID().IsEqual(o.ID()))

	_, err = suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().Error(err, "uncommitted order should be invisible outside the transaction")

	suite.Require().NoError(uow.Commit(ctx))

	outside, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(outside.ID().IsEqual(o.ID()))
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
