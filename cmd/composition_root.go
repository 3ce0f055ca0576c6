package cmd

import (
	"log/slog"

	cafe_http "cafe/internal/adapters/in/http"
	"cafe/internal/adapters/out/postgres"
	"cafe/internal/core/application/usecases/commands"
	"cafe/internal/core/application/usecases/queries"
	"cafe/internal/core/ports"
	"cafe/internal/jobs"
	"cafe/internal/pkg/metrics"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg         Config
	gormDB      *gorm.DB
	uowFactory  postgres.GormUnitOfWorkFactory
	idempotency ports.IdempotencyStore
	publisher   ports.EventPublisher
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	idempotency ports.IdempotencyStore,
	publisher ports.EventPublisher,
	m *metrics.Metrics,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		cfg:         cfg,
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		idempotency: idempotency,
		publisher:   publisher,
		metrics:     m,
		logger:      logger,
	}
}

// HTTPHandlers wires every use case the HTTP server exposes.
func (c *CompositionRoot) HTTPHandlers() cafe_http.Handlers {
	return cafe_http.Handlers{
		CreateOrder:  c.CreateCreateOrderCommandHandler(),
		PayOrder:     c.CreatePayOrderCommandHandler(),
		ReceiveOrder: c.CreateReceiveOrderCommandHandler(),
		DeleteOrder:  c.CreateDeleteOrderCommandHandler(),

		AddCartLine:    c.CreateAddCartLineCommandHandler(),
		ChangeCartLine: c.CreateChangeCartLineCommandHandler(),
		RemoveCartLine: c.CreateRemoveCartLineCommandHandler(),

		CreateMenuItem: c.CreateCreateMenuItemCommandHandler(),
		SetStock:       c.CreateSetStockCommandHandler(),

		GetOrder:      queries.NewGetOrderQueryHandler(c.gormDB),
		ListOrders:    queries.NewListOrdersQueryHandler(c.gormDB),
		ListCartLines: queries.NewListCartLinesQueryHandler(c.gormDB),
		ListMenuItems: queries.NewListMenuItemsQueryHandler(c.gormDB),
		ListStock:     queries.NewListStockQueryHandler(c.gormDB),
	}
}

// JobManager wires the background jobs.
func (c *CompositionRoot) JobManager() *jobs.JobManager {
	relay := jobs.NewOutboxRelayJob(c.CreatePublishOutboxCommandHandler(), c.cfg.OutboxBatchSize, c.metrics, c.logger)
	return jobs.NewJobManager(relay)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.uow(), c.idempotency)
}

func (c *CompositionRoot) CreatePayOrderCommandHandler() commands.PayOrderCommandHandler {
	return commands.NewPayOrderCommandHandler(c.orderUoW())
}

func (c *CompositionRoot) CreateReceiveOrderCommandHandler() commands.ReceiveOrderCommandHandler {
	return commands.NewReceiveOrderCommandHandler(c.uow())
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoW())
}

func (c *CompositionRoot) CreateAddCartLineCommandHandler() commands.AddCartLineCommandHandler {
	return commands.NewAddCartLineCommandHandler(c.cartUoW())
}

func (c *CompositionRoot) CreateChangeCartLineCommandHandler() commands.ChangeCartLineCommandHandler {
	return commands.NewChangeCartLineCommandHandler(c.cartUoW())
}

func (c *CompositionRoot) CreateRemoveCartLineCommandHandler() commands.RemoveCartLineCommandHandler {
	return commands.NewRemoveCartLineCommandHandler(c.cartUoW())
}

func (c *CompositionRoot) CreateCreateMenuItemCommandHandler() commands.CreateMenuItemCommandHandler {
	return commands.NewCreateMenuItemCommandHandler(c.catalogUoW())
}

func (c *CompositionRoot) CreateSetStockCommandHandler() commands.SetStockCommandHandler {
	return commands.NewSetStockCommandHandler(c.catalogUoW())
}

func (c *CompositionRoot) CreatePublishOutboxCommandHandler() commands.PublishOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPublishOutboxCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoW() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) cartUoW() commands.CartUoWFactory {
	return FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) catalogUoW() commands.CatalogUoWFactory {
	return FuncCatalogUoWFactory(func() commands.CatalogUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCartUoWFactory func() commands.CartUoW

func (f FuncCartUoWFactory) Create() commands.CartUoW {
	return f()
}

type FuncCatalogUoWFactory func() commands.CatalogUoW

func (f FuncCatalogUoWFactory) Create() commands.CatalogUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
