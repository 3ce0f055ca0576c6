package commands

import (
	"context"
	"fmt"
	"time"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/services"
	"cafe/internal/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
)

// ReceiveOrderCommandHandler runs the warehouse check for a paid order and
// branches on its outcome:
//   - services.Available: stock is reserved and the order moves to Delivering
//   - services.Unavailable: the order moves to Failed
//
// Both branches commit. The shortage is returned as the Availability value,
// never as an error, so callers decide how to report it.
//
// Example:
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	switch r := result.(type) {
//	case services.Available:
//	    // delivering
//	case services.Unavailable:
//	    log.Println(r.Shortages)
//	}
type ReceiveOrderCommandHandler struct {
	uowFactory UoWFactory
	checker    services.WarehouseChecker
}

// NewReceiveOrderCommandHandler creates a handler for receiving paid orders.
func NewReceiveOrderCommandHandler(uowFactory UoWFactory) ReceiveOrderCommandHandler {
	return ReceiveOrderCommandHandler{
		uowFactory: uowFactory,
		checker:    services.NewWarehouseChecker(),
	}
}

// Handle locks the order and the stock of its menu items, checks availability
// and applies the matching transition.
func (h ReceiveOrderCommandHandler) Handle(ctx context.Context, cmd ReceiveOrderCommand) (services.Availability, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, span := tracing.Start(ctx, "order.receive")
	defer span.End()
	span.SetAttributes(attribute.String("order.id", cmd.OrderID().String()))

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	stockRepo := uow.StockRepository()

	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	// Only paid orders may be received, whatever the stock says.
	if _, err = aggregate.Status().Deliver(); err != nil {
		return nil, err
	}

	lines := aggregate.Lines()
	ids := make([]kernel.UUID, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.MenuItemID())
	}

	stocks, err := stockRepo.GetForUpdate(ctx, ids)
	if err != nil {
		return nil, err
	}

	result, err := h.checker.Check(aggregate, stocks)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	switch result.(type) {
	case services.Available:
		span.SetAttributes(attribute.String("warehouse.outcome", "available"))
		if err = aggregate.StartDelivery(cmd.ActorID(), now); err != nil {
			return nil, err
		}
		for _, s := range stocks {
			if err = stockRepo.Save(ctx, s); err != nil {
				return nil, err
			}
		}
	case services.Unavailable:
		span.SetAttributes(attribute.String("warehouse.outcome", "unavailable"))
		if err = aggregate.Fail(cmd.ActorID(), now); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unexpected availability %T", result)
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return result, nil
}
