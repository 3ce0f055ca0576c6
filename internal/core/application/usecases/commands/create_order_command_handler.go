package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/menu"
	"cafe/internal/core/domain/model/order"
	"cafe/internal/core/ports"
	"cafe/internal/pkg/errs"
)

// ErrIdempotencyKeyNotStored is returned together with a valid result when the
// order was committed but its idempotency key could not be recorded.
var ErrIdempotencyKeyNotStored = errors.New("idempotency key not stored")

// CreateOrderResult identifies the order a CreateOrderCommand produced.
// Replayed is true when the idempotency key pointed at an earlier order.
type CreateOrderResult struct {
	OrderID  kernel.UUID
	Replayed bool
}

// CreateOrderCommandHandler places new orders. Unit prices are copied from the
// menu at placement time.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, idempotencyStore)
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrIdempotencyKeyNotStored) {
//	    // the order exists, only replay protection is missing
//	}
type CreateOrderCommandHandler struct {
	uowFactory  UoWFactory
	idempotency ports.IdempotencyStore
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// idempotency may be nil, in which case keys are ignored.
func NewCreateOrderCommandHandler(uowFactory UoWFactory, idempotency ports.IdempotencyStore) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:  uowFactory,
		idempotency: idempotency,
	}
}

// Handle places the order in Pending status.
// Unknown menu items yield an errs.ObjectNotFoundError. With an idempotency
// key the key is claimed for the customer before the order is created; a
// retry while the first request is still running gets
// ports.ErrIdempotencyKeyInProgress.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	key := cmd.IdempotencyKey()
	if key == "" || h.idempotency == nil {
		if err := h.create(ctx, cmd); err != nil {
			return CreateOrderResult{}, err
		}
		return CreateOrderResult{OrderID: cmd.OrderID()}, nil
	}

	existing, claimed, err := h.idempotency.Claim(ctx, cmd.CustomerID(), key, cmd.OrderID())
	if err != nil {
		return CreateOrderResult{}, err
	}
	if !claimed {
		return CreateOrderResult{OrderID: existing, Replayed: true}, nil
	}

	if err = h.create(ctx, cmd); err != nil {
		releaseErr := h.idempotency.Release(context.WithoutCancel(ctx), cmd.CustomerID(), key, cmd.OrderID())
		return CreateOrderResult{}, errors.Join(err, releaseErr)
	}

	result := CreateOrderResult{OrderID: cmd.OrderID()}
	if err = h.idempotency.Complete(ctx, cmd.CustomerID(), key, cmd.OrderID()); err != nil {
		return result, fmt.Errorf("%w: %w", ErrIdempotencyKeyNotStored, err)
	}

	return result, nil
}

func (h CreateOrderCommandHandler) create(ctx context.Context, cmd CreateOrderCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	items, err := uow.MenuRepository().GetMany(ctx, cmd.MenuItemIDs())
	if err != nil {
		return err
	}

	lines, err := priceLines(cmd.Items(), items)
	if err != nil {
		return err
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerID(),
		lines,
		cmd.Note(),
		cmd.ActorID(),
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func priceLines(requested []OrderItem, items []*menu.Item) ([]order.Line, error) {
	byID := make(map[kernel.UUID]*menu.Item, len(items))
	for _, item := range items {
		byID[item.ID()] = item
	}

	lines := make([]order.Line, 0, len(requested))
	for _, r := range requested {
		item, ok := byID[r.MenuItemID]
		if !ok {
			return nil, errs.NewObjectNotFoundError("menu item", r.MenuItemID)
		}
		line, err := order.NewLine(item.ID(), r.Quantity, item.Price())
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}
