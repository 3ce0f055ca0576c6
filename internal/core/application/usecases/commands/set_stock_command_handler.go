package commands

import (
	"context"
	"errors"

	"cafe/internal/core/domain/model/warehouse"
	"cafe/internal/pkg/errs"
)

// SetStockCommandHandler replaces the available quantity of a menu item,
// creating its stock record on first use.
type SetStockCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewSetStockCommandHandler(uowFactory CatalogUoWFactory) SetStockCommandHandler {
	return SetStockCommandHandler{uowFactory: uowFactory}
}

func (h SetStockCommandHandler) Handle(ctx context.Context, cmd SetStockCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.MenuRepository().Get(ctx, cmd.MenuItemID()); err != nil {
		return err
	}

	stockRepo := uow.StockRepository()

	stock, err := stockRepo.Get(ctx, cmd.MenuItemID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		stock, err = warehouse.NewStock(cmd.MenuItemID(), cmd.Available())
	case err == nil:
		err = stock.Set(cmd.Available())
	}
	if err != nil {
		return err
	}

	if err = stockRepo.Save(ctx, stock); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
