package commands

import (
	"context"

	"cafe/internal/core/domain/model/menu"
)

// CreateMenuItemCommandHandler persists new menu items.
type CreateMenuItemCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewCreateMenuItemCommandHandler(uowFactory CatalogUoWFactory) CreateMenuItemCommandHandler {
	return CreateMenuItemCommandHandler{uowFactory: uowFactory}
}

func (h CreateMenuItemCommandHandler) Handle(ctx context.Context, cmd CreateMenuItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	item, err := menu.NewItem(cmd.ItemID(), cmd.Name(), cmd.Price())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.MenuRepository().Add(ctx, item); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
