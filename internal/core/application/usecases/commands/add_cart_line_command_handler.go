package commands

import (
	"context"
	"errors"

	"cafe/internal/core/domain/model/cart"
	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/ports"
	"cafe/internal/pkg/errs"
)

// AddCartLineCommandHandler creates a cart line, or increases the quantity of
// the customer's live line for the same menu item.
type AddCartLineCommandHandler struct {
	uowFactory CartUoWFactory
}

func NewAddCartLineCommandHandler(uowFactory CartUoWFactory) AddCartLineCommandHandler {
	return AddCartLineCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the identifier of the created or updated line.
func (h AddCartLineCommandHandler) Handle(ctx context.Context, cmd AddCartLineCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.MenuRepository().Get(ctx, cmd.MenuItemID()); err != nil {
		return kernel.UUID{}, err
	}

	cartRepo := uow.CartRepository()

	line, err := cartRepo.FindLive(ctx, cmd.CustomerID(), cmd.MenuItemID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		line, err = cart.NewLine(cmd.LineID(), cmd.CustomerID(), cmd.MenuItemID(), cmd.Quantity())
		if err != nil {
			return kernel.UUID{}, err
		}
		err = cartRepo.Add(ctx, line)
		if errors.Is(err, ports.ErrLiveCartLineExists) {
			// a concurrent request created the line after our lookup
			line, err = increaseLive(ctx, cartRepo, cmd)
		}
	case err != nil:
		return kernel.UUID{}, err
	default:
		err = increaseAndUpdate(ctx, cartRepo, line, cmd.Quantity())
	}
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return line.ID(), nil
}

func increaseLive(
	ctx context.Context,
	cartRepo ports.CartRepository,
	cmd AddCartLineCommand,
) (*cart.Line, error) {
	line, err := cartRepo.FindLive(ctx, cmd.CustomerID(), cmd.MenuItemID())
	if err != nil {
		return nil, err
	}
	return line, increaseAndUpdate(ctx, cartRepo, line, cmd.Quantity())
}

func increaseAndUpdate(ctx context.Context, cartRepo ports.CartRepository, line *cart.Line, by kernel.Quantity) error {
	if err := line.Increase(by); err != nil {
		return err
	}
	return cartRepo.Update(ctx, line)
}
