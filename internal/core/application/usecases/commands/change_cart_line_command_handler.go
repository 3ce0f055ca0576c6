package commands

import (
	"context"

	"cafe/internal/core/domain/model/cart"
	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/pkg/errs"
)

// ChangeCartLineCommandHandler updates the quantity of a live cart line.
type ChangeCartLineCommandHandler struct {
	uowFactory CartUoWFactory
}

func NewChangeCartLineCommandHandler(uowFactory CartUoWFactory) ChangeCartLineCommandHandler {
	return ChangeCartLineCommandHandler{uowFactory: uowFactory}
}

func (h ChangeCartLineCommandHandler) Handle(ctx context.Context, cmd ChangeCartLineCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return updateOwnedLine(ctx, h.uowFactory, cmd.LineID(), cmd.CustomerID(), func(l *cart.Line) error {
		return l.ChangeQuantity(cmd.Quantity())
	})
}

// RemoveCartLineCommandHandler soft-deletes a cart line. Removing a line that
// is already removed succeeds.
type RemoveCartLineCommandHandler struct {
	uowFactory CartUoWFactory
}

func NewRemoveCartLineCommandHandler(uowFactory CartUoWFactory) RemoveCartLineCommandHandler {
	return RemoveCartLineCommandHandler{uowFactory: uowFactory}
}

func (h RemoveCartLineCommandHandler) Handle(ctx context.Context, cmd RemoveCartLineCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return updateOwnedLine(ctx, h.uowFactory, cmd.LineID(), cmd.CustomerID(), func(l *cart.Line) error {
		l.Remove()
		return nil
	})
}

// updateOwnedLine applies change to a line of the given customer. Lines of
// other customers are reported as not found.
func updateOwnedLine(
	ctx context.Context,
	factory CartUoWFactory,
	lineID, customerID kernel.UUID,
	change func(*cart.Line) error,
) error {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()

	line, err := cartRepo.Get(ctx, lineID)
	if err != nil {
		return err
	}
	if !line.CustomerID().IsEqual(customerID) {
		return errs.NewObjectNotFoundError("cart line", lineID)
	}

	if err = change(line); err != nil {
		return err
	}

	if err = cartRepo.Update(ctx, line); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
