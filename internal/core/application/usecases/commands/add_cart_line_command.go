package commands

import (
	"errors"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/pkg/guard"
)

var ErrAddCartLineCommandIsNotConstructed = errors.New(
	"AddCartLineCommand must be created via NewAddCartLineCommand constructor",
)

// AddCartLineCommand puts a menu item into a customer's cart.
type AddCartLineCommand struct { //nolint:recvcheck //using for validation
	lineID     kernel.UUID
	customerID kernel.UUID
	menuItemID kernel.UUID
	quantity   kernel.Quantity

	guard guard.ConstructorGuard
}

// NewAddCartLineCommand takes the identifier to use if a new line has to be created.
func NewAddCartLineCommand(lineID, customerID, menuItemID kernel.UUID, quantity kernel.Quantity) (AddCartLineCommand, error) {
	if err := errors.Join(
		lineID.Validate(),
		customerID.Validate(),
		menuItemID.Validate(),
		quantity.Validate(),
	); err != nil {
		return AddCartLineCommand{}, err
	}

	return AddCartLineCommand{
		lineID:     lineID,
		customerID: customerID,
		menuItemID: menuItemID,
		quantity:   quantity,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AddCartLineCommand) Validate() error {
	return c.guard.Validate(ErrAddCartLineCommandIsNotConstructed)
}

func (c AddCartLineCommand) LineID() kernel.UUID       { return c.lineID }
func (c AddCartLineCommand) CustomerID() kernel.UUID   { return c.customerID }
func (c AddCartLineCommand) MenuItemID() kernel.UUID   { return c.menuItemID }
func (c AddCartLineCommand) Quantity() kernel.Quantity { return c.quantity }
