package commands

import (
	"errors"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/pkg/guard"
)

var ErrCreateMenuItemCommandIsNotConstructed = errors.New(
	"CreateMenuItemCommand must be created via NewCreateMenuItemCommand constructor",
)

// CreateMenuItemCommand adds an item to the menu. Name rules are enforced by
// the menu aggregate.
type CreateMenuItemCommand struct { //nolint:recvcheck //using for validation
	itemID kernel.UUID
	name   string
	price  kernel.Money

	guard guard.ConstructorGuard
}

func NewCreateMenuItemCommand(itemID kernel.UUID, name string, price kernel.Money) (CreateMenuItemCommand, error) {
	if err := itemID.Validate(); err != nil {
		return CreateMenuItemCommand{}, err
	}
	return CreateMenuItemCommand{itemID: itemID, name: name, price: price, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateMenuItemCommand) Validate() error {
	return c.guard.Validate(ErrCreateMenuItemCommandIsNotConstructed)
}

func (c CreateMenuItemCommand) ItemID() kernel.UUID { return c.itemID }
func (c CreateMenuItemCommand) Name() string        { return c.name }
func (c CreateMenuItemCommand) Price() kernel.Money { return c.price }
