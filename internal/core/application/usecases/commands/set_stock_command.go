package commands

import (
	"errors"
	"fmt"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/pkg/errs"
	"cafe/internal/pkg/guard"
)

var ErrSetStockCommandIsNotConstructed = errors.New(
	"SetStockCommand must be created via NewSetStockCommand constructor",
)

// SetStockCommand records the counted quantity of a menu item in the warehouse.
type SetStockCommand struct { //nolint:recvcheck //using for validation
	menuItemID kernel.UUID
	available  int

	guard guard.ConstructorGuard
}

func NewSetStockCommand(menuItemID kernel.UUID, available int) (SetStockCommand, error) {
	if err := menuItemID.Validate(); err != nil {
		return SetStockCommand{}, err
	}
	if available < 0 {
		return SetStockCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"available is invalid",
			fmt.Errorf("%d is negative", available),
		)
	}
	return SetStockCommand{menuItemID: menuItemID, available: available, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetStockCommand) Validate() error {
	return c.guard.Validate(ErrSetStockCommandIsNotConstructed)
}

func (c SetStockCommand) MenuItemID() kernel.UUID { return c.menuItemID }
func (c SetStockCommand) Available() int          { return c.available }
