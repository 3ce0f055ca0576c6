package commands

import (
	"errors"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/pkg/guard"
)

var (
	ErrChangeCartLineCommandIsNotConstructed = errors.New(
		"ChangeCartLineCommand must be created via NewChangeCartLineCommand constructor",
	)
	ErrRemoveCartLineCommandIsNotConstructed = errors.New(
		"RemoveCartLineCommand must be created via NewRemoveCartLineCommand constructor",
	)
)

// ChangeCartLineCommand sets the quantity of one of the customer's cart lines.
type ChangeCartLineCommand struct { //nolint:recvcheck //using for validation
	lineID     kernel.UUID
	customerID kernel.UUID
	quantity   kernel.Quantity

	guard guard.ConstructorGuard
}

func NewChangeCartLineCommand(lineID, customerID kernel.UUID, quantity kernel.Quantity) (ChangeCartLineCommand, error) {
	if err := errors.Join(lineID.Validate(), customerID.Validate(), quantity.Validate()); err != nil {
		return ChangeCartLineCommand{}, err
	}
	return ChangeCartLineCommand{
		lineID:     lineID,
		customerID: customerID,
		quantity:   quantity,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeCartLineCommand) Validate() error {
	return c.guard.Validate(ErrChangeCartLineCommandIsNotConstructed)
}

func (c ChangeCartLineCommand) LineID() kernel.UUID       { return c.lineID }
func (c ChangeCartLineCommand) CustomerID() kernel.UUID   { return c.customerID }
func (c ChangeCartLineCommand) Quantity() kernel.Quantity { return c.quantity }

// RemoveCartLineCommand soft-deletes one of the customer's cart lines.
type RemoveCartLineCommand struct { //nolint:recvcheck //using for validation
	lineID     kernel.UUID
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRemoveCartLineCommand(lineID, customerID kernel.UUID) (RemoveCartLineCommand, error) {
	if err := errors.Join(lineID.Validate(), customerID.Validate()); err != nil {
		return RemoveCartLineCommand{}, err
	}
	return RemoveCartLineCommand{lineID: lineID, customerID: customerID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveCartLineCommand) Validate() error {
	return c.guard.Validate(ErrRemoveCartLineCommandIsNotConstructed)
}

func (c RemoveCartLineCommand) LineID() kernel.UUID     { return c.lineID }
func (c RemoveCartLineCommand) CustomerID() kernel.UUID { return c.customerID }
