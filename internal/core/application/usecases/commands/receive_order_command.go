package commands

import (
	"errors"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/pkg/guard"
)

var ErrReceiveOrderCommandIsNotConstructed = errors.New(
	"ReceiveOrderCommand must be created via NewReceiveOrderCommand constructor",
)

// ReceiveOrderCommand hands a paid order over to the warehouse.
type ReceiveOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewReceiveOrderCommand requires the order and the staff member receiving it.
func NewReceiveOrderCommand(orderID, actorID kernel.UUID) (ReceiveOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), actorID.Validate()); err != nil {
		return ReceiveOrderCommand{}, err
	}
	return ReceiveOrderCommand{orderID: orderID, actorID: actorID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReceiveOrderCommand) Validate() error {
	return c.guard.Validate(ErrReceiveOrderCommandIsNotConstructed)
}

func (c ReceiveOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c ReceiveOrderCommand) ActorID() kernel.UUID { return c.actorID }
