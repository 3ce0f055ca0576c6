package commands

import (
	"errors"
	"strings"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/pkg/errs"
	"cafe/internal/pkg/guard"
)

// MaxIdempotencyKeyLength bounds client-supplied idempotency keys.
const MaxIdempotencyKeyLength = 128

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderItem is one requested menu item of a new order.
type OrderItem struct {
	MenuItemID kernel.UUID
	Quantity   kernel.Quantity
}

// CreateOrderCommand represents a request to place a new order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), customerID, actorID, items, "oat milk", key)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	customerID     kernel.UUID
	actorID        kernel.UUID
	items          []OrderItem
	note           string
	idempotencyKey string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the identifiers and the requested items.
// The idempotency key is optional.
func NewCreateOrderCommand(
	orderID, customerID, actorID kernel.UUID,
	items []OrderItem,
	note, idempotencyKey string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setActorID(actorID),
		cmd.setItems(items),
		cmd.setIdempotencyKey(idempotencyKey),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID    { return c.orderID }
func (c CreateOrderCommand) CustomerID() kernel.UUID { return c.customerID }
func (c CreateOrderCommand) ActorID() kernel.UUID    { return c.actorID }
func (c CreateOrderCommand) Note() string            { return c.note }
func (c CreateOrderCommand) IdempotencyKey() string  { return c.idempotencyKey }

// Items returns a copy of the requested items.
func (c CreateOrderCommand) Items() []OrderItem {
	items := make([]OrderItem, len(c.items))
	copy(items, c.items)
	return items
}

// MenuItemIDs returns the menu items referenced by the command.
func (c CreateOrderCommand) MenuItemIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(c.items))
	for _, item := range c.items {
		ids = append(ids, item.MenuItemID)
	}
	return ids
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actor", err)
	}
	c.actorID = actorID
	return nil
}

func (c *CreateOrderCommand) setItems(items []OrderItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := errors.Join(item.MenuItemID.Validate(), item.Quantity.Validate()); err != nil {
			return err
		}
	}
	c.items = make([]OrderItem, len(items))
	copy(c.items, items)
	return nil
}

func (c *CreateOrderCommand) setIdempotencyKey(key string) error {
	key = strings.TrimSpace(key)
	if len(key) > MaxIdempotencyKeyLength {
		return errs.NewValueIsOutOfRangeError("idempotency key length", len(key), 0, MaxIdempotencyKeyLength)
	}
	c.idempotencyKey = key
	return nil
}
