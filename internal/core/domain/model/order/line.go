package order

import (
	"errors"

	"cafe/internal/core/domain/model/kernel"
)

// Line is one menu item of an order. The unit price is copied from the menu
// when the order is placed so later menu changes do not alter the order.
type Line struct {
	menuItemID kernel.UUID
	quantity   kernel.Quantity
	unitPrice  kernel.Money
}

// NewLine validates the menu item reference and quantity.
func NewLine(menuItemID kernel.UUID, quantity kernel.Quantity, unitPrice kernel.Money) (Line, error) {
	if err := errors.Join(menuItemID.Validate(), quantity.Validate()); err != nil {
		return Line{}, err
	}
	return Line{menuItemID: menuItemID, quantity: quantity, unitPrice: unitPrice}, nil
}

// MenuItemID returns the referenced menu item.
func (l Line) MenuItemID() kernel.UUID {
	return l.menuItemID
}

// Quantity returns how many units were ordered.
func (l Line) Quantity() kernel.Quantity {
	return l.quantity
}

// UnitPrice returns the menu price at the time the order was placed.
func (l Line) UnitPrice() kernel.Money {
	return l.unitPrice
}

// Subtotal returns unit price × quantity.
func (l Line) Subtotal() kernel.Money {
	return l.unitPrice.Multiply(l.quantity)
}
