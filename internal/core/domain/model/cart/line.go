// Package cart models the lines a customer collects before placing an order.
//
// A line is created when an item is first added, its quantity changes as the
// customer adjusts it, and removal only sets the deleted flag: lines are never
// physically deleted.
package cart

import (
	"errors"
	"fmt"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/pkg/errs"
)

var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")

// Line is one menu item in a customer's cart.
type Line struct {
	id         kernel.UUID
	customerID kernel.UUID
	menuItemID kernel.UUID
	quantity   kernel.Quantity
	deleted    bool

	isConstructed bool
}

// NewLine creates a live cart line.
func NewLine(id, customerID, menuItemID kernel.UUID, quantity kernel.Quantity) (*Line, error) {
	return RestoreLine(id, customerID, menuItemID, quantity, false)
}

// RestoreLine rebuilds a line loaded from persistence.
func RestoreLine(id, customerID, menuItemID kernel.UUID, quantity kernel.Quantity, deleted bool) (*Line, error) {
	if err := errors.Join(
		id.Validate(),
		customerID.Validate(),
		menuItemID.Validate(),
		quantity.Validate(),
	); err != nil {
		return nil, err
	}

	return &Line{
		id:            id,
		customerID:    customerID,
		menuItemID:    menuItemID,
		quantity:      quantity,
		deleted:       deleted,
		isConstructed: true,
	}, nil
}

// Validate ensures the line was built by a constructor.
func (l *Line) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLineIsNotConstructed
	}
	return nil
}

func (l *Line) ID() kernel.UUID           { return l.id }
func (l *Line) CustomerID() kernel.UUID   { return l.customerID }
func (l *Line) MenuItemID() kernel.UUID   { return l.menuItemID }
func (l *Line) Quantity() kernel.Quantity { return l.quantity }
func (l *Line) IsDeleted() bool           { return l.deleted }

// Increase adds more units of the same item, as happens when the item is added again.
func (l *Line) Increase(by kernel.Quantity) error {
	if err := l.ensureLive(); err != nil {
		return err
	}
	sum, err := l.quantity.Add(by)
	if err != nil {
		return err
	}
	l.quantity = sum
	return nil
}

// ChangeQuantity replaces the quantity of a live line.
func (l *Line) ChangeQuantity(quantity kernel.Quantity) error {
	if err := errors.Join(l.ensureLive(), quantity.Validate()); err != nil {
		return err
	}
	l.quantity = quantity
	return nil
}

// Remove soft-deletes the line. Removing twice is a no-op.
func (l *Line) Remove() {
	l.deleted = true
}

func (l *Line) ensureLive() error {
	if l.deleted {
		return errs.NewValueIsInvalidErrorWithCause("cart line is invalid", fmt.Errorf("line %s was removed", l.id))
	}
	return nil
}
