// Package warehouse tracks how many units of each menu item can still be supplied.
package warehouse

import (
	"errors"
	"fmt"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/pkg/errs"
)

var ErrStockIsNotConstructed = errors.New("Stock must be created via NewStock constructor")

// Stock is the available quantity of one menu item.
type Stock struct {
	menuItemID kernel.UUID
	available  int

	isConstructed bool
}

// NewStock requires a menu item and a non-negative available quantity.
func NewStock(menuItemID kernel.UUID, available int) (*Stock, error) {
	if err := menuItemID.Validate(); err != nil {
		return nil, err
	}
	if available < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"available is invalid",
			fmt.Errorf("%d is negative", available),
		)
	}
	return &Stock{menuItemID: menuItemID, available: available, isConstructed: true}, nil
}

// Validate ensures the stock was built by NewStock.
func (s *Stock) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrStockIsNotConstructed
	}
	return nil
}

func (s *Stock) MenuItemID() kernel.UUID { return s.menuItemID }
func (s *Stock) Available() int          { return s.available }

// CanSupply reports whether quantity units are available.
func (s *Stock) CanSupply(quantity kernel.Quantity) bool {
	return s.available >= quantity.Int()
}

// Reserve takes quantity units out of stock.
func (s *Stock) Reserve(quantity kernel.Quantity) error {
	if !s.CanSupply(quantity) {
		return errs.NewValueIsOutOfRangeError("reserved quantity", quantity.Int(), 1, s.available)
	}
	s.available -= quantity.Int()
	return nil
}

// Set replaces the available quantity, as done by a stock count.
func (s *Stock) Set(available int) error {
	if available < 0 {
		return errs.NewValueIsInvalidErrorWithCause("available is invalid", fmt.Errorf("%d is negative", available))
	}
	s.available = available
	return nil
}
