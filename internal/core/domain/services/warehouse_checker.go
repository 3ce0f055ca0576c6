package services

import (
	"fmt"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/order"
	"cafe/internal/core/domain/model/warehouse"
)

// Availability is the outcome of a warehouse check. It is either Available or
// Unavailable.
type Availability interface {
	isAvailability()
}

// Available means every order line was reserved.
type Available struct{}

// Unavailable lists the lines the warehouse cannot supply. No stock is
// reserved when the result is Unavailable.
type Unavailable struct {
	Shortages []Shortage
}

// Shortage describes one menu item the warehouse is short of.
type Shortage struct {
	MenuItemID kernel.UUID
	Requested  int
	Available  int
}

func (Available) isAvailability()   {}
func (Unavailable) isAvailability() {}

func (s Shortage) String() string {
	return fmt.Sprintf("%s: requested %d, available %d", s.MenuItemID, s.Requested, s.Available)
}

// WarehouseChecker checks an order against the stock of its menu items.
//
// Business rules:
//   - Only valid orders are checked
//   - A menu item without a stock record counts as zero available
//   - Reservation is all or nothing
type WarehouseChecker struct{}

// NewWarehouseChecker creates a new WarehouseChecker instance.
func NewWarehouseChecker() WarehouseChecker {
	return WarehouseChecker{}
}

// Check reserves stock for every line of the order, or reports the shortages
// without touching stock.
func (WarehouseChecker) Check(o *order.Order, stocks []*warehouse.Stock) (Availability, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	byItem := make(map[kernel.UUID]*warehouse.Stock, len(stocks))
	for _, s := range stocks {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		byItem[s.MenuItemID()] = s
	}

	var shortages []Shortage
	for _, l := range o.Lines() {
		s, ok := byItem[l.MenuItemID()]
		if ok && s.CanSupply(l.Quantity()) {
			continue
		}
		available := 0
		if ok {
			available = s.Available()
		}
		shortages = append(shortages, Shortage{
			MenuItemID: l.MenuItemID(),
			Requested:  l.Quantity().Int(),
			Available:  available,
		})
	}
	if len(shortages) > 0 {
		return Unavailable{Shortages: shortages}, nil
	}

	for _, l := range o.Lines() {
		if err := byItem[l.MenuItemID()].Reserve(l.Quantity()); err != nil {
			return nil, err
		}
	}
	return Available{}, nil
}
