package queries

import (
	"errors"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/pkg/guard"
)

var ErrListStockQueryIsNotConstructed = errors.New(
	"ListStockQuery must be created via NewListStockQuery constructor",
)

// ListStockQuery returns the warehouse stock of every menu item. Items that
// were never stocked are listed with zero available.
type ListStockQuery struct {
	guard guard.ConstructorGuard
}

func NewListStockQuery() ListStockQuery {
	return ListStockQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListStockQuery) Validate() error {
	return q.guard.Validate(ErrListStockQueryIsNotConstructed)
}

type StockView struct {
	MenuItemID kernel.UUID
	Name       string
	Available  int
}
