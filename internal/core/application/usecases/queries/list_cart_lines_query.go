package queries

import (
	"errors"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/pkg/guard"
)

var ErrListCartLinesQueryIsNotConstructed = errors.New(
	"ListCartLinesQuery must be created via NewListCartLinesQuery constructor",
)

// ListCartLinesQuery returns the live lines of one customer's cart.
type ListCartLinesQuery struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListCartLinesQuery(customerID kernel.UUID) (ListCartLinesQuery, error) {
	if err := customerID.Validate(); err != nil {
		return ListCartLinesQuery{}, err
	}
	return ListCartLinesQuery{customerID: customerID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListCartLinesQuery) Validate() error {
	return q.guard.Validate(ErrListCartLinesQueryIsNotConstructed)
}

func (q ListCartLinesQuery) CustomerID() kernel.UUID { return q.customerID }

// CartLineView is a cart line together with the menu item it refers to.
type CartLineView struct {
	ID       kernel.UUID
	MenuItem MenuItemView
	Quantity int
	Deleted  bool
}
