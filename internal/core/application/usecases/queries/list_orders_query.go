package queries

import (
	"errors"
	"time"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/order"
	"cafe/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery pages through orders, optionally narrowed to one status.
//
// Example:
//
//	page, _ := NewPageRequest(0, 10, "createdAt", "desc")
//	query, _ := NewListOrdersQuery(order.Pending, page)
//	result, err := handler.Handle(ctx, query)
type ListOrdersQuery struct { //nolint:recvcheck //using for validation
	status  order.Status
	request PageRequest

	guard guard.ConstructorGuard
}

// NewListOrdersQuery builds the query. order.Unknown lists every status.
func NewListOrdersQuery(status order.Status, request PageRequest) (ListOrdersQuery, error) {
	if status != order.Unknown {
		if err := status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	if err := request.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	return ListOrdersQuery{status: status, request: request, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Status() order.Status     { return q.status }
func (q ListOrdersQuery) PageRequest() PageRequest { return q.request }

// OrderView is the read model of an order.
type OrderView struct {
	ID         kernel.UUID
	CustomerID kernel.UUID
	Status     order.Status
	Note       string
	Items      []OrderLineView
	Total      kernel.Money
	CreatedAt  time.Time
	UpdatedAt  time.Time
	CreatedBy  kernel.UUID
	UpdatedBy  kernel.UUID
}

// OrderLineView is one line of an OrderView with the menu item name.
type OrderLineView struct {
	MenuItemID kernel.UUID
	Name       string
	Quantity   int
	UnitPrice  kernel.Money
}
