package queries

import (
	"errors"

	"cafe/internal/core/domain/model/identity"
	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery fetches one order on behalf of a principal. Customers may only
// read their own orders.
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	principal identity.Principal

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID, principal identity.Principal) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	if !principal.IsAuthenticated() {
		return GetOrderQuery{}, identity.ErrUnauthenticated
	}
	return GetOrderQuery{orderID: orderID, principal: principal, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID          { return q.orderID }
func (q GetOrderQuery) Principal() identity.Principal { return q.principal }
