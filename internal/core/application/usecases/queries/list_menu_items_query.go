package queries

import (
	"errors"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/pkg/guard"
)

var ErrListMenuItemsQueryIsNotConstructed = errors.New(
	"ListMenuItemsQuery must be created via NewListMenuItemsQuery constructor",
)

// ListMenuItemsQuery returns the whole menu.
type ListMenuItemsQuery struct {
	guard guard.ConstructorGuard
}

func NewListMenuItemsQuery() ListMenuItemsQuery {
	return ListMenuItemsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListMenuItemsQuery) Validate() error {
	return q.guard.Validate(ErrListMenuItemsQueryIsNotConstructed)
}

type MenuItemView struct {
	ID    kernel.UUID
	Name  string
	Price kernel.Money
}
