package queries

import (
	"context"

	"cafe/internal/core/domain/model/identity"
	"cafe/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns the order or ObjectNotFoundError. A customer asking for
// somebody else's order gets identity.ErrForbidden.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	rows, err := h.db.WithContext(ctx).
		Table("orders").
		Select(orderColumns).
		Where("id = ?", query.OrderID().Bytes()).
		Rows()
	if err != nil {
		return OrderView{}, err
	}
	defer rows.Close()

	views, err := scanOrders(rows)
	if err != nil {
		return OrderView{}, err
	}
	if len(views) == 0 {
		return OrderView{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	if !identity.CanActFor(query.Principal(), views[0].CustomerID) {
		return OrderView{}, identity.ErrForbidden
	}

	if err = attachLines(ctx, h.db, views); err != nil {
		return OrderView{}, err
	}
	return views[0], nil
}
