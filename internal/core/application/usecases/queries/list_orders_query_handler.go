package queries

import (
	"context"

	"cafe/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads pages of orders straight from the orders tables.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle counts the matching orders and returns the requested page with lines.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (Page[OrderView], error) {
	if err := query.Validate(); err != nil {
		return Page[OrderView]{}, err
	}
	request := query.PageRequest()

	scope := h.db.WithContext(ctx).Table("orders")
	if query.Status() != order.Unknown {
		scope = scope.Where("status = ?", int(query.Status()))
	}

	var total int64
	if err := scope.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Page[OrderView]{}, err
	}

	rows, err := scope.Session(&gorm.Session{}).
		Select(orderColumns).
		Order(request.orderClause()).
		Limit(request.Size()).
		Offset(request.Offset()).
		Rows()
	if err != nil {
		return Page[OrderView]{}, err
	}
	defer rows.Close()

	views, err := scanOrders(rows)
	if err != nil {
		return Page[OrderView]{}, err
	}

	if err = attachLines(ctx, h.db, views); err != nil {
		return Page[OrderView]{}, err
	}

	return NewPage(views, request, total), nil
}
