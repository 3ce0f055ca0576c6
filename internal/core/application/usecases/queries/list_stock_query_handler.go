package queries

import (
	"context"

	"cafe/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListStockQueryHandler struct {
	db *gorm.DB
}

func NewListStockQueryHandler(db *gorm.DB) ListStockQueryHandler {
	return ListStockQueryHandler{db: db}
}

func (h ListStockQueryHandler) Handle(ctx context.Context, query ListStockQuery) ([]StockView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stock := make([]StockView, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			m.id,
			m.name,
			COALESCE(s.available, 0)
		FROM menu_items m
		LEFT JOIN warehouse_stock s ON s.menu_item_id = m.id
		ORDER BY m.name, m.id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id   uuid.UUID
			view StockView
		)

		if err = rows.Scan(&id, &view.Name, &view.Available); err != nil {
			return nil, err
		}
		if view.MenuItemID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		stock = append(stock, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return stock, nil
}
