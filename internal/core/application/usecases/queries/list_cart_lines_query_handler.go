package queries

import (
	"context"

	"cafe/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ListCartLinesQueryHandler struct {
	db *gorm.DB
}

func NewListCartLinesQueryHandler(db *gorm.DB) ListCartLinesQueryHandler {
	return ListCartLinesQueryHandler{db: db}
}

// Handle lists live cart lines ordered by menu item name. Removed lines are
// not returned.
func (h ListCartLinesQueryHandler) Handle(ctx context.Context, query ListCartLinesQuery) ([]CartLineView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	lines := make([]CartLineView, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			c.id,
			m.id,
			m.name,
			m.price,
			c.quantity,
			c.deleted
		FROM cart_lines c
		JOIN menu_items m ON m.id = c.menu_item_id
		WHERE c.customer_id = ? AND c.deleted = false
		ORDER BY m.name, c.id
	`, query.CustomerID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id, menuItemID uuid.UUID
			price          decimal.Decimal
			line           CartLineView
		)

		if err = rows.Scan(&id, &menuItemID, &line.MenuItem.Name, &price, &line.Quantity, &line.Deleted); err != nil {
			return nil, err
		}

		if line.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if line.MenuItem.ID, err = kernel.UUIDFromBytes(menuItemID[:]); err != nil {
			return nil, err
		}
		if line.MenuItem.Price, err = kernel.NewMoney(price); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
