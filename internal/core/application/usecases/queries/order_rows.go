package queries

import (
	"context"
	"database/sql"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const orderColumns = "id, customer_id, status, note, created_at, updated_at, created_by, updated_by"

func scanOrders(rows *sql.Rows) ([]OrderView, error) {
	views := make([]OrderView, 0)

	for rows.Next() {
		var (
			id, customerID, createdBy, updatedBy uuid.UUID
			status                               int
			view                                 OrderView
		)

		err := rows.Scan(&id, &customerID, &status, &view.Note, &view.CreatedAt, &view.UpdatedAt, &createdBy, &updatedBy)
		if err != nil {
			return nil, err
		}

		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if view.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
			return nil, err
		}
		if view.CreatedBy, err = kernel.UUIDFromBytes(createdBy[:]); err != nil {
			return nil, err
		}
		if view.UpdatedBy, err = kernel.UUIDFromBytes(updatedBy[:]); err != nil {
			return nil, err
		}
		view.Status = order.Status(status)
		view.CreatedAt = view.CreatedAt.UTC()
		view.UpdatedAt = view.UpdatedAt.UTC()
		view.Total = kernel.ZeroMoney()
		view.Items = []OrderLineView{}

		views = append(views, view)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return views, nil
}

// attachLines loads the lines of every view in one query and fills in totals.
func attachLines(ctx context.Context, db *gorm.DB, views []OrderView) error {
	if len(views) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(views))
	index := make(map[kernel.UUID]int, len(views))
	for i, v := range views {
		ids = append(ids, v.ID.Bytes())
		index[v.ID] = i
	}

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			l.order_id,
			l.menu_item_id,
			COALESCE(m.name, ''),
			l.quantity,
			l.unit_price
		FROM order_lines l
		LEFT JOIN menu_items m ON m.id = l.menu_item_id
		WHERE l.order_id IN ?
		ORDER BY l.order_id, m.name, l.menu_item_id
	`, ids).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID, menuItemID uuid.UUID
			line                OrderLineView
			price               decimal.Decimal
		)

		if err = rows.Scan(&orderID, &menuItemID, &line.Name, &line.Quantity, &price); err != nil {
			return err
		}

		owner, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return idErr
		}
		if line.MenuItemID, idErr = kernel.UUIDFromBytes(menuItemID[:]); idErr != nil {
			return idErr
		}
		if line.UnitPrice, err = kernel.NewMoney(price); err != nil {
			return err
		}

		i, ok := index[owner]
		if !ok {
			continue
		}
		quantity, qErr := kernel.NewQuantity(line.Quantity)
		if qErr != nil {
			return qErr
		}
		views[i].Items = append(views[i].Items, line)
		views[i].Total = views[i].Total.Add(line.UnitPrice.Multiply(quantity))
	}

	return rows.Err()
}

