package ports

import (
	"context"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/warehouse"
)

// StockRepository defines the persistence contract for warehouse stock.
type StockRepository interface {
	// Save inserts or replaces the stock of a menu item.
	Save(ctx context.Context, stock *warehouse.Stock) error

	// Get returns the stock of a menu item or an errs.ObjectNotFoundError.
	Get(ctx context.Context, menuItemID kernel.UUID) (*warehouse.Stock, error)

	// GetForUpdate locks and returns the stock rows of the given menu items.
	// Items without a stock row are absent from the result.
	GetForUpdate(ctx context.Context, menuItemIDs []kernel.UUID) ([]*warehouse.Stock, error)
}
