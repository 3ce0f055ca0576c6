package ports

import (
	"context"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/menu"
)

// MenuRepository defines the persistence contract for menu items.
type MenuRepository interface {
	Add(ctx context.Context, item *menu.Item) error
	Get(ctx context.Context, id kernel.UUID) (*menu.Item, error)

	// GetMany returns the items with the given identifiers. Unknown identifiers
	// are skipped; callers compare lengths to detect them.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*menu.Item, error)
}
