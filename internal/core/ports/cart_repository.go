package ports

import (
	"context"
	"errors"

	"cafe/internal/core/domain/model/cart"
	"cafe/internal/core/domain/model/kernel"
)

// ErrLiveCartLineExists is returned by CartRepository.Add when the customer
// already holds a live line for the menu item.
var ErrLiveCartLineExists = errors.New("a live cart line for this menu item already exists")

// CartRepository defines the persistence contract for cart lines. Lines are
// never physically deleted; removal is persisted through Update.
type CartRepository interface {
	// Add stores a new line. A customer holds at most one live line per menu
	// item; a second one yields ErrLiveCartLineExists.
	Add(ctx context.Context, line *cart.Line) error
	Update(ctx context.Context, line *cart.Line) error

	// Get retrieves a line, live or removed.
	Get(ctx context.Context, id kernel.UUID) (*cart.Line, error)

	// FindLive locks and returns the live line a customer holds for a menu
	// item, or an errs.ObjectNotFoundError.
	FindLive(ctx context.Context, customerID, menuItemID kernel.UUID) (*cart.Line, error)
}
