// Package cartrepo persists cart lines in the cart_lines table.
package cartrepo

import (
	"cafe/internal/core/domain/model/cart"
	"cafe/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CartLineDTO is the row of a cart line. Removed lines keep their row with
// deleted set; only live lines are unique per customer and menu item.
type CartLineDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_lines_live,where:deleted = false"`
	MenuItemID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_lines_live,where:deleted = false"`
	Quantity   int       `gorm:"not null"`
	Deleted    bool      `gorm:"not null;default:false"`
}

// TableName specifies the database table name for cart lines.
func (CartLineDTO) TableName() string {
	return "cart_lines"
}

func fromDomain(line *cart.Line) CartLineDTO {
	return CartLineDTO{
		ID:         line.ID().Bytes(),
		CustomerID: line.CustomerID().Bytes(),
		MenuItemID: line.MenuItemID().Bytes(),
		Quantity:   line.Quantity().Int(),
		Deleted:    line.IsDeleted(),
	}
}

func toDomain(dto CartLineDTO) (*cart.Line, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	menuItemID, err := kernel.UUIDFromBytes(dto.MenuItemID[:])
	if err != nil {
		return nil, err
	}
	quantity, err := kernel.NewQuantity(dto.Quantity)
	if err != nil {
		return nil, err
	}
	return cart.RestoreLine(id, customerID, menuItemID, quantity, dto.Deleted)
}
