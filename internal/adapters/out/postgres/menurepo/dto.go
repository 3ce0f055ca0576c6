// Package menurepo persists menu items in the menu_items table.
package menurepo

import (
	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/menu"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MenuItemDTO struct {
	ID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name  string          `gorm:"type:varchar(100);not null"`
	Price decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

// TableName specifies the database table name for menu items.
func (MenuItemDTO) TableName() string {
	return "menu_items"
}

func fromDomain(item *menu.Item) MenuItemDTO {
	return MenuItemDTO{
		ID:    item.ID().Bytes(),
		Name:  item.Name(),
		Price: item.Price().Decimal(),
	}
}

func toDomain(dto MenuItemDTO) (*menu.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}
	return menu.NewItem(id, dto.Name, price)
}
