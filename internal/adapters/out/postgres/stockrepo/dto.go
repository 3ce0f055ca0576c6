// Package stockrepo persists warehouse stock in the warehouse_stock table.
package stockrepo

import (
	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/warehouse"

	"github.com/google/uuid"
)

type StockDTO struct {
	MenuItemID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Available  int       `gorm:"not null;check:available >= 0"`
}

// TableName specifies the database table name for stock rows.
func (StockDTO) TableName() string {
	return "warehouse_stock"
}

func fromDomain(stock *warehouse.Stock) StockDTO {
	return StockDTO{
		MenuItemID: stock.MenuItemID().Bytes(),
		Available:  stock.Available(),
	}
}

func toDomain(dto StockDTO) (*warehouse.Stock, error) {
	menuItemID, err := kernel.UUIDFromBytes(dto.MenuItemID[:])
	if err != nil {
		return nil, err
	}
	return warehouse.NewStock(menuItemID, dto.Available)
}
