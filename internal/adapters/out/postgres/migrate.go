package postgres

import (
	"cafe/internal/adapters/out/postgres/cartrepo"
	"cafe/internal/adapters/out/postgres/menurepo"
	"cafe/internal/adapters/out/postgres/orderrepo"
	"cafe/internal/adapters/out/postgres/outboxrepo"
	"cafe/internal/adapters/out/postgres/stockrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the repositories use.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&menurepo.MenuItemDTO{},
		&stockrepo.StockDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&cartrepo.CartLineDTO{},
		&outboxrepo.OutboxMessageDTO{},
	)
}
