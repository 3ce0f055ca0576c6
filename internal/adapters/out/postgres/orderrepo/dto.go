// Package orderrepo persists the order aggregate in the orders and order_lines
// tables and maps rows back to domain objects.
package orderrepo

import (
	"time"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status and created_at are indexed for the paged listings.
type OrderDTO struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID      `gorm:"type:uuid;index;not null"`
	Status     int            `gorm:"index;not null"`
	Note       string         `gorm:"type:varchar(500);not null;default:''"`
	CreatedAt  time.Time      `gorm:"index;not null"`
	UpdatedAt  time.Time      `gorm:"not null"`
	CreatedBy  uuid.UUID      `gorm:"type:uuid;not null"`
	UpdatedBy  uuid.UUID      `gorm:"type:uuid;not null"`
	Lines      []OrderLineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO is one ordered menu item. An order holds at most one line per
// menu item, hence the composite key.
type OrderLineDTO struct {
	OrderID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	MenuItemID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

// TableName specifies the database table name for order lines.
func (OrderLineDTO) TableName() string {
	return "order_lines"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	id := aggregate.ID().Bytes()

	lines := make([]OrderLineDTO, 0, len(aggregate.Lines()))
	for _, l := range aggregate.Lines() {
		lines = append(lines, OrderLineDTO{
			OrderID:    id,
			MenuItemID: l.MenuItemID().Bytes(),
			Quantity:   l.Quantity().Int(),
			UnitPrice:  l.UnitPrice().Decimal(),
		})
	}

	return OrderDTO{
		ID:         id,
		CustomerID: aggregate.CustomerID().Bytes(),
		Status:     int(aggregate.Status()),
		Note:       aggregate.Note(),
		CreatedAt:  aggregate.CreatedAt(),
		UpdatedAt:  aggregate.UpdatedAt(),
		CreatedBy:  aggregate.CreatedBy().Bytes(),
		UpdatedBy:  aggregate.UpdatedBy().Bytes(),
		Lines:      lines,
	}
}

// toDomain reconstructs the aggregate with RestoreOrder, so no events are recorded.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	createdBy, err := kernel.UUIDFromBytes(dto.CreatedBy[:])
	if err != nil {
		return nil, err
	}
	updatedBy, err := kernel.UUIDFromBytes(dto.UpdatedBy[:])
	if err != nil {
		return nil, err
	}

	lines := make([]order.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		line, lineErr := lineToDomain(l)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(
		id,
		customerID,
		lines,
		dto.Note,
		order.Status(dto.Status),
		dto.CreatedAt,
		dto.UpdatedAt,
		createdBy,
		updatedBy,
	)
}

func lineToDomain(dto OrderLineDTO) (order.Line, error) {
	menuItemID, err := kernel.UUIDFromBytes(dto.MenuItemID[:])
	if err != nil {
		return order.Line{}, err
	}
	quantity, err := kernel.NewQuantity(dto.Quantity)
	if err != nil {
		return order.Line{}, err
	}
	price, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return order.Line{}, err
	}
	return order.NewLine(menuItemID, quantity, price)
}
