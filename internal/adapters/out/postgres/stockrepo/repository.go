package stockrepo

import (
	"context"
	"errors"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/warehouse"
	"cafe/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockRepository implements StockRepository using GORM.
type GormStockRepository struct {
	db *gorm.DB
}

func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// Save upserts the stock row of the menu item.
func (r *GormStockRepository) Save(ctx context.Context, stock *warehouse.Stock) error {
	if err := stock.Validate(); err != nil {
		return err
	}

	dto := fromDomain(stock)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "menu_item_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"available"}),
		}).
		Create(&dto).Error
}

func (r *GormStockRepository) Get(ctx context.Context, menuItemID kernel.UUID) (*warehouse.Stock, error) {
	if err := menuItemID.Validate(); err != nil {
		return nil, err
	}

	var dto StockDTO
	if err := r.db.WithContext(ctx).First(&dto, "menu_item_id = ?", menuItemID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("stock", menuItemID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetForUpdate locks rows in menu item order so that concurrent receives
// acquire them in the same sequence.
func (r *GormStockRepository) GetForUpdate(ctx context.Context, menuItemIDs []kernel.UUID) ([]*warehouse.Stock, error) {
	if len(menuItemIDs) == 0 {
		return []*warehouse.Stock{}, nil
	}

	raw := make([]uuid.UUID, 0, len(menuItemIDs))
	for _, id := range menuItemIDs {
		raw = append(raw, id.Bytes())
	}

	var dtos []StockDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("menu_item_id IN ?", raw).
		Order("menu_item_id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	stocks := make([]*warehouse.Stock, 0, len(dtos))
	for _, dto := range dtos {
		s, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		stocks = append(stocks, s)
	}
	return stocks, nil
}
