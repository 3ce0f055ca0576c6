package cartrepo

import (
	"context"
	"errors"

	"cafe/internal/core/domain/model/cart"
	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/ports"
	"cafe/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCartRepository implements CartRepository using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

func (r *GormCartRepository) Add(ctx context.Context, line *cart.Line) error {
	if err := line.Validate(); err != nil {
		return err
	}

	dto := fromDomain(line)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:     []clause.Column{{Name: "customer_id"}, {Name: "menu_item_id"}},
			TargetWhere: clause.Where{Exprs: []clause.Expression{clause.Expr{SQL: "deleted = false"}}},
			DoNothing:   true,
		}).
		Create(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ports.ErrLiveCartLineExists
	}
	return nil
}

// Update saves quantity and the deleted flag.
func (r *GormCartRepository) Update(ctx context.Context, line *cart.Line) error {
	if err := line.Validate(); err != nil {
		return err
	}

	dto := fromDomain(line)
	result := r.db.WithContext(ctx).
		Model(&CartLineDTO{}).
		Where("id = ?", dto.ID).
		Select("quantity", "deleted").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("cart line", line.ID().String())
	}
	return nil
}

func (r *GormCartRepository) Get(ctx context.Context, id kernel.UUID) (*cart.Line, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CartLineDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cart line", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormCartRepository) FindLive(ctx context.Context, customerID, menuItemID kernel.UUID) (*cart.Line, error) {
	var dto CartLineDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("customer_id = ? AND menu_item_id = ? AND deleted = ?", customerID.Bytes(), menuItemID.Bytes(), false).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cart line", menuItemID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
