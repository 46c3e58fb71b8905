package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tradedesk/internal/product/domain"
	settingsdomain "github.com/smallbiznis/tradedesk/internal/settings/domain"
	"github.com/smallbiznis/tradedesk/pkg/db/option"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Omit("Unit").Create(product).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Product, error) {
	var p domain.Product
	err := liveUnit(db.WithContext(ctx)).
		Preload("Unit").
		Where("products.id = ?", id).
		Take(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.Filter) ([]domain.Product, int64, error) {
	search := option.ApplySearch(filter.Search, filter.SearchColumns...)

	var total int64
	if err := search.Apply(liveUnit(db.WithContext(ctx))).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []domain.Product
	stmt := search.Apply(liveUnit(db.WithContext(ctx))).Preload("Unit")
	stmt = option.ApplyOrder("products.created_at DESC").Apply(stmt)
	stmt = option.ApplyPagination(filter.Limit, filter.Offset).Apply(stmt)
	if err := stmt.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, id snowflake.ID, values map[string]any) error {
	if len(values) == 0 {
		return nil
	}
	return db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", id).Updates(values).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Product{}).Error
}

func (r *repo) UnitExists(ctx context.Context, db *gorm.DB, unitID snowflake.ID) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&settingsdomain.Unit{}).Where("id = ?", unitID).Count(&count).Error
	return count > 0, err
}

// liveUnit restricts products to rows whose unit is not soft-deleted.
func liveUnit(db *gorm.DB) *gorm.DB {
	return db.Model(&domain.Product{}).
		Joins("JOIN units ON units.id = products.unit_id AND units.deleted_at IS NULL")
}
