package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tradedesk/internal/quotation/domain"
	"github.com/smallbiznis/tradedesk/pkg/db/option"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func withLines(db *gorm.DB) *gorm.DB {
	db = db.Preload("QuotationProducts", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("quotation_products.id")
	})
	return option.ApplyPreload(domain.LinePreloads[1:]...).Apply(db)
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Quotation, error) {
	var q domain.Quotation
	err := withLines(db.WithContext(ctx)).Where("id = ?", id).Take(&q).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &q, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]domain.Quotation, int64, error) {
	stmt := db.WithContext(ctx).Model(&domain.Quotation{})
	if filter.OrganizationID != nil {
		stmt = stmt.Where("organization_id = ?", *filter.OrganizationID)
	}
	stmt = option.ApplySearch(filter.Search, "quotation_no").Apply(stmt)

	var total int64
	if err := stmt.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []domain.Quotation
	stmt = option.ApplyPagination(filter.Limit, filter.Offset).Apply(stmt)
	err := withLines(stmt).
		Order("created_at DESC").
		Order("id DESC").
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repo) CountByPrefix(ctx context.Context, db *gorm.DB, prefix string) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Quotation{}).
		Unscoped().
		Where("quotation_no LIKE ?", prefix+"%").
		Count(&count).Error
	return count, err
}
