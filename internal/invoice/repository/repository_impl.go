package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tradedesk/internal/invoice/domain"
	"github.com/smallbiznis/tradedesk/pkg/db/option"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func withChildren(db *gorm.DB) *gorm.DB {
	db = db.Preload("InvoiceProducts", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("invoice_products.id")
	}).Preload("InvoiceContainers", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("invoice_containers.id")
	})
	return option.ApplyPreload(domain.LinePreloads...).Apply(db)
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := withChildren(db.WithContext(ctx)).Where("id = ?", id).Take(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]domain.Invoice, int64, error) {
	stmt := db.WithContext(ctx).Model(&domain.Invoice{})
	for _, opt := range filter.Options() {
		stmt = opt.Apply(stmt)
	}

	var total int64
	if err := stmt.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []domain.Invoice
	stmt = option.ApplyPagination(filter.Limit, filter.Offset).Apply(stmt)
	err := withChildren(stmt).
		Order("created_at DESC").
		Order("id DESC").
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
