package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	invoicedomain "github.com/smallbiznis/tradedesk/internal/invoice/domain"
	"github.com/smallbiznis/tradedesk/internal/proformainvoice/domain"
	"github.com/smallbiznis/tradedesk/pkg/db/option"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func withChildren(db *gorm.DB) *gorm.DB {
	db = db.Preload("ProformaInvoiceProducts", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("proforma_invoice_products.id")
	}).Preload("ProformaInvoiceContainers", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("proforma_invoice_containers.id")
	})
	return option.ApplyPreload(domain.LinePreloads...).Apply(db)
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.ProformaInvoice, error) {
	var pi domain.ProformaInvoice
	err := withChildren(db.WithContext(ctx)).Where("id = ?", id).Take(&pi).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pi, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter invoicedomain.ListFilter) ([]domain.ProformaInvoice, int64, error) {
	filter.IsProformaInvoice = nil
	stmt := db.WithContext(ctx).Model(&domain.ProformaInvoice{})
	for _, opt := range filter.Options() {
		stmt = opt.Apply(stmt)
	}

	var total int64
	if err := stmt.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []domain.ProformaInvoice
	stmt = option.ApplyPagination(filter.Limit, filter.Offset).Apply(stmt)
	if err := withChildren(stmt).Order("created_at DESC").Order("id DESC").Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
