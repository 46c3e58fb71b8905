package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tradedesk/internal/organization/domain"
	"github.com/smallbiznis/tradedesk/pkg/db/option"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) domain.Repository {
	return &repository{db: tx}
}

func (r *repository) CreateOrganization(ctx context.Context, org *domain.Organization) error {
	return r.db.WithContext(ctx).Omit("Users").Create(org).Error
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID, withUsers bool) (*domain.Organization, error) {
	stmt := r.db.WithContext(ctx).Where("id = ?", id)
	if withUsers {
		stmt = stmt.Preload("Users", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).Preload("Users.Role")
	}

	var org domain.Organization
	if err := stmt.Take(&org).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &org, nil
}

func (r *repository) List(ctx context.Context, filter domain.ListFilter) ([]domain.Organization, int64, error) {
	search := option.ApplySearch(filter.Search, "name", "email", "phone")

	var total int64
	if err := search.Apply(r.db.WithContext(ctx).Model(&domain.Organization{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []domain.Organization
	stmt := search.Apply(r.db.WithContext(ctx).Model(&domain.Organization{}))
	stmt = option.ApplyPagination(filter.Limit, filter.Offset).Apply(stmt)
	err := stmt.
		Preload("Users").
		Preload("Users.Role").
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repository) UpdateOrganization(ctx context.Context, id snowflake.ID, values map[string]any) error {
	if len(values) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&domain.Organization{}).Where("id = ?", id).Updates(values).Error
}

func (r *repository) DeleteOrganization(ctx context.Context, id snowflake.ID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Organization{}).Error
}
