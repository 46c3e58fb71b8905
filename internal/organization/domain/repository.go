package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ListFilter struct {
	Search string
	Limit  int
	Offset int
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrganization(ctx context.Context, org *Organization) error
	FindByID(ctx context.Context, id snowflake.ID, withUsers bool) (*Organization, error)
	List(ctx context.Context, filter ListFilter) ([]Organization, int64, error)
	UpdateOrganization(ctx context.Context, id snowflake.ID, values map[string]any) error
	DeleteOrganization(ctx context.Context, id snowflake.ID) error
}
