package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tradedesk/pkg/db/option"
	"gorm.io/gorm"
)

// Repository is a generic gorm-backed store. Models with a gorm.DeletedAt
// column are soft-deleted and hidden from every read.
type Repository[T any] interface {
	WithTrx(tx *gorm.DB) Repository[T]
	Find(ctx context.Context, opts ...option.QueryOption) ([]*T, error)
	FindOne(ctx context.Context, opts ...option.QueryOption) (*T, error)
	FindByID(ctx context.Context, id snowflake.ID, opts ...option.QueryOption) (*T, error)
	Exists(ctx context.Context, id snowflake.ID) (bool, error)
	Count(ctx context.Context, opts ...option.QueryOption) (int64, error)
	Create(ctx context.Context, resource *T) error
	Update(ctx context.Context, id snowflake.ID, values map[string]any) error
	UpdateWhere(ctx context.Context, values map[string]any, query string, args ...any) error
	Delete(ctx context.Context, id snowflake.ID) error
}
