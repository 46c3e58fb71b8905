package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Filter narrows a product listing. Rows whose unit was deleted are never
// returned.
type Filter struct {
	Search        string
	SearchColumns []string
	Limit         int
	Offset        int
}

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, product *Product) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Product, error)
	List(ctx context.Context, db *gorm.DB, filter Filter) ([]Product, int64, error)
	Update(ctx context.Context, db *gorm.DB, id snowflake.ID, values map[string]any) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	UnitExists(ctx context.Context, db *gorm.DB, unitID snowflake.ID) (bool, error)
}
