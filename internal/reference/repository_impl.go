package reference

import (
	"context"

	"github.com/smallbiznis/tradedesk/internal/reference/domain"
	"github.com/smallbiznis/tradedesk/pkg/db/option"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

// ListCountries matches search against both the name and the ISO code.
func (r *repository) ListCountries(ctx context.Context, search string) ([]domain.Country, error) {
	query := r.db.WithContext(ctx).Model(&domain.Country{}).Select("code", "name")
	for _, opt := range []option.QueryOption{
		option.ApplySearch(search, "name", "code"),
		option.ApplyOrder("name ASC", "code ASC"),
	} {
		query = opt.Apply(query)
	}

	countries := []domain.Country{}
	if err := query.Find(&countries).Error; err != nil {
		return nil, err
	}
	return countries, nil
}
