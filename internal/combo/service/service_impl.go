package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tradedesk/internal/combo/domain"
	organizationdomain "github.com/smallbiznis/tradedesk/internal/organization/domain"
	"github.com/smallbiznis/tradedesk/internal/orgcontext"
	quotationdomain "github.com/smallbiznis/tradedesk/internal/quotation/domain"
	referencedomain "github.com/smallbiznis/tradedesk/internal/reference/domain"
	roledomain "github.com/smallbiznis/tradedesk/internal/role/domain"
	userdomain "github.com/smallbiznis/tradedesk/internal/user/domain"
	"github.com/smallbiznis/tradedesk/pkg/db/option"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Countries referencedomain.Repository
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	countries referencedomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("combo.service"),
		countries: p.Countries,
	}
}

type row struct {
	ID    snowflake.ID `gorm:"column:id"`
	Label string       `gorm:"column:label"`
}

func scan(stmt *gorm.DB) ([]domain.Item, error) {
	var rows []row
	if err := stmt.Scan(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]domain.Item, 0, len(rows))
	for _, r := range rows {
		items = append(items, domain.Item{ID: r.ID.String(), Label: r.Label})
	}
	return items, nil
}

func (s *Service) Users(ctx context.Context, search string) ([]domain.Item, error) {
	scope, err := orgcontext.ResolveScope(ctx)
	if err != nil {
		return nil, err
	}
	stmt := s.db.WithContext(ctx).
		Model(&userdomain.User{}).
		Select("roles.id AS id, roles.name AS label").
		Joins("JOIN roles ON roles.id = users.role_id")
	if owner := scope.Owner(); owner != nil {
		stmt = stmt.Where("users.organization_id = ?", *owner)
	}
	stmt = option.ApplySearch(search, "users.name").Apply(stmt)
	return scan(stmt.Order("users.id"))
}

func (s *Service) Roles(ctx context.Context, search string) ([]domain.Item, error) {
	stmt := s.db.WithContext(ctx).Model(&roledomain.Role{}).Select("id, name AS label")
	stmt = option.ApplySearch(search, "name").Apply(stmt)
	return scan(stmt.Order("name"))
}

func (s *Service) Organizations(ctx context.Context, search string) ([]domain.Item, error) {
	stmt := s.db.WithContext(ctx).Model(&organizationdomain.Organization{}).Select("id, name AS label")
	stmt = option.ApplySearch(search, "name").Apply(stmt)
	return scan(stmt.Order("name"))
}

// Quotations lists live quotations of the caller's organization.
func (s *Service) Quotations(ctx context.Context, search string) ([]domain.Item, error) {
	scope, err := orgcontext.ResolveScope(ctx)
	if err != nil {
		return nil, err
	}
	stmt := s.db.WithContext(ctx).Model(&quotationdomain.Quotation{}).Select("id, quotation_no AS label")
	if owner := scope.Owner(); owner != nil {
		stmt = stmt.Where("organization_id = ?", *owner)
	}
	stmt = option.ApplySearch(search, "quotation_no").Apply(stmt)
	return scan(stmt.Order("created_at DESC").Order("id DESC"))
}

func (s *Service) Countries(ctx context.Context, search string) ([]domain.Item, error) {
	countries, err := s.countries.ListCountries(ctx, search)
	if err != nil {
		return nil, err
	}
	items := make([]domain.Item, 0, len(countries))
	for _, c := range countries {
		items = append(items, domain.Item{ID: c.Code, Label: c.Name})
	}
	return items, nil
}
