package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/smallbiznis/tradedesk/internal/config"
	"github.com/smallbiznis/tradedesk/internal/organization/domain"
	"github.com/smallbiznis/tradedesk/pkg/apperror"
	"github.com/smallbiznis/tradedesk/pkg/db/pagination"
	"github.com/smallbiznis/tradedesk/pkg/validation"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	Policies *config.DocumentConfigHolder `optional:"true"`
}

type service struct {
	db       *gorm.DB
	log      *zap.Logger
	repo     domain.Repository
	genID    *snowflake.Node
	policies *config.DocumentConfigHolder
}

func NewService(p Params) domain.Service {
	return &service{
		db:       p.DB,
		log:      p.Log.Named("organization.service"),
		repo:     p.Repo,
		genID:    p.GenID,
		policies: p.Policies,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateOrganizationRequest) (*domain.Organization, error) {
	var c validation.Collector
	c.Required("name", req.Name)
	if req.Email != nil && !strings.Contains(*req.Email, "@") {
		c.Add("email", validation.CodeInvalid, "email must be an email")
	}
	if err := c.Err(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	org := &domain.Organization{
		ID:      s.genID.Generate(),
		Name:    name,
		Slug:    slug.Make(name),
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if err := s.repo.CreateOrganization(ctx, org); err != nil {
		return nil, err
	}

	s.log.Info("organization created",
		zap.String("organization_id", org.ID.String()),
		zap.String("slug", org.Slug),
	)
	return org, nil
}

func (s *service) List(ctx context.Context, req domain.ListOrganizationRequest) (domain.ListOrganizationResponse, error) {
	listing := s.policies.Get().Listing
	page := pagination.Pagination{Page: req.Page, Limit: req.Limit}.Normalize(listing.DefaultLimit, listing.MaxLimit)

	items, total, err := s.repo.List(ctx, domain.ListFilter{
		Search: strings.TrimSpace(req.Search),
		Limit:  page.Limit,
		Offset: page.Offset(),
	})
	if err != nil {
		return domain.ListOrganizationResponse{}, err
	}
	if items == nil {
		items = []domain.Organization{}
	}
	return domain.ListOrganizationResponse{Data: items, Meta: pagination.BuildMeta(page, total)}, nil
}

func (s *service) GetByID(ctx context.Context, id snowflake.ID) (*domain.Organization, error) {
	if id == 0 {
		return nil, domain.ErrInvalidOrganization
	}
	org, err := s.repo.FindByID(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, apperror.NotFound("Organization")
	}
	return org, nil
}

func (s *service) Update(ctx context.Context, id snowflake.ID, req domain.UpdateOrganizationRequest) (*domain.Organization, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	var c validation.Collector
	c.RequiredIfSet("name", req.Name)
	if req.Email.Present() && !strings.Contains(req.Email.Value, "@") {
		c.Add("email", validation.CodeInvalid, "email must be an email")
	}
	if err := c.Err(); err != nil {
		return nil, err
	}

	values := map[string]any{}
	if req.Name.Set {
		name := strings.TrimSpace(req.Name.Value)
		values["name"] = name
		values["slug"] = slug.Make(name)
	}
	req.Email.Apply(values, "email")
	req.Phone.Apply(values, "phone")
	req.Address.Apply(values, "address")

	if err := s.repo.UpdateOrganization(ctx, id, values); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id snowflake.ID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// members keep their accounts but lose the tenant
		if err := tx.Table("users").Where("organization_id = ?", id).Update("organization_id", nil).Error; err != nil {
			return err
		}
		return s.repo.WithTx(tx).DeleteOrganization(ctx, id)
	})
}
