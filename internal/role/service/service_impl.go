package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tradedesk/internal/role/domain"
	"github.com/smallbiznis/tradedesk/pkg/apperror"
	"github.com/smallbiznis/tradedesk/pkg/db"
	"github.com/smallbiznis/tradedesk/pkg/db/option"
	"github.com/smallbiznis/tradedesk/pkg/repository"
	"github.com/smallbiznis/tradedesk/pkg/validation"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  repository.Repository[domain.Role]
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("role.service"),
		genID: p.GenID,
		repo:  repository.ProvideStore[domain.Role](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRoleRequest) (*domain.Role, error) {
	var c validation.Collector
	c.Required("name", req.Name)
	if err := c.Err(); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if err := s.ensureNameFree(ctx, name, 0); err != nil {
		return nil, err
	}

	permissions := req.Permissions
	if permissions == nil {
		permissions = []string{}
	}
	role := &domain.Role{
		ID:          s.genID.Generate(),
		Name:        name,
		Permissions: datatypes.NewJSONSlice(permissions),
	}
	if err := s.repo.Create(ctx, role); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, nameTaken(name)
		}
		return nil, err
	}
	return role, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Role, error) {
	items, err := s.repo.Find(ctx, option.ApplyOrder("id ASC"))
	if err != nil {
		return nil, err
	}
	roles := make([]domain.Role, 0, len(items))
	for _, item := range items {
		roles = append(roles, *item)
	}
	return roles, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*domain.Role, error) {
	if id == 0 {
		return nil, domain.ErrInvalidID
	}
	role, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, apperror.NotFound("Role")
	}
	return role, nil
}

func (s *Service) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	return s.repo.FindOne(ctx, option.ApplyWhere("name = ?", strings.TrimSpace(name)))
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req domain.UpdateRoleRequest) (*domain.Role, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	var c validation.Collector
	c.RequiredIfSet("name", req.Name)
	if err := c.Err(); err != nil {
		return nil, err
	}

	values := map[string]any{}
	if req.Name.Set {
		name := strings.TrimSpace(req.Name.Value)
		if err := s.ensureNameFree(ctx, name, id); err != nil {
			return nil, err
		}
		values["name"] = name
	}
	if req.Permissions.Set {
		permissions := req.Permissions.Value
		if permissions == nil {
			permissions = []string{}
		}
		values["permissions"] = datatypes.NewJSONSlice(permissions)
	}

	if err := s.repo.Update(ctx, id, values); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, nameTaken(req.Name.Value)
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	var holders int64
	if err := s.db.WithContext(ctx).Table("users").Where("role_id = ?", id).Count(&holders).Error; err != nil {
		return err
	}
	if holders > 0 {
		return domain.ErrRoleInUse
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) ensureNameFree(ctx context.Context, name string, self snowflake.ID) error {
	existing, err := s.FindByName(ctx, name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != self {
		return nameTaken(name)
	}
	return nil
}

func nameTaken(name string) error {
	return &apperror.ConflictError{Field: "name", Message: fmt.Sprintf("Role %q already exists", name)}
}
