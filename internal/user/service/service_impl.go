package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tradedesk/internal/auth/password"
	"github.com/smallbiznis/tradedesk/internal/config"
	"github.com/smallbiznis/tradedesk/internal/orgcontext"
	roledomain "github.com/smallbiznis/tradedesk/internal/role/domain"
	"github.com/smallbiznis/tradedesk/internal/user/domain"
	"github.com/smallbiznis/tradedesk/pkg/apperror"
	"github.com/smallbiznis/tradedesk/pkg/db"
	"github.com/smallbiznis/tradedesk/pkg/db/option"
	"github.com/smallbiznis/tradedesk/pkg/db/pagination"
	"github.com/smallbiznis/tradedesk/pkg/repository"
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
	Roles    roledomain.Service
	Policies *config.DocumentConfigHolder `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	roles    roledomain.Service
	policies *config.DocumentConfigHolder
	repo     repository.Repository[domain.User]
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("user.service"),
		genID:    p.GenID,
		roles:    p.Roles,
		policies: p.Policies,
		repo:     repository.ProvideStore[domain.User](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	email := normalizeEmail(req.Email)

	var c validation.Collector
	c.Required("name", req.Name)
	c.Required("password", req.Password)
	if !validEmail(email) {
		c.Add("email", validation.CodeInvalid, "email must be an email")
	}
	if req.RoleID == 0 {
		c.Add("roleId", validation.CodeRequired, "roleId is required")
	}
	if err := c.Err(); err != nil {
		return nil, err
	}

	role, err := s.role(ctx, req.RoleID)
	if err != nil {
		return nil, err
	}

	orgID := req.OrganizationID
	if orgID != nil && *orgID == 0 {
		orgID = nil
	}
	if orgID == nil && role.Name != orgcontext.SuperAdminRole {
		if callerOrg, ok := orgcontext.OrgIDFromContext(ctx); ok {
			orgID = &callerOrg
		} else {
			return nil, validation.New("organizationId", validation.CodeRequired, "organizationId is required for non Super Admin users")
		}
	}

	if err := s.ensureEmailFree(ctx, email, 0); err != nil {
		return nil, err
	}
	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:             s.genID.Generate(),
		Name:           strings.TrimSpace(req.Name),
		Email:          email,
		PasswordHash:   hash,
		Mobile:         req.Mobile,
		RoleID:         role.ID,
		OrganizationID: orgID,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, emailTaken(email)
		}
		return nil, err
	}
	s.log.Info("user created", zap.String("user_id", user.ID.String()), zap.String("role", role.Name))
	return s.Get(ctx, user.ID)
}

func (s *Service) List(ctx context.Context, req domain.ListUserRequest) (domain.ListUserResponse, error) {
	scope, err := orgcontext.ResolveScope(ctx)
	if err != nil {
		return domain.ListUserResponse{}, err
	}

	listing := s.policies.Get().Listing
	page := pagination.Pagination{Page: req.Page, Limit: req.Limit}.Normalize(listing.DefaultLimit, listing.MaxLimit)

	opts := []option.QueryOption{option.ApplySearch(req.Search, "name", "email")}
	if !scope.Unrestricted {
		opts = append(opts, option.ApplyWhere("organization_id = ?", scope.OrganizationID))
	}
	if req.RoleID != nil {
		opts = append(opts, option.ApplyWhere("role_id = ?", *req.RoleID))
	}
	if req.CreatedFrom != nil {
		opts = append(opts, option.ApplyWhere("created_at >= ?", *req.CreatedFrom))
	}
	if req.CreatedTo != nil {
		opts = append(opts, option.ApplyWhere("created_at <= ?", *req.CreatedTo))
	}

	total, err := s.repo.Count(ctx, opts...)
	if err != nil {
		return domain.ListUserResponse{}, err
	}
	items, err := s.repo.Find(ctx, append(opts,
		option.ApplyPreload("Role"),
		option.ApplyOrder("created_at DESC"),
		option.ApplyPagination(page.Limit, page.Offset()),
	)...)
	if err != nil {
		return domain.ListUserResponse{}, err
	}

	users := make([]domain.User, 0, len(items))
	for _, item := range items {
		users = append(users, *item)
	}
	return domain.ListUserResponse{Data: users, Meta: pagination.BuildMeta(page, total)}, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*domain.User, error) {
	if id == 0 {
		return nil, domain.ErrInvalidID
	}
	user, err := s.repo.FindByID(ctx, id, option.ApplyPreload("Role"))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("User")
	}
	return user, nil
}

func (s *Service) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.FindOne(ctx,
		option.ApplyWhere("email = ?", normalizeEmail(email)),
		option.ApplyPreload("Role"),
	)
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req domain.UpdateUserRequest) (*domain.User, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	var c validation.Collector
	c.RequiredIfSet("name", req.Name)
	if req.Email.Set && (req.Email.Null || !validEmail(normalizeEmail(req.Email.Value))) {
		c.Add("email", validation.CodeInvalid, "email must be an email")
	}
	if req.Password.Set {
		c.RequiredIfSet("password", req.Password)
	}
	if req.RoleID.Set && (req.RoleID.Null || req.RoleID.Value == 0) {
		c.Add("roleId", validation.CodeRequired, "roleId is required")
	}
	if err := c.Err(); err != nil {
		return nil, err
	}

	values := map[string]any{}
	req.Name.Apply(values, "name")
	req.Mobile.Apply(values, "mobile")
	req.OrganizationID.Apply(values, "organization_id")
	if req.Email.Set {
		email := normalizeEmail(req.Email.Value)
		if err := s.ensureEmailFree(ctx, email, id); err != nil {
			return nil, err
		}
		values["email"] = email
	}
	if req.RoleID.Set {
		role, err := s.role(ctx, req.RoleID.Value)
		if err != nil {
			return nil, err
		}
		values["role_id"] = role.ID
	}
	if req.Password.Present() {
		hash, err := password.Hash(req.Password.Value)
		if err != nil {
			return nil, err
		}
		values["password"] = hash
	}

	if err := s.repo.Update(ctx, id, values); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, emailTaken(req.Email.Value)
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) role(ctx context.Context, id snowflake.ID) (*roledomain.Role, error) {
	role, err := s.roles.Get(ctx, id)
	if err != nil {
		var notFound *apperror.NotFoundError
		if errors.As(err, &notFound) {
			return nil, validation.New("roleId", "reference_not_found", "Role not found")
		}
		return nil, err
	}
	return role, nil
}

func (s *Service) ensureEmailFree(ctx context.Context, email string, self snowflake.ID) error {
	existing, err := s.repo.FindOne(ctx, option.ApplyWhere("email = ?", email))
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != self {
		return emailTaken(email)
	}
	return nil
}

func emailTaken(email string) error {
	return &apperror.ConflictError{Field: "email", Message: fmt.Sprintf("Email %q already exists", email)}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}
