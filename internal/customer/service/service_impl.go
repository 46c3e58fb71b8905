package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tradedesk/internal/config"
	"github.com/smallbiznis/tradedesk/internal/customer/domain"
	"github.com/smallbiznis/tradedesk/internal/orgcontext"
	"github.com/smallbiznis/tradedesk/pkg/apperror"
	"github.com/smallbiznis/tradedesk/pkg/db/pagination"
	"github.com/smallbiznis/tradedesk/pkg/validation"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
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

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	policies *config.DocumentConfigHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("customer.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		policies: p.Policies,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCustomerRequest) (domain.Customer, error) {
	identity, ok := orgcontext.IdentityFromContext(ctx)
	if !ok {
		return domain.Customer{}, orgcontext.ErrUnauthenticated
	}

	// Super Admin may file a customer under any organization.
	orgID := identity.OrganizationID
	if identity.IsSuperAdmin() {
		if req.OrganizationID != nil && *req.OrganizationID != 0 {
			orgID = req.OrganizationID
		}
	} else if orgID == nil {
		return domain.Customer{}, &orgcontext.ForbiddenError{Message: orgcontext.MessageOrganizationRequired}
	}

	var c validation.Collector
	c.Required("customerName", req.CustomerName)
	c.Required("country", req.Country)
	c.Required("address", req.Address)
	if req.Email != nil && !validEmail(*req.Email) {
		c.Add("email", validation.CodeInvalid, "email must be an email")
	}
	if err := c.Err(); err != nil {
		return domain.Customer{}, err
	}

	managerID := identity.UserID
	customer := domain.Customer{
		ID:              s.genID.Generate(),
		CustomerName:    strings.TrimSpace(req.CustomerName),
		Email:           trimPtr(req.Email),
		Country:         strings.TrimSpace(req.Country),
		Company:         trimPtr(req.Company),
		Address:         strings.TrimSpace(req.Address),
		BankName:        req.BankName,
		BeneficiaryName: req.BeneficiaryName,
		AccountType:     req.AccountType,
		Other:           req.Other,
		OrganizationID:  orgID,
		ManagerID:       &managerID,
	}
	if req.AccountNo != nil {
		accountNo := req.AccountNo.String()
		customer.AccountNo = &accountNo
	}
	if len(req.Addresses) > 0 {
		customer.Addresses = datatypes.NewJSONSlice(req.Addresses)
	}

	if err := s.repo.Insert(ctx, s.db, &customer); err != nil {
		return domain.Customer{}, err
	}
	s.log.Info("customer created",
		zap.String("customer_id", customer.ID.String()),
		zap.String("manager_id", managerID.String()),
	)
	return customer, nil
}

func (s *Service) List(ctx context.Context, req domain.ListCustomerRequest) (domain.ListCustomerResponse, error) {
	scope, err := orgcontext.ResolveScope(ctx)
	if err != nil {
		return domain.ListCustomerResponse{}, err
	}

	listing := s.policies.Get().Listing
	page := pagination.Pagination{Page: req.Page, Limit: req.Limit}.Normalize(listing.DefaultLimit, listing.MaxLimit)

	filter := domain.ListCustomerFilter{
		Search: strings.TrimSpace(req.Search),
		Limit:  page.Limit,
		Offset: page.Offset(),
	}
	if !scope.Unrestricted {
		orgID := scope.OrganizationID
		filter.OrganizationID = &orgID
	}

	items, total, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return domain.ListCustomerResponse{}, err
	}

	customers := make([]domain.Customer, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		customers = append(customers, *item)
	}

	return domain.ListCustomerResponse{
		Data: customers,
		Meta: pagination.BuildMeta(page, total),
	}, nil
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (domain.Customer, error) {
	if id == 0 {
		return domain.Customer{}, domain.ErrInvalidID
	}
	identity, ok := orgcontext.IdentityFromContext(ctx)
	if !ok {
		return domain.Customer{}, orgcontext.ErrUnauthenticated
	}

	customer, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Customer{}, err
	}
	if customer == nil {
		return domain.Customer{}, apperror.NotFound("Customer")
	}

	if !identity.IsSuperAdmin() {
		if identity.OrganizationID == nil || customer.OrganizationID == nil || *customer.OrganizationID != *identity.OrganizationID {
			return domain.Customer{}, &orgcontext.ForbiddenError{Message: orgcontext.MessageAccessDenied}
		}
	}
	return *customer, nil
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req domain.UpdateCustomerRequest) (domain.Customer, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return domain.Customer{}, err
	}

	var c validation.Collector
	c.RequiredIfSet("customerName", req.CustomerName)
	c.RequiredIfSet("country", req.Country)
	c.RequiredIfSet("address", req.Address)
	if req.Email.Present() && !validEmail(req.Email.Value) {
		c.Add("email", validation.CodeInvalid, "email must be an email")
	}
	if err := c.Err(); err != nil {
		return domain.Customer{}, err
	}

	values := map[string]any{}
	req.CustomerName.Apply(values, "customer_name")
	req.Email.Apply(values, "email")
	req.Country.Apply(values, "country")
	req.Company.Apply(values, "company")
	req.Address.Apply(values, "address")
	req.BankName.Apply(values, "bank_name")
	req.BeneficiaryName.Apply(values, "beneficiary_name")
	req.AccountType.Apply(values, "account_type")
	req.Other.Apply(values, "other")
	if req.AccountNo.Set {
		if req.AccountNo.Null {
			values["account_no"] = nil
		} else {
			values["account_no"] = req.AccountNo.Value.String()
		}
	}
	if req.Addresses.Set {
		if req.Addresses.Null {
			values["addresses"] = nil
		} else {
			values["addresses"] = datatypes.NewJSONSlice(req.Addresses.Value)
		}
	}

	if err := s.repo.Update(ctx, s.db, id, values); err != nil {
		return domain.Customer{}, err
	}
	return s.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, id)
}

func trimPtr(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}

func validEmail(email string) bool {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}
