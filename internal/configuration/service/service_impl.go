package service

import (
	"context"
	"maps"
	"slices"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tradedesk/internal/configuration/domain"
	"github.com/smallbiznis/tradedesk/internal/orgcontext"
	"github.com/smallbiznis/tradedesk/pkg/apperror"
	"github.com/smallbiznis/tradedesk/pkg/db"
	"github.com/smallbiznis/tradedesk/pkg/db/option"
	"github.com/smallbiznis/tradedesk/pkg/optional"
	"github.com/smallbiznis/tradedesk/pkg/repository"
	"github.com/smallbiznis/tradedesk/pkg/validation"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	internationalEntity = "International invoice configuration"
	domesticEntity      = "Domestic invoice configuration"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	log           *zap.Logger
	genID         *snowflake.Node
	international keyed[domain.InternationalInvoiceConfiguration]
	domestic      keyed[domain.DomesticInvoiceConfiguration]
}

func New(p Params) domain.Service {
	return &Service{
		log:           p.Log.Named("configuration.service"),
		genID:         p.GenID,
		international: keyed[domain.InternationalInvoiceConfiguration]{repo: repository.ProvideStore[domain.InternationalInvoiceConfiguration](p.DB), entity: internationalEntity},
		domestic:      keyed[domain.DomesticInvoiceConfiguration]{repo: repository.ProvideStore[domain.DomesticInvoiceConfiguration](p.DB), entity: domesticEntity},
	}
}

func (s *Service) CreateInternational(ctx context.Context, req domain.CreateInternationalRequest) (*domain.InternationalInvoiceConfiguration, error) {
	owner, err := owner(ctx)
	if err != nil {
		return nil, err
	}
	if err := nonNegative(map[string]*int64{
		"invoiceStartFrom":   req.InvoiceStartFrom,
		"piStartFrom":        req.PiStartFrom,
		"quotationStartFrom": req.QuotationStartFrom,
		"poStartFrom":        req.PoStartFrom,
		"servicePoStartFrom": req.ServicePoStartFrom,
	}); err != nil {
		return nil, err
	}

	cfg := &domain.InternationalInvoiceConfiguration{
		ID:                          s.genID.Generate(),
		OrganizationID:              owner,
		PinCode:                     req.PinCode,
		DeclarationExport:           req.DeclarationExport,
		DeclarationDomestic:         req.DeclarationDomestic,
		InvoiceSeriesSettingBasedOn: orDefault(req.InvoiceSeriesSettingBasedOn, domain.DefaultInvoiceSeriesBasedOn),
		PiSeriesSettingBasedOn:      orDefault(req.PiSeriesSettingBasedOn, domain.DefaultPISeriesBasedOn),
		InvoicePrefix:               req.InvoicePrefix,
		InvoiceStartFrom:            orZero(req.InvoiceStartFrom),
		InvoiceSuffix:               req.InvoiceSuffix,
		PiPrefix:                    req.PiPrefix,
		PiStartFrom:                 orZero(req.PiStartFrom),
		PiSuffix:                    req.PiSuffix,
		QuotationPrefix:             req.QuotationPrefix,
		QuotationStartFrom:          orZero(req.QuotationStartFrom),
		QuotationSuffix:             req.QuotationSuffix,
		PoPrefix:                    req.PoPrefix,
		PoStartFrom:                 orZero(req.PoStartFrom),
		PoSuffix:                    req.PoSuffix,
		ServicePoPrefix:             req.ServicePoPrefix,
		ServicePoStartFrom:          orZero(req.ServicePoStartFrom),
		ServicePoSuffix:             req.ServicePoSuffix,
		PiInvoiceNoEditing:          req.PiInvoiceNoEditing == nil || *req.PiInvoiceNoEditing,
	}
	if err := s.international.create(ctx, owner, cfg); err != nil {
		return nil, err
	}
	s.log.Info("international invoice configuration created", zap.String("configuration_id", cfg.ID.String()))
	return cfg, nil
}

func (s *Service) GetInternational(ctx context.Context) (*domain.InternationalInvoiceConfiguration, error) {
	owner, err := owner(ctx)
	if err != nil {
		return nil, err
	}
	return s.international.get(ctx, owner)
}

func (s *Service) UpdateInternational(ctx context.Context, req domain.UpdateInternationalRequest) (*domain.InternationalInvoiceConfiguration, error) {
	owner, err := owner(ctx)
	if err != nil {
		return nil, err
	}

	var c validation.Collector
	c.RequiredIfSet("invoiceSeriesSettingBasedOn", req.InvoiceSeriesSettingBasedOn)
	c.RequiredIfSet("piSeriesSettingBasedOn", req.PiSeriesSettingBasedOn)
	counter(&c, "invoiceStartFrom", req.InvoiceStartFrom)
	counter(&c, "piStartFrom", req.PiStartFrom)
	counter(&c, "quotationStartFrom", req.QuotationStartFrom)
	counter(&c, "poStartFrom", req.PoStartFrom)
	counter(&c, "servicePoStartFrom", req.ServicePoStartFrom)
	if req.PiInvoiceNoEditing.Set && req.PiInvoiceNoEditing.Null {
		c.Add("piInvoiceNoEditing", validation.CodeInvalid, "piInvoiceNoEditing must be a boolean value")
	}
	if err := c.Err(); err != nil {
		return nil, err
	}

	values := map[string]any{}
	req.PinCode.Apply(values, "pin_code")
	req.DeclarationExport.Apply(values, "declaration_export")
	req.DeclarationDomestic.Apply(values, "declaration_domestic")
	req.InvoiceSeriesSettingBasedOn.Apply(values, "invoice_series_setting_based_on")
	req.PiSeriesSettingBasedOn.Apply(values, "pi_series_setting_based_on")
	req.InvoicePrefix.Apply(values, "invoice_prefix")
	req.InvoiceStartFrom.Apply(values, "invoice_start_from")
	req.InvoiceSuffix.Apply(values, "invoice_suffix")
	req.PiPrefix.Apply(values, "pi_prefix")
	req.PiStartFrom.Apply(values, "pi_start_from")
	req.PiSuffix.Apply(values, "pi_suffix")
	req.QuotationPrefix.Apply(values, "quotation_prefix")
	req.QuotationStartFrom.Apply(values, "quotation_start_from")
	req.QuotationSuffix.Apply(values, "quotation_suffix")
	req.PoPrefix.Apply(values, "po_prefix")
	req.PoStartFrom.Apply(values, "po_start_from")
	req.PoSuffix.Apply(values, "po_suffix")
	req.ServicePoPrefix.Apply(values, "service_po_prefix")
	req.ServicePoStartFrom.Apply(values, "service_po_start_from")
	req.ServicePoSuffix.Apply(values, "service_po_suffix")
	req.PiInvoiceNoEditing.Apply(values, "pi_invoice_no_editing")

	return s.international.update(ctx, owner, values)
}

func (s *Service) CreateDomestic(ctx context.Context, req domain.CreateDomesticRequest) (*domain.DomesticInvoiceConfiguration, error) {
	owner, err := owner(ctx)
	if err != nil {
		return nil, err
	}
	if err := nonNegative(map[string]*int64{
		"domesticInvoiceStartFrom": req.DomesticInvoiceStartFrom,
		"domesticPiStartFrom":      req.DomesticPiStartFrom,
	}); err != nil {
		return nil, err
	}

	cfg := &domain.DomesticInvoiceConfiguration{
		ID:                       s.genID.Generate(),
		OrganizationID:           owner,
		DomesticInvoicePrefix:    req.DomesticInvoicePrefix,
		DomesticInvoiceStartFrom: orZero(req.DomesticInvoiceStartFrom),
		DomesticInvoiceSuffix:    req.DomesticInvoiceSuffix,
		DomesticPiPrefix:         req.DomesticPiPrefix,
		DomesticPiStartFrom:      orZero(req.DomesticPiStartFrom),
		DomesticPiSuffix:         req.DomesticPiSuffix,
	}
	if err := s.domestic.create(ctx, owner, cfg); err != nil {
		return nil, err
	}
	s.log.Info("domestic invoice configuration created", zap.String("configuration_id", cfg.ID.String()))
	return cfg, nil
}

func (s *Service) GetDomestic(ctx context.Context) (*domain.DomesticInvoiceConfiguration, error) {
	owner, err := owner(ctx)
	if err != nil {
		return nil, err
	}
	return s.domestic.get(ctx, owner)
}

func (s *Service) UpdateDomestic(ctx context.Context, req domain.UpdateDomesticRequest) (*domain.DomesticInvoiceConfiguration, error) {
	owner, err := owner(ctx)
	if err != nil {
		return nil, err
	}

	var c validation.Collector
	counter(&c, "domesticInvoiceStartFrom", req.DomesticInvoiceStartFrom)
	counter(&c, "domesticPiStartFrom", req.DomesticPiStartFrom)
	if err := c.Err(); err != nil {
		return nil, err
	}

	values := map[string]any{}
	req.DomesticInvoicePrefix.Apply(values, "domestic_invoice_prefix")
	req.DomesticInvoiceStartFrom.Apply(values, "domestic_invoice_start_from")
	req.DomesticInvoiceSuffix.Apply(values, "domestic_invoice_suffix")
	req.DomesticPiPrefix.Apply(values, "domestic_pi_prefix")
	req.DomesticPiStartFrom.Apply(values, "domestic_pi_start_from")
	req.DomesticPiSuffix.Apply(values, "domestic_pi_suffix")

	return s.domestic.update(ctx, owner, values)
}

// keyed stores at most one row of T per organization.
type keyed[T any] struct {
	repo   repository.Repository[T]
	entity string
}

func (k keyed[T]) where(owner *snowflake.ID) option.QueryOption {
	if owner == nil {
		return option.ApplyWhere("organization_id IS NULL")
	}
	return option.ApplyWhere("organization_id = ?", *owner)
}

func (k keyed[T]) get(ctx context.Context, owner *snowflake.ID) (*T, error) {
	row, err := k.repo.FindOne(ctx, k.where(owner))
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, apperror.NotFound(k.entity)
	}
	return row, nil
}

func (k keyed[T]) create(ctx context.Context, owner *snowflake.ID, row *T) error {
	existing, err := k.repo.Count(ctx, k.where(owner))
	if err != nil {
		return err
	}
	if existing > 0 {
		return k.exists()
	}
	if err := k.repo.Create(ctx, row); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return k.exists()
		}
		return err
	}
	return nil
}

func (k keyed[T]) update(ctx context.Context, owner *snowflake.ID, values map[string]any) (*T, error) {
	if _, err := k.get(ctx, owner); err != nil {
		return nil, err
	}
	query, args := "organization_id IS NULL", []any(nil)
	if owner != nil {
		query, args = "organization_id = ?", []any{*owner}
	}
	if err := k.repo.UpdateWhere(ctx, values, query, args...); err != nil {
		return nil, err
	}
	return k.get(ctx, owner)
}

func (k keyed[T]) exists() error {
	return &apperror.ConflictError{
		Field:   "organizationId",
		Message: k.entity + " already exists. Use update endpoint to modify it.",
	}
}

func owner(ctx context.Context) (*snowflake.ID, error) {
	scope, err := orgcontext.ResolveScope(ctx)
	if err != nil {
		return nil, err
	}
	return scope.Owner(), nil
}

func counter(c *validation.Collector, field string, v optional.Value[int64]) {
	if !v.Set {
		return
	}
	if v.Null {
		c.Add(field, validation.CodeInvalid, field+" must be an integer number")
		return
	}
	if v.Value < 0 {
		c.Add(field, validation.CodeInvalid, field+" must not be less than 0")
	}
}

func nonNegative(fields map[string]*int64) error {
	var c validation.Collector
	for _, field := range slices.Sorted(maps.Keys(fields)) {
		if v := fields[field]; v != nil && *v < 0 {
			c.Add(field, validation.CodeInvalid, field+" must not be less than 0")
		}
	}
	return c.Err()
}

func orDefault(v *string, def string) string {
	if v == nil || *v == "" {
		return def
	}
	return *v
}

func orZero(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
