package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tradedesk/internal/config"
	"github.com/smallbiznis/tradedesk/internal/document"
	"github.com/smallbiznis/tradedesk/internal/invoice/domain"
	"github.com/smallbiznis/tradedesk/internal/observability/metrics"
	"github.com/smallbiznis/tradedesk/internal/orgcontext"
	"github.com/smallbiznis/tradedesk/internal/reference"
	"github.com/smallbiznis/tradedesk/pkg/apperror"
	"github.com/smallbiznis/tradedesk/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	documentType = "invoice"
	entity       = "Invoice"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Repo      domain.Repository
	Validator *reference.Validator
	Enricher  *document.Enricher
	Metrics   *metrics.Metrics             `optional:"true"`
	Policies  *config.DocumentConfigHolder `optional:"true"`
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	repo      domain.Repository
	validator *reference.Validator
	enricher  *document.Enricher
	metrics   *metrics.Metrics
	policies  *config.DocumentConfigHolder
	number    document.Number
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("invoice.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		validator: p.Validator,
		enricher:  p.Enricher,
		metrics:   p.Metrics,
		policies:  p.Policies,
		number:    document.PINumber.For(&domain.Invoice{}),
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (domain.Invoice, error) {
	scope, err := orgcontext.ResolveScope(ctx)
	if err != nil {
		return domain.Invoice{}, err
	}
	if err := req.Validate(); err != nil {
		return domain.Invoice{}, err
	}
	header, err := req.Header()
	if err != nil {
		return domain.Invoice{}, err
	}

	number := strings.TrimSpace(req.PINo)
	if err := document.EnsureUnique(ctx, s.db, s.number, number, ""); err != nil {
		return domain.Invoice{}, err
	}
	if err := document.ValidateReferences(ctx, s.db, s.validator, s.metrics, documentType, req.Checks()...); err != nil {
		return domain.Invoice{}, err
	}
	document.PrepareLines(req.ProductDetails)

	header.OrganizationID = scope.Owner()
	invoice := domain.Invoice{
		ID:                s.genID.Generate(),
		PINo:              number,
		Header:            header,
		IsProformaInvoice: req.IsProformaInvoice != nil && *req.IsProformaInvoice,
	}

	var created *domain.Invoice
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&invoice).Error; err != nil {
			return document.MapDuplicate(err, s.number, number)
		}
		if err := document.InsertChildren(ctx, tx, s.lines(req.ProductDetails), s.assignLine(invoice.ID)); err != nil {
			return err
		}
		if err := document.InsertChildren(ctx, tx, s.containers(req.ContainerDetails), s.assignContainer(invoice.ID)); err != nil {
			return err
		}
		var err error
		created, err = s.repo.FindByID(ctx, tx, invoice.ID)
		return err
	})
	if err != nil {
		return domain.Invoice{}, err
	}
	if created == nil {
		return domain.Invoice{}, apperror.NotFound(entity)
	}

	s.metrics.RecordDocumentWrite(ctx, documentType, "create")
	s.log.Info("invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("pi_no", number),
		zap.Int("lines", len(req.ProductDetails)),
		zap.Int("containers", len(req.ContainerDetails)),
	)
	return *created, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	scope, err := orgcontext.ResolveScope(ctx)
	if err != nil {
		return domain.ListResponse{}, err
	}

	listing := s.policies.Get().Listing
	page := pagination.Pagination{Page: req.Page, Limit: req.Limit}.Normalize(listing.DefaultLimit, listing.MaxLimit)

	filter, err := req.Filter(page.Limit, page.Offset())
	if err != nil {
		return domain.ListResponse{}, err
	}
	filter.OrganizationID = scope.Owner()

	items, total, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return domain.ListResponse{}, err
	}
	if items == nil {
		items = []domain.Invoice{}
	}
	return domain.ListResponse{Data: items, Meta: pagination.BuildMeta(page, total)}, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (domain.InvoiceDetail, error) {
	invoice, err := s.find(ctx, id)
	if err != nil {
		return domain.InvoiceDetail{}, err
	}
	consignee, shipment, err := invoice.Header.Enrich(ctx, s.enricher)
	if err != nil {
		return domain.InvoiceDetail{}, err
	}
	return domain.InvoiceDetail{Invoice: invoice, ConsigneeDetails: consignee, ShipmentDetails: shipment}, nil
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req domain.UpdateRequest) (domain.Invoice, error) {
	existing, err := s.find(ctx, id)
	if err != nil {
		return domain.Invoice{}, err
	}
	if err := req.Validate(); err != nil {
		return domain.Invoice{}, err
	}

	values := map[string]any{}
	number := existing.PINo
	if req.PINo.Present() {
		number = strings.TrimSpace(req.PINo.Value)
		if err := document.EnsureUnique(ctx, s.db, s.number, number, existing.PINo); err != nil {
			return domain.Invoice{}, err
		}
		values["pi_no"] = number
	}
	checks, err := req.Apply(values)
	if err != nil {
		return domain.Invoice{}, err
	}
	if req.IsProformaInvoice != nil {
		values["is_proforma_invoice"] = *req.IsProformaInvoice
	}

	var lines *[]domain.InvoiceProduct
	if req.ProductDetails != nil {
		document.PrepareLines(*req.ProductDetails)
		rows := s.lines(*req.ProductDetails)
		lines = &rows
	}
	var containers *[]domain.InvoiceContainer
	if req.ContainerDetails != nil {
		rows := s.containers(*req.ContainerDetails)
		containers = &rows
	}

	if err := document.ValidateReferences(ctx, s.db, s.validator, s.metrics, documentType, checks...); err != nil {
		return domain.Invoice{}, err
	}

	var updated *domain.Invoice
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := document.PatchHeader(ctx, tx, &domain.Invoice{}, entity, id, req.Version, values); err != nil {
			return document.MapDuplicate(err, s.number, number)
		}
		if err := document.ReplaceChildren(ctx, tx, "invoice_id", id, lines, s.assignLine(id)); err != nil {
			return err
		}
		if err := document.ReplaceChildren(ctx, tx, "invoice_id", id, containers, s.assignContainer(id)); err != nil {
			return err
		}
		var err error
		updated, err = s.repo.FindByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return domain.Invoice{}, err
	}
	if updated == nil {
		return domain.Invoice{}, apperror.NotFound(entity)
	}

	s.metrics.RecordDocumentWrite(ctx, documentType, "update")
	s.log.Info("invoice updated",
		zap.String("invoice_id", id.String()),
		zap.Int64("version", updated.Version),
		zap.Bool("lines_replaced", lines != nil),
		zap.Bool("containers_replaced", containers != nil),
	)
	return *updated, nil
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Invoice{}).Error; err != nil {
		return err
	}
	s.metrics.RecordDocumentWrite(ctx, documentType, "delete")
	s.log.Info("invoice deleted", zap.String("invoice_id", id.String()))
	return nil
}

func (s *Service) find(ctx context.Context, id snowflake.ID) (domain.Invoice, error) {
	if id == 0 {
		return domain.Invoice{}, document.ErrInvalidID
	}
	scope, err := orgcontext.ResolveScope(ctx)
	if err != nil {
		return domain.Invoice{}, err
	}
	invoice, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Invoice{}, err
	}
	if invoice == nil {
		return domain.Invoice{}, apperror.NotFound(entity)
	}
	if err := scope.CheckAccess(invoice.OrganizationID); err != nil {
		return domain.Invoice{}, err
	}
	return *invoice, nil
}

func (s *Service) lines(values []document.LineValues) []domain.InvoiceProduct {
	rows := make([]domain.InvoiceProduct, 0, len(values))
	for _, v := range values {
		rows = append(rows, domain.InvoiceProduct{LineValues: v})
	}
	return rows
}

func (s *Service) containers(values []document.ContainerValues) []domain.InvoiceContainer {
	rows := make([]domain.InvoiceContainer, 0, len(values))
	for _, v := range values {
		rows = append(rows, domain.InvoiceContainer{ContainerValues: v})
	}
	return rows
}

func (s *Service) assignLine(invoiceID snowflake.ID) func(*domain.InvoiceProduct) {
	return func(line *domain.InvoiceProduct) {
		line.ID = s.genID.Generate()
		line.InvoiceID = invoiceID
	}
}

func (s *Service) assignContainer(invoiceID snowflake.ID) func(*domain.InvoiceContainer) {
	return func(container *domain.InvoiceContainer) {
		container.ID = s.genID.Generate()
		container.InvoiceID = invoiceID
	}
}
