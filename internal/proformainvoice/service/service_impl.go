package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tradedesk/internal/config"
	"github.com/smallbiznis/tradedesk/internal/document"
	"github.com/smallbiznis/tradedesk/internal/observability/metrics"
	"github.com/smallbiznis/tradedesk/internal/orgcontext"
	"github.com/smallbiznis/tradedesk/internal/proformainvoice/domain"
	"github.com/smallbiznis/tradedesk/internal/reference"
	"github.com/smallbiznis/tradedesk/pkg/apperror"
	"github.com/smallbiznis/tradedesk/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	documentType = "proforma_invoice"
	entity       = "Proforma invoice"
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
		log:       p.Log.Named("proformainvoice.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		validator: p.Validator,
		enricher:  p.Enricher,
		metrics:   p.Metrics,
		policies:  p.Policies,
		number:    document.PINumber.For(&domain.ProformaInvoice{}),
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (domain.ProformaInvoice, error) {
	scope, err := orgcontext.ResolveScope(ctx)
	if err != nil {
		return domain.ProformaInvoice{}, err
	}
	if err := req.Validate(); err != nil {
		return domain.ProformaInvoice{}, err
	}
	header, err := req.Header()
	if err != nil {
		return domain.ProformaInvoice{}, err
	}

	number := strings.TrimSpace(req.PINo)
	if err := document.EnsureUnique(ctx, s.db, s.number, number, ""); err != nil {
		return domain.ProformaInvoice{}, err
	}
	if err := document.ValidateReferences(ctx, s.db, s.validator, s.metrics, documentType, req.Checks()...); err != nil {
		return domain.ProformaInvoice{}, err
	}
	document.PrepareLines(req.ProductDetails)

	header.OrganizationID = scope.Owner()
	pi := domain.ProformaInvoice{ID: s.genID.Generate(), PINo: number, Header: header}

	var created *domain.ProformaInvoice
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&pi).Error; err != nil {
			return document.MapDuplicate(err, s.number, number)
		}
		if err := document.InsertChildren(ctx, tx, s.lines(req.ProductDetails), s.assignLine(pi.ID)); err != nil {
			return err
		}
		if err := document.InsertChildren(ctx, tx, s.containers(req.ContainerDetails), s.assignContainer(pi.ID)); err != nil {
			return err
		}
		var err error
		created, err = s.repo.FindByID(ctx, tx, pi.ID)
		return err
	})
	if err != nil {
		return domain.ProformaInvoice{}, err
	}
	if created == nil {
		return domain.ProformaInvoice{}, apperror.NotFound(entity)
	}

	s.metrics.RecordDocumentWrite(ctx, documentType, "create")
	s.log.Info("proforma invoice created",
		zap.String("proforma_invoice_id", pi.ID.String()),
		zap.String("pi_no", number),
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
		items = []domain.ProformaInvoice{}
	}
	return domain.ListResponse{Data: items, Meta: pagination.BuildMeta(page, total)}, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (domain.ProformaInvoiceDetail, error) {
	pi, err := s.find(ctx, id)
	if err != nil {
		return domain.ProformaInvoiceDetail{}, err
	}
	consignee, shipment, err := pi.Header.Enrich(ctx, s.enricher)
	if err != nil {
		return domain.ProformaInvoiceDetail{}, err
	}
	return domain.ProformaInvoiceDetail{ProformaInvoice: pi, ConsigneeDetails: consignee, ShipmentDetails: shipment}, nil
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req domain.UpdateRequest) (domain.ProformaInvoice, error) {
	existing, err := s.find(ctx, id)
	if err != nil {
		return domain.ProformaInvoice{}, err
	}
	if err := req.Validate(); err != nil {
		return domain.ProformaInvoice{}, err
	}

	values := map[string]any{}
	number := existing.PINo
	if req.PINo.Present() {
		number = strings.TrimSpace(req.PINo.Value)
		if err := document.EnsureUnique(ctx, s.db, s.number, number, existing.PINo); err != nil {
			return domain.ProformaInvoice{}, err
		}
		values["pi_no"] = number
	}
	checks, err := req.Apply(values)
	if err != nil {
		return domain.ProformaInvoice{}, err
	}

	var lines *[]domain.ProformaInvoiceProduct
	if req.ProductDetails != nil {
		document.PrepareLines(*req.ProductDetails)
		rows := s.lines(*req.ProductDetails)
		lines = &rows
	}
	var containers *[]domain.ProformaInvoiceContainer
	if req.ContainerDetails != nil {
		rows := s.containers(*req.ContainerDetails)
		containers = &rows
	}

	if err := document.ValidateReferences(ctx, s.db, s.validator, s.metrics, documentType, checks...); err != nil {
		return domain.ProformaInvoice{}, err
	}

	var updated *domain.ProformaInvoice
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := document.PatchHeader(ctx, tx, &domain.ProformaInvoice{}, entity, id, req.Version, values); err != nil {
			return document.MapDuplicate(err, s.number, number)
		}
		if err := document.ReplaceChildren(ctx, tx, "proforma_invoice_id", id, lines, s.assignLine(id)); err != nil {
			return err
		}
		if err := document.ReplaceChildren(ctx, tx, "proforma_invoice_id", id, containers, s.assignContainer(id)); err != nil {
			return err
		}
		var err error
		updated, err = s.repo.FindByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return domain.ProformaInvoice{}, err
	}
	if updated == nil {
		return domain.ProformaInvoice{}, apperror.NotFound(entity)
	}

	s.metrics.RecordDocumentWrite(ctx, documentType, "update")
	s.log.Info("proforma invoice updated",
		zap.String("proforma_invoice_id", id.String()),
		zap.Int64("version", updated.Version),
	)
	return *updated, nil
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.ProformaInvoice{}).Error; err != nil {
		return err
	}
	s.metrics.RecordDocumentWrite(ctx, documentType, "delete")
	s.log.Info("proforma invoice deleted", zap.String("proforma_invoice_id", id.String()))
	return nil
}

func (s *Service) find(ctx context.Context, id snowflake.ID) (domain.ProformaInvoice, error) {
	if id == 0 {
		return domain.ProformaInvoice{}, document.ErrInvalidID
	}
	scope, err := orgcontext.ResolveScope(ctx)
	if err != nil {
		return domain.ProformaInvoice{}, err
	}
	pi, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.ProformaInvoice{}, err
	}
	if pi == nil {
		return domain.ProformaInvoice{}, apperror.NotFound(entity)
	}
	if err := scope.CheckAccess(pi.OrganizationID); err != nil {
		return domain.ProformaInvoice{}, err
	}
	return *pi, nil
}

func (s *Service) lines(values []document.LineValues) []domain.ProformaInvoiceProduct {
	rows := make([]domain.ProformaInvoiceProduct, 0, len(values))
	for _, v := range values {
		rows = append(rows, domain.ProformaInvoiceProduct{LineValues: v})
	}
	return rows
}

func (s *Service) containers(values []document.ContainerValues) []domain.ProformaInvoiceContainer {
	rows := make([]domain.ProformaInvoiceContainer, 0, len(values))
	for _, v := range values {
		rows = append(rows, domain.ProformaInvoiceContainer{ContainerValues: v})
	}
	return rows
}

func (s *Service) assignLine(piID snowflake.ID) func(*domain.ProformaInvoiceProduct) {
	return func(line *domain.ProformaInvoiceProduct) {
		line.ID = s.genID.Generate()
		line.ProformaInvoiceID = piID
	}
}

func (s *Service) assignContainer(piID snowflake.ID) func(*domain.ProformaInvoiceContainer) {
	return func(container *domain.ProformaInvoiceContainer) {
		container.ID = s.genID.Generate()
		container.ProformaInvoiceID = piID
	}
}
