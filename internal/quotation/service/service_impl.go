package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tradedesk/internal/clock"
	"github.com/smallbiznis/tradedesk/internal/config"
	"github.com/smallbiznis/tradedesk/internal/document"
	"github.com/smallbiznis/tradedesk/internal/observability/metrics"
	"github.com/smallbiznis/tradedesk/internal/orgcontext"
	"github.com/smallbiznis/tradedesk/internal/quotation/domain"
	"github.com/smallbiznis/tradedesk/internal/reference"
	"github.com/smallbiznis/tradedesk/pkg/apperror"
	"github.com/smallbiznis/tradedesk/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	documentType = "quotation"
	entity       = "Quotation"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Repo      domain.Repository
	Validator *reference.Validator
	Enricher  *document.Enricher
	Clock     clock.Clock                  `optional:"true"`
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
	clock     clock.Clock
	metrics   *metrics.Metrics
	policies  *config.DocumentConfigHolder
	number    document.Number
}

func New(p Params) domain.Service {
	clk := p.Clock
	if clk == nil {
		clk = clock.System()
	}
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("quotation.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		validator: p.Validator,
		enricher:  p.Enricher,
		clock:     clk,
		metrics:   p.Metrics,
		policies:  p.Policies,
		number:    document.QuotationNumber.For(&domain.Quotation{}),
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (domain.Quotation, error) {
	scope, err := orgcontext.ResolveScope(ctx)
	if err != nil {
		return domain.Quotation{}, err
	}
	if err := req.Validate(); err != nil {
		return domain.Quotation{}, err
	}
	date, err := document.ParseDatePtr("date", req.Date)
	if err != nil {
		return domain.Quotation{}, err
	}

	number := strings.TrimSpace(req.QuotationNumber)
	if err := document.EnsureUnique(ctx, s.db, s.number, number, ""); err != nil {
		return domain.Quotation{}, err
	}

	checks := consigneeChecks(*req.ConsigneeDetails)
	checks = append(checks, shipmentChecks(*req.ShipmentDetails)...)
	checks = append(checks, document.LineChecks(req.ProductDetails)...)
	if err := document.ValidateReferences(ctx, s.db, s.validator, s.metrics, documentType, checks...); err != nil {
		return domain.Quotation{}, err
	}
	document.PrepareLines(req.ProductDetails)

	quotation := domain.Quotation{
		ID:               s.genID.Generate(),
		QuotationNo:      number,
		Date:             date,
		ConsigneeDetails: datatypes.NewJSONType(*req.ConsigneeDetails),
		ShipmentDetails:  datatypes.NewJSONType(*req.ShipmentDetails),
		SalesBroker:      req.SalesBroker != nil && *req.SalesBroker,
		Remark:           req.Remark,
		OrganizationID:   scope.Owner(),
		Version:          1,
	}

	var created *domain.Quotation
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&quotation).Error; err != nil {
			return document.MapDuplicate(err, s.number, number)
		}
		if err := document.InsertChildren(ctx, tx, s.lines(req.ProductDetails), s.assign(quotation.ID)); err != nil {
			return err
		}
		var err error
		created, err = s.repo.FindByID(ctx, tx, quotation.ID)
		return err
	})
	if err != nil {
		return domain.Quotation{}, err
	}
	if created == nil {
		return domain.Quotation{}, apperror.NotFound(entity)
	}

	s.metrics.RecordDocumentWrite(ctx, documentType, "create")
	s.log.Info("quotation created",
		zap.String("quotation_id", quotation.ID.String()),
		zap.String("quotation_no", number),
		zap.Int("lines", len(req.ProductDetails)),
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

	filter := domain.ListFilter{
		OrganizationID: scope.Owner(),
		Search:         strings.TrimSpace(req.Search),
		Limit:          page.Limit,
		Offset:         page.Offset(),
	}

	items, total, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return domain.ListResponse{}, err
	}
	if items == nil {
		items = []domain.Quotation{}
	}
	return domain.ListResponse{Data: items, Meta: pagination.BuildMeta(page, total)}, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (domain.QuotationDetail, error) {
	quotation, err := s.find(ctx, id)
	if err != nil {
		return domain.QuotationDetail{}, err
	}
	return s.enrich(ctx, quotation)
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req domain.UpdateRequest) (domain.Quotation, error) {
	existing, err := s.find(ctx, id)
	if err != nil {
		return domain.Quotation{}, err
	}
	if err := req.Validate(); err != nil {
		return domain.Quotation{}, err
	}

	values := map[string]any{}
	var checks []reference.Check

	number := existing.QuotationNo
	if req.QuotationNumber.Present() {
		number = strings.TrimSpace(req.QuotationNumber.Value)
		if err := document.EnsureUnique(ctx, s.db, s.number, number, existing.QuotationNo); err != nil {
			return domain.Quotation{}, err
		}
		values["quotation_no"] = number
	}
	if err := document.ApplyDate(values, "date", "date", req.Date); err != nil {
		return domain.Quotation{}, err
	}
	if req.ConsigneeDetails.Present() {
		checks = append(checks, consigneeChecks(req.ConsigneeDetails.Value)...)
		values["consignee_details"] = datatypes.NewJSONType(req.ConsigneeDetails.Value)
	}
	if req.ShipmentDetails.Present() {
		checks = append(checks, shipmentChecks(req.ShipmentDetails.Value)...)
		values["shipment_details"] = datatypes.NewJSONType(req.ShipmentDetails.Value)
	}
	req.SalesBroker.Apply(values, "sales_broker")
	req.Remark.Apply(values, "remark")

	var lines *[]domain.QuotationProduct
	if req.ProductDetails != nil {
		checks = append(checks, document.LineChecks(*req.ProductDetails)...)
		document.PrepareLines(*req.ProductDetails)
		rows := s.lines(*req.ProductDetails)
		lines = &rows
	}

	if err := document.ValidateReferences(ctx, s.db, s.validator, s.metrics, documentType, checks...); err != nil {
		return domain.Quotation{}, err
	}

	var updated *domain.Quotation
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := document.PatchHeader(ctx, tx, &domain.Quotation{}, entity, id, req.Version, values); err != nil {
			return document.MapDuplicate(err, s.number, number)
		}
		if err := document.ReplaceChildren(ctx, tx, "quotation_id", id, lines, s.assign(id)); err != nil {
			return err
		}
		var err error
		updated, err = s.repo.FindByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return domain.Quotation{}, err
	}
	if updated == nil {
		return domain.Quotation{}, apperror.NotFound(entity)
	}

	s.metrics.RecordDocumentWrite(ctx, documentType, "update")
	s.log.Info("quotation updated",
		zap.String("quotation_id", id.String()),
		zap.Int64("version", updated.Version),
		zap.Bool("lines_replaced", lines != nil),
	)
	return *updated, nil
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Quotation{}).Error; err != nil {
		return err
	}
	s.metrics.RecordDocumentWrite(ctx, documentType, "delete")
	s.log.Info("quotation deleted", zap.String("quotation_id", id.String()))
	return nil
}

func (s *Service) NextNumber(ctx context.Context) (string, error) {
	now := s.clock.Now()
	count, err := s.repo.CountByPrefix(ctx, s.db, document.NumberPrefix(document.QuotationNumberTemplate, now))
	if err != nil {
		return "", err
	}
	return document.FormatNumber(document.QuotationNumberTemplate, now, count+1)
}

// find loads a live quotation the caller may see.
func (s *Service) find(ctx context.Context, id snowflake.ID) (domain.Quotation, error) {
	if id == 0 {
		return domain.Quotation{}, document.ErrInvalidID
	}
	scope, err := orgcontext.ResolveScope(ctx)
	if err != nil {
		return domain.Quotation{}, err
	}
	quotation, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Quotation{}, err
	}
	if quotation == nil {
		return domain.Quotation{}, apperror.NotFound(entity)
	}
	if err := scope.CheckAccess(quotation.OrganizationID); err != nil {
		return domain.Quotation{}, err
	}
	return *quotation, nil
}

func (s *Service) enrich(ctx context.Context, q domain.Quotation) (domain.QuotationDetail, error) {
	consignee := q.ConsigneeDetails.Data()
	shipment := q.ShipmentDetails.Data()
	detail := domain.QuotationDetail{
		Quotation:        q,
		ConsigneeDetails: domain.ConsigneeView{ConsigneeDetails: consignee},
		ShipmentDetails:  domain.ShipmentView{ShipmentDetails: shipment},
	}

	var err error
	cv := &detail.ConsigneeDetails
	if cv.Consignee, cv.ConsigneeAddress, err = s.enricher.Customer(ctx, consignee.ConsigneeID, consignee.ConsigneeAddressID); err != nil {
		return domain.QuotationDetail{}, err
	}
	if cv.NotifyParty, _, err = s.enricher.Customer(ctx, consignee.NotifyPartyID, nil); err != nil {
		return domain.QuotationDetail{}, err
	}
	if cv.OtherNotifyParty, _, err = s.enricher.Customer(ctx, consignee.OtherNotifyPartyID, nil); err != nil {
		return domain.QuotationDetail{}, err
	}
	if cv.Port, err = s.enricher.Port(ctx, consignee.PortID); err != nil {
		return domain.QuotationDetail{}, err
	}

	sv := &detail.ShipmentDetails
	if sv.Currency, err = s.enricher.Currency(ctx, shipment.CurrencyID); err != nil {
		return domain.QuotationDetail{}, err
	}
	if sv.Bank, err = s.enricher.Bank(ctx, shipment.BankID); err != nil {
		return domain.QuotationDetail{}, err
	}
	if sv.ShipmentTerm, err = s.enricher.ShipmentTerm(ctx, shipment.ShipmentTermID); err != nil {
		return domain.QuotationDetail{}, err
	}
	if sv.PaymentTerm, err = s.enricher.PaymentTerm(ctx, shipment.PaymentTermID); err != nil {
		return domain.QuotationDetail{}, err
	}
	if sv.Salesperson, err = s.enricher.Salesperson(ctx, shipment.SalespersonID); err != nil {
		return domain.QuotationDetail{}, err
	}
	return detail, nil
}

func (s *Service) lines(values []document.LineValues) []domain.QuotationProduct {
	rows := make([]domain.QuotationProduct, 0, len(values))
	for _, v := range values {
		rows = append(rows, domain.QuotationProduct{LineValues: v})
	}
	return rows
}

func (s *Service) assign(quotationID snowflake.ID) func(*domain.QuotationProduct) {
	return func(line *domain.QuotationProduct) {
		line.ID = s.genID.Generate()
		line.QuotationID = quotationID
	}
}

func consigneeChecks(d domain.ConsigneeDetails) []reference.Check {
	return []reference.Check{
		{Field: "consigneeDetails.consigneeId", Entity: reference.Customer, ID: d.ConsigneeID, Message: "Consignee customer not found"},
		{Field: "consigneeDetails.notifyPartyId", Entity: reference.Customer, ID: d.NotifyPartyID, Message: "Notify Party customer not found"},
		{Field: "consigneeDetails.otherNotifyPartyId", Entity: reference.Customer, ID: d.OtherNotifyPartyID, Message: "Other Notify Party customer not found"},
		{Field: "consigneeDetails.portId", Entity: reference.Port, ID: d.PortID, Message: "Port not found"},
	}
}

// shipmentChecks covers broker and direct quotations alike; both validate
// the same references.
func shipmentChecks(d domain.ShipmentDetails) []reference.Check {
	return []reference.Check{
		{Field: "shipmentDetails.currencyId", Entity: reference.Currency, ID: d.CurrencyID, Message: "Currency not found"},
		{Field: "shipmentDetails.bankId", Entity: reference.BankDetail, ID: d.BankID, Message: "Bank Detail not found"},
		{Field: "shipmentDetails.shipmentTermId", Entity: reference.ShipmentTerm, ID: d.ShipmentTermID, Message: "Shipment Term not found"},
		{Field: "shipmentDetails.paymentTermId", Entity: reference.PaymentTerm, ID: d.PaymentTermID, Message: "Payment Term not found"},
		{Field: "shipmentDetails.salespersonId", Entity: reference.User, ID: d.SalespersonID, Message: "Salesperson not found"},
	}
}
