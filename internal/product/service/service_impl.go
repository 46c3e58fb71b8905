package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tradedesk/internal/config"
	"github.com/smallbiznis/tradedesk/internal/product/domain"
	"github.com/smallbiznis/tradedesk/pkg/apperror"
	"github.com/smallbiznis/tradedesk/pkg/db/pagination"
	"github.com/smallbiznis/tradedesk/pkg/optional"
	"github.com/smallbiznis/tradedesk/pkg/validation"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var productSearchColumns = []string{"products.name", "products.hsn_sac", "products.product_tag"}

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
	repo     domain.Repository
	genID    *snowflake.Node
	policies *config.DocumentConfigHolder
}

func New(p Params) domain.Service {
	return newService(p, "product.service")
}

func newService(p Params, name string) *Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named(name),
		repo:     p.Repo,
		genID:    p.GenID,
		policies: p.Policies,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.requireUnit(ctx, req.UnitID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	inventoryType := domain.DefaultInventoryType
	if req.InventoryType != nil && strings.TrimSpace(*req.InventoryType) != "" {
		inventoryType = strings.TrimSpace(*req.InventoryType)
	}
	gst := 0.0
	if req.Gst != nil {
		gst = *req.Gst
	}

	p := &domain.Product{
		ID:              s.genID.Generate(),
		Name:            &name,
		HsnSac:          trimPtr(req.HsnSac),
		UnitID:          req.UnitID,
		Gst:             gst,
		Description:     req.Description,
		Image:           req.Image,
		InventoryType:   inventoryType,
		ProductTag:      trimPtr(req.ProductTag),
		NetWeight:       req.NetWeight,
		GrossWeight:     req.GrossWeight,
		DimensionLength: req.DimensionLength,
		DimensionWidth:  req.DimensionWidth,
		DimensionHeight: req.DimensionHeight,
		SellPrice:       req.SellPrice,
	}
	if len(req.Variants) > 0 {
		p.Variants = datatypes.NewJSONSlice(req.Variants)
	}
	if len(req.CustomFields) > 0 {
		p.CustomFields = datatypes.NewJSONSlice(req.CustomFields)
	}
	if len(req.Schemes) > 0 {
		p.Schemes = datatypes.NewJSONSlice(req.Schemes)
	}

	if err := s.repo.Create(ctx, s.db, p); err != nil {
		return nil, err
	}
	return s.Get(ctx, p.ID)
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (domain.ListResponse[domain.Product], error) {
	return s.list(ctx, req, productSearchColumns)
}

func (s *Service) list(ctx context.Context, req domain.ListRequest, columns []string) (domain.ListResponse[domain.Product], error) {
	listing := s.policies.Get().Listing
	page := pagination.Pagination{Page: req.Page, Limit: req.Limit}.Normalize(listing.DefaultLimit, listing.MaxLimit)

	items, total, err := s.repo.List(ctx, s.db, domain.Filter{
		Search:        req.Search,
		SearchColumns: columns,
		Limit:         page.Limit,
		Offset:        page.Offset(),
	})
	if err != nil {
		return domain.ListResponse[domain.Product]{}, err
	}
	if items == nil {
		items = []domain.Product{}
	}
	return domain.ListResponse[domain.Product]{Data: items, Meta: pagination.BuildMeta(page, total)}, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*domain.Product, error) {
	return s.find(ctx, id, "Product")
}

func (s *Service) find(ctx context.Context, id snowflake.ID, entity string) (*domain.Product, error) {
	if id == 0 {
		return nil, domain.ErrInvalidID
	}
	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NotFound(entity)
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req domain.UpdateRequest) (*domain.Product, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	var c validation.Collector
	c.RequiredIfSet("name", req.Name)
	if req.UnitID.Set && (req.UnitID.Null || req.UnitID.Value == 0) {
		c.Add("unitId", validation.CodeRequired, "unitId is required")
	}
	if req.Gst.Set && req.Gst.Null {
		c.Add("gst", validation.CodeInvalid, "gst must be a number")
	}
	if err := c.Err(); err != nil {
		return nil, err
	}
	if req.UnitID.Present() {
		if err := s.requireUnit(ctx, req.UnitID.Value); err != nil {
			return nil, err
		}
	}

	values := map[string]any{}
	req.Name.Apply(values, "name")
	req.HsnSac.Apply(values, "hsn_sac")
	req.UnitID.Apply(values, "unit_id")
	req.Gst.Apply(values, "gst")
	req.Description.Apply(values, "description")
	req.Image.Apply(values, "image")
	req.ProductTag.Apply(values, "product_tag")
	req.NetWeight.Apply(values, "net_weight")
	req.GrossWeight.Apply(values, "gross_weight")
	req.DimensionLength.Apply(values, "dimension_length")
	req.DimensionWidth.Apply(values, "dimension_width")
	req.DimensionHeight.Apply(values, "dimension_height")
	req.SellPrice.Apply(values, "sell_price")
	if req.InventoryType.Set {
		inventoryType := strings.TrimSpace(req.InventoryType.Value)
		if req.InventoryType.Null || inventoryType == "" {
			inventoryType = domain.DefaultInventoryType
		}
		values["inventory_type"] = inventoryType
	}
	applyJSON(values, "variants", req.Variants)
	applyJSON(values, "custom_fields", req.CustomFields)
	applyJSON(values, "schemes", req.Schemes)

	if err := s.repo.Update(ctx, s.db, id, values); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, id)
}

func (s *Service) requireUnit(ctx context.Context, unitID snowflake.ID) error {
	ok, err := s.repo.UnitExists(ctx, s.db, unitID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrUnitUnavailable
	}
	return nil
}

func applyJSON(values map[string]any, column string, v optional.Value[[]map[string]any]) {
	if !v.Set {
		return
	}
	if v.Null {
		values[column] = nil
		return
	}
	values[column] = datatypes.NewJSONSlice(v.Value)
}

func trimPtr(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}
