package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tradedesk/internal/product/domain"
	"github.com/smallbiznis/tradedesk/pkg/validation"
)

var packageSearchColumns = []string{"units.order_unit"}

// PackageService exposes products as packages: a unit plus net and gross
// weight.
type PackageService struct {
	products *Service
}

func NewPackageService(p Params) domain.PackageService {
	return &PackageService{products: newService(p, "package.service")}
}

func (s *PackageService) Create(ctx context.Context, req domain.CreatePackageRequest) (*domain.Package, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.products.requireUnit(ctx, req.UnitID); err != nil {
		return nil, err
	}

	p := &domain.Product{
		ID:            s.products.genID.Generate(),
		UnitID:        req.UnitID,
		InventoryType: domain.DefaultInventoryType,
		NetWeight:     req.NetWeight,
		GrossWeight:   req.GrossWeight,
	}
	if err := s.products.repo.Create(ctx, s.products.db, p); err != nil {
		return nil, err
	}
	return s.Get(ctx, p.ID)
}

func (s *PackageService) List(ctx context.Context, req domain.ListRequest) (domain.ListResponse[domain.Package], error) {
	resp, err := s.products.list(ctx, req, packageSearchColumns)
	if err != nil {
		return domain.ListResponse[domain.Package]{}, err
	}
	data := make([]domain.Package, 0, len(resp.Data))
	for i := range resp.Data {
		data = append(data, domain.PackageFromProduct(&resp.Data[i]))
	}
	return domain.ListResponse[domain.Package]{Data: data, Meta: resp.Meta}, nil
}

func (s *PackageService) Get(ctx context.Context, id snowflake.ID) (*domain.Package, error) {
	item, err := s.products.find(ctx, id, "Package")
	if err != nil {
		return nil, err
	}
	pkg := domain.PackageFromProduct(item)
	return &pkg, nil
}

func (s *PackageService) Update(ctx context.Context, id snowflake.ID, req domain.UpdatePackageRequest) (*domain.Package, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	var c validation.Collector
	if req.UnitID.Set && (req.UnitID.Null || req.UnitID.Value == 0) {
		c.Add("unitId", validation.CodeRequired, "unitId is required")
	}
	if err := c.Err(); err != nil {
		return nil, err
	}
	if req.UnitID.Present() {
		if err := s.products.requireUnit(ctx, req.UnitID.Value); err != nil {
			return nil, err
		}
	}

	values := map[string]any{}
	req.UnitID.Apply(values, "unit_id")
	req.NetWeight.Apply(values, "net_weight")
	req.GrossWeight.Apply(values, "gross_weight")
	if err := s.products.repo.Update(ctx, s.products.db, id, values); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *PackageService) Delete(ctx context.Context, id snowflake.ID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.products.repo.Delete(ctx, s.products.db, id)
}
