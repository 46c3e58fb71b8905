package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tradedesk/pkg/db/pagination"
	"github.com/smallbiznis/tradedesk/pkg/optional"
	"github.com/smallbiznis/tradedesk/pkg/validation"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Product, error)
	List(ctx context.Context, req ListRequest) (ListResponse[Product], error)
	Get(ctx context.Context, id snowflake.ID) (*Product, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateRequest) (*Product, error)
	Delete(ctx context.Context, id snowflake.ID) error
}

type PackageService interface {
	Create(ctx context.Context, req CreatePackageRequest) (*Package, error)
	List(ctx context.Context, req ListRequest) (ListResponse[Package], error)
	Get(ctx context.Context, id snowflake.ID) (*Package, error)
	Update(ctx context.Context, id snowflake.ID, req UpdatePackageRequest) (*Package, error)
	Delete(ctx context.Context, id snowflake.ID) error
}

type ListRequest struct {
	Page   int
	Limit  int
	Search string
}

type ListResponse[T any] struct {
	Data []T             `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

type CreateRequest struct {
	Name            string           `json:"name"`
	HsnSac          *string          `json:"hsnSac"`
	UnitID          snowflake.ID     `json:"unitId"`
	Gst             *float64         `json:"gst"`
	Description     *string          `json:"description"`
	Image           *string          `json:"image"`
	InventoryType   *string          `json:"inventoryType"`
	ProductTag      *string          `json:"productTag"`
	NetWeight       *float64         `json:"netWeight"`
	GrossWeight     *float64         `json:"grossWeight"`
	DimensionLength *float64         `json:"dimensionLength"`
	DimensionWidth  *float64         `json:"dimensionWidth"`
	DimensionHeight *float64         `json:"dimensionHeight"`
	SellPrice       *float64         `json:"sellPrice"`
	Variants        []map[string]any `json:"variants"`
	CustomFields    []map[string]any `json:"customFields"`
	Schemes         []map[string]any `json:"schemes"`
}

func (r CreateRequest) Validate() error {
	var c validation.Collector
	c.Required("name", r.Name)
	if r.UnitID == 0 {
		c.Add("unitId", validation.CodeRequired, "unitId is required")
	}
	return c.Err()
}

type UpdateRequest struct {
	Name            optional.Value[string]           `json:"name"`
	HsnSac          optional.Value[string]           `json:"hsnSac"`
	UnitID          optional.Value[snowflake.ID]     `json:"unitId"`
	Gst             optional.Value[float64]          `json:"gst"`
	Description     optional.Value[string]           `json:"description"`
	Image           optional.Value[string]           `json:"image"`
	InventoryType   optional.Value[string]           `json:"inventoryType"`
	ProductTag      optional.Value[string]           `json:"productTag"`
	NetWeight       optional.Value[float64]          `json:"netWeight"`
	GrossWeight     optional.Value[float64]          `json:"grossWeight"`
	DimensionLength optional.Value[float64]          `json:"dimensionLength"`
	DimensionWidth  optional.Value[float64]          `json:"dimensionWidth"`
	DimensionHeight optional.Value[float64]          `json:"dimensionHeight"`
	SellPrice       optional.Value[float64]          `json:"sellPrice"`
	Variants        optional.Value[[]map[string]any] `json:"variants"`
	CustomFields    optional.Value[[]map[string]any] `json:"customFields"`
	Schemes         optional.Value[[]map[string]any] `json:"schemes"`
}

type CreatePackageRequest struct {
	UnitID      snowflake.ID `json:"unitId"`
	NetWeight   *float64     `json:"netWeight"`
	GrossWeight *float64     `json:"grossWeight"`
}

func (r CreatePackageRequest) Validate() error {
	var c validation.Collector
	if r.UnitID == 0 {
		c.Add("unitId", validation.CodeRequired, "unitId is required")
	}
	if r.NetWeight == nil {
		c.Add("netWeight", validation.CodeRequired, "netWeight is required")
	}
	if r.GrossWeight == nil {
		c.Add("grossWeight", validation.CodeRequired, "grossWeight is required")
	}
	return c.Err()
}

type UpdatePackageRequest struct {
	UnitID      optional.Value[snowflake.ID] `json:"unitId"`
	NetWeight   optional.Value[float64]      `json:"netWeight"`
	GrossWeight optional.Value[float64]      `json:"grossWeight"`
}

var (
	ErrInvalidID = errors.New("invalid_id")

	// ErrUnitUnavailable is reported when unitId names a missing or deleted unit.
	ErrUnitUnavailable = validation.New("unitId", "reference_not_found", "Unit not found or has been deleted")
)
