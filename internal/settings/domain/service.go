package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tradedesk/pkg/db/pagination"
)

// Kind describes how one master-data table is searched, ordered and named.
type Kind struct {
	Entity        string
	SearchColumns []string
	// DefaultColumn is the boolean column that orders a default row first
	// and is kept unique among live rows. Empty when the kind has no default.
	DefaultColumn string
}

var (
	PortKind               = Kind{Entity: "Port", SearchColumns: []string{"country", "port_name", "port_code"}}
	CurrencyKind           = Kind{Entity: "Currency", SearchColumns: []string{"currency_name", "symbol", "words"}, DefaultColumn: "mark_as_default"}
	PaymentTermKind        = Kind{Entity: "Payment term", SearchColumns: []string{"name", "term"}, DefaultColumn: "mark_as_default"}
	ShipmentTermKind       = Kind{Entity: "Shipment term", SearchColumns: []string{"name", "term"}, DefaultColumn: "mark_as_default"}
	MaterialKind           = Kind{Entity: "Material", SearchColumns: []string{"material_name"}, DefaultColumn: "mark_as_default"}
	PackageTypeKind        = Kind{Entity: "Package type", SearchColumns: []string{"package_type"}, DefaultColumn: "mark_as_default"}
	BankDetailKind         = Kind{Entity: "Bank detail", SearchColumns: []string{"bank_name", "account_no", "beneficiary_name", "swift_code"}, DefaultColumn: "mark_as_default"}
	UnitKind               = Kind{Entity: "Unit", SearchColumns: []string{"order_unit"}, DefaultColumn: "is_default"}
	QualitySpeculationKind = Kind{Entity: "Quality speculation", SearchColumns: []string{"name", "specification"}}
)

// Record is implemented by pointers to master-data models.
type Record[T any] interface {
	*T
	SetID(id snowflake.ID)
}

// Defaultable is implemented by models carrying a default flag.
type Defaultable interface {
	IsDefault() bool
}

// Input builds a new model from a create request.
type Input[T any] interface {
	Build() (T, error)
}

// Patch yields the columns an update request supplied.
type Patch interface {
	Columns() (map[string]any, error)
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

type Service[T any] interface {
	Create(ctx context.Context, input Input[T]) (*T, error)
	List(ctx context.Context, req ListRequest) (ListResponse[T], error)
	Get(ctx context.Context, id snowflake.ID) (*T, error)
	Update(ctx context.Context, id snowflake.ID, patch Patch) (*T, error)
	Delete(ctx context.Context, id snowflake.ID) error
}

var ErrInvalidID = errors.New("invalid_id")
