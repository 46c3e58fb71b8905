package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	invoicedomain "github.com/smallbiznis/tradedesk/internal/invoice/domain"
	"github.com/smallbiznis/tradedesk/pkg/db/pagination"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (ProformaInvoice, error)
	List(ctx context.Context, req ListRequest) (ListResponse, error)
	Get(ctx context.Context, id snowflake.ID) (ProformaInvoiceDetail, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateRequest) (ProformaInvoice, error)
	Delete(ctx context.Context, id snowflake.ID) error
}

type Repository interface {
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*ProformaInvoice, error)
	List(ctx context.Context, db *gorm.DB, filter invoicedomain.ListFilter) ([]ProformaInvoice, int64, error)
}

type (
	CreateRequest = invoicedomain.HeaderInput
	UpdateRequest = invoicedomain.HeaderPatch
	ListRequest   = invoicedomain.ListRequest
)

type ListResponse struct {
	Data []ProformaInvoice `json:"data"`
	Meta pagination.Meta   `json:"meta"`
}

type ProformaInvoiceDetail struct {
	ProformaInvoice
	ConsigneeDetails *invoicedomain.ConsigneeView `json:"consigneeDetails"`
	ShipmentDetails  *invoicedomain.ShipmentView  `json:"shipmentDetails"`
}
