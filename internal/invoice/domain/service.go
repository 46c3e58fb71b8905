package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tradedesk/pkg/db/pagination"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (Invoice, error)
	List(ctx context.Context, req ListRequest) (ListResponse, error)
	Get(ctx context.Context, id snowflake.ID) (InvoiceDetail, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateRequest) (Invoice, error)
	Delete(ctx context.Context, id snowflake.ID) error
}

type Repository interface {
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Invoice, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]Invoice, int64, error)
}

type CreateRequest struct {
	HeaderInput
	IsProformaInvoice *bool `json:"isProformaInvoice"`
}

type UpdateRequest struct {
	HeaderPatch
	IsProformaInvoice *bool `json:"isProformaInvoice"`
}

type ListResponse struct {
	Data []Invoice       `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

// InvoiceDetail is the single-invoice read model.
type InvoiceDetail struct {
	Invoice
	ConsigneeDetails *ConsigneeView `json:"consigneeDetails"`
	ShipmentDetails  *ShipmentView  `json:"shipmentDetails"`
}
