package domain

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	customerdomain "github.com/smallbiznis/tradedesk/internal/customer/domain"
	"github.com/smallbiznis/tradedesk/internal/document"
	"github.com/smallbiznis/tradedesk/pkg/db/pagination"
	"github.com/smallbiznis/tradedesk/pkg/optional"
	"github.com/smallbiznis/tradedesk/pkg/validation"
	"gorm.io/gorm"
)

//go:generate mockgen -destination=mock/service_mock.go -package=mock github.com/smallbiznis/tradedesk/internal/quotation/domain Service

type Service interface {
	Create(ctx context.Context, req CreateRequest) (Quotation, error)
	List(ctx context.Context, req ListRequest) (ListResponse, error)
	Get(ctx context.Context, id snowflake.ID) (QuotationDetail, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateRequest) (Quotation, error)
	Delete(ctx context.Context, id snowflake.ID) error
	// NextNumber suggests the next QT-{year}-{nnnn} number.
	NextNumber(ctx context.Context) (string, error)
}

type Repository interface {
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Quotation, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]Quotation, int64, error)
	CountByPrefix(ctx context.Context, db *gorm.DB, prefix string) (int64, error)
}

type CreateRequest struct {
	QuotationNumber  string                `json:"quotationNumber"`
	Date             *string               `json:"date"`
	ConsigneeDetails *ConsigneeDetails     `json:"consigneeDetails"`
	ShipmentDetails  *ShipmentDetails      `json:"shipmentDetails"`
	SalesBroker      *bool                 `json:"salesBroker"`
	Remark           *string               `json:"remark"`
	ProductDetails   []document.LineValues `json:"productDetails"`
}

func (r CreateRequest) Validate() error {
	var c validation.Collector
	c.Required("quotationNumber", r.QuotationNumber)
	if r.ConsigneeDetails == nil {
		c.Add("consigneeDetails", validation.CodeRequired, "consigneeDetails is required")
	} else {
		r.ConsigneeDetails.validate(&c)
	}
	if r.ShipmentDetails == nil {
		c.Add("shipmentDetails", validation.CodeRequired, "shipmentDetails is required")
	}
	return c.Err()
}

// UpdateRequest patches a quotation. Omitted keys stay unchanged. A
// productDetails array, even an empty one, replaces every stored line.
// Version, when sent, must match the stored version.
type UpdateRequest struct {
	QuotationNumber  optional.Value[string]           `json:"quotationNumber"`
	Date             optional.Value[string]           `json:"date"`
	ConsigneeDetails optional.Value[ConsigneeDetails] `json:"consigneeDetails"`
	ShipmentDetails  optional.Value[ShipmentDetails]  `json:"shipmentDetails"`
	SalesBroker      optional.Value[bool]             `json:"salesBroker"`
	Remark           optional.Value[string]           `json:"remark"`
	ProductDetails   *[]document.LineValues           `json:"productDetails"`
	Version          *int64                           `json:"version"`
}

func (r UpdateRequest) Validate() error {
	var c validation.Collector
	c.RequiredIfSet("quotationNumber", r.QuotationNumber)
	if r.ConsigneeDetails.Set {
		if r.ConsigneeDetails.Null {
			c.Add("consigneeDetails", validation.CodeRequired, "consigneeDetails is required")
		} else {
			r.ConsigneeDetails.Value.validate(&c)
		}
	}
	if r.ShipmentDetails.Set && r.ShipmentDetails.Null {
		c.Add("shipmentDetails", validation.CodeRequired, "shipmentDetails is required")
	}
	if r.SalesBroker.Set && r.SalesBroker.Null {
		c.Add("salesBroker", validation.CodeInvalid, "salesBroker must be a boolean value")
	}
	return c.Err()
}

func (d ConsigneeDetails) validate(c *validation.Collector) {
	c.Required("consigneeDetails.country", d.Country)
	if d.OrderDate != nil && strings.TrimSpace(*d.OrderDate) != "" {
		if _, err := document.ParseDate("consigneeDetails.orderDate", *d.OrderDate); err != nil {
			c.Add("consigneeDetails.orderDate", validation.CodeInvalid, "consigneeDetails.orderDate must be a valid ISO 8601 date string")
		}
	}
	if d.ConsigneeAddressID != nil && *d.ConsigneeAddressID < 1 {
		c.Add("consigneeDetails.consigneeAddressId", validation.CodeInvalid, "consigneeDetails.consigneeAddressId must not be less than 1")
	}
}

type ListRequest struct {
	Page   int
	Limit  int
	Search string
}

type ListFilter struct {
	OrganizationID *snowflake.ID
	Search         string
	Limit          int
	Offset         int
}

type ListResponse struct {
	Data []Quotation     `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

// ConsigneeView is a consignee block with the referenced rows attached.
type ConsigneeView struct {
	ConsigneeDetails
	Consignee        *document.CustomerSummary `json:"consignee,omitempty"`
	ConsigneeAddress *customerdomain.Address   `json:"consigneeAddress,omitempty"`
	NotifyParty      *document.CustomerSummary `json:"notifyParty,omitempty"`
	OtherNotifyParty *document.CustomerSummary `json:"otherNotifyParty,omitempty"`
	Port             *document.PortSummary     `json:"port,omitempty"`
}

type ShipmentView struct {
	ShipmentDetails
	Currency     *document.CurrencySummary `json:"currency,omitempty"`
	Bank         *document.BankSummary     `json:"bank,omitempty"`
	ShipmentTerm *document.TermSummary     `json:"shipmentTerm,omitempty"`
	PaymentTerm  *document.TermSummary     `json:"paymentTerm,omitempty"`
	Salesperson  *document.UserSummary     `json:"salesperson,omitempty"`
}

// QuotationDetail is the single-quotation read model.
type QuotationDetail struct {
	Quotation
	ConsigneeDetails ConsigneeView `json:"consigneeDetails"`
	ShipmentDetails  ShipmentView  `json:"shipmentDetails"`
}
