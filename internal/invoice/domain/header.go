package domain

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	customerdomain "github.com/smallbiznis/tradedesk/internal/customer/domain"
	"github.com/smallbiznis/tradedesk/internal/document"
	"github.com/smallbiznis/tradedesk/internal/reference"
	"github.com/smallbiznis/tradedesk/pkg/db/option"
	"github.com/smallbiznis/tradedesk/pkg/optional"
	"github.com/smallbiznis/tradedesk/pkg/validation"
	"gorm.io/datatypes"
)

// HeaderInput is the create payload shared by invoices and proforma
// invoices.
type HeaderInput struct {
	QuotationID                *snowflake.ID              `json:"quotationId"`
	PINo                       string                     `json:"piNo"`
	Date                       *string                    `json:"date"`
	ConsigneeDetails           *ConsigneeDetails          `json:"consigneeDetails"`
	ShipmentDetails            *ShipmentDetails           `json:"shipmentDetails"`
	ShipmentModel              *ShipmentModel             `json:"shipmentModel"`
	ProductDetails             []document.LineValues      `json:"productDetails"`
	ContainerDetails           []document.ContainerValues `json:"containerDetails"`
	Remarks                    *string                    `json:"remarks"`
	InternalNote               *string                    `json:"internalNote"`
	ProductionDate             *string                    `json:"productionDate"`
	ProductionExpiryDate       *string                    `json:"productionExpiryDate"`
	PlaceOfReceiptByPreCarrier *string                    `json:"placeOfReceiptByPreCarrier"`
	VesselFlightNo             *string                    `json:"vesselFlightNo"`
	SalesBroker                *bool                      `json:"salesBroker"`
	Palletised                 *bool                      `json:"palletised"`
	Brokerage                  *float64                   `json:"brokerage"`
	BrokeragePercentage        *float64                   `json:"brokeragePercentage"`
	SoldBy                     *string                    `json:"soldBy"`
}

func (r HeaderInput) Validate() error {
	var c validation.Collector
	c.Required("piNo", r.PINo)
	if r.ConsigneeDetails != nil {
		r.ConsigneeDetails.validate(&c)
	}
	for _, date := range []struct {
		field string
		value *string
	}{
		{"date", r.Date},
		{"productionDate", r.ProductionDate},
		{"productionExpiryDate", r.ProductionExpiryDate},
	} {
		if _, err := document.ParseDatePtr(date.field, date.value); err != nil {
			c.Add(date.field, validation.CodeInvalid, date.field+" must be a valid ISO 8601 date string")
		}
	}
	return c.Err()
}

// Checks lists every reference the payload carries.
func (r HeaderInput) Checks() []reference.Check {
	checks := []reference.Check{QuotationCheck(r.QuotationID)}
	checks = append(checks, ConsigneeChecks(r.ConsigneeDetails)...)
	checks = append(checks, ShipmentChecks(r.ShipmentDetails)...)
	return append(checks, document.LineChecks(r.ProductDetails)...)
}

// Header builds the stored header. Call Validate first.
func (r HeaderInput) Header() (Header, error) {
	date, err := document.ParseDatePtr("date", r.Date)
	if err != nil {
		return Header{}, err
	}
	production, err := document.ParseDatePtr("productionDate", r.ProductionDate)
	if err != nil {
		return Header{}, err
	}
	expiry, err := document.ParseDatePtr("productionExpiryDate", r.ProductionExpiryDate)
	if err != nil {
		return Header{}, err
	}
	return Header{
		QuotationID:                r.QuotationID,
		Date:                       date,
		ConsigneeDetails:           datatypes.NewJSONType(r.ConsigneeDetails),
		ShipmentDetails:            datatypes.NewJSONType(r.ShipmentDetails),
		ShipmentModel:              datatypes.NewJSONType(r.ShipmentModel),
		Remarks:                    r.Remarks,
		InternalNote:               r.InternalNote,
		ProductionDate:             production,
		ProductionExpiryDate:       expiry,
		PlaceOfReceiptByPreCarrier: r.PlaceOfReceiptByPreCarrier,
		VesselFlightNo:             r.VesselFlightNo,
		SalesBroker:                r.SalesBroker != nil && *r.SalesBroker,
		Palletised:                 r.Palletised != nil && *r.Palletised,
		Brokerage:                  r.Brokerage,
		BrokeragePercentage:        r.BrokeragePercentage,
		SoldBy:                     r.SoldBy,
		Version:                    1,
	}, nil
}

// HeaderPatch is the update payload shared by invoices and proforma
// invoices. Omitted keys stay unchanged and an explicit null clears a
// nullable column. A productDetails or containerDetails array, even an
// empty one, replaces the stored rows.
type HeaderPatch struct {
	QuotationID                optional.Value[snowflake.ID]     `json:"quotationId"`
	PINo                       optional.Value[string]           `json:"piNo"`
	Date                       optional.Value[string]           `json:"date"`
	ConsigneeDetails           optional.Value[ConsigneeDetails] `json:"consigneeDetails"`
	ShipmentDetails            optional.Value[ShipmentDetails]  `json:"shipmentDetails"`
	ShipmentModel              optional.Value[ShipmentModel]    `json:"shipmentModel"`
	ProductDetails             *[]document.LineValues           `json:"productDetails"`
	ContainerDetails           *[]document.ContainerValues      `json:"containerDetails"`
	Remarks                    optional.Value[string]           `json:"remarks"`
	InternalNote               optional.Value[string]           `json:"internalNote"`
	ProductionDate             optional.Value[string]           `json:"productionDate"`
	ProductionExpiryDate       optional.Value[string]           `json:"productionExpiryDate"`
	PlaceOfReceiptByPreCarrier optional.Value[string]           `json:"placeOfReceiptByPreCarrier"`
	VesselFlightNo             optional.Value[string]           `json:"vesselFlightNo"`
	SalesBroker                optional.Value[bool]             `json:"salesBroker"`
	Palletised                 optional.Value[bool]             `json:"palletised"`
	Brokerage                  optional.Value[float64]          `json:"brokerage"`
	BrokeragePercentage        optional.Value[float64]          `json:"brokeragePercentage"`
	SoldBy                     optional.Value[string]           `json:"soldBy"`
	Version                    *int64                           `json:"version"`
}

func (r HeaderPatch) Validate() error {
	var c validation.Collector
	c.RequiredIfSet("piNo", r.PINo)
	if r.ConsigneeDetails.Set && !r.ConsigneeDetails.Null {
		r.ConsigneeDetails.Value.validate(&c)
	}
	if r.SalesBroker.Set && r.SalesBroker.Null {
		c.Add("salesBroker", validation.CodeInvalid, "salesBroker must be a boolean value")
	}
	if r.Palletised.Set && r.Palletised.Null {
		c.Add("palletised", validation.CodeInvalid, "palletised must be a boolean value")
	}
	return c.Err()
}

// Apply records the supplied header columns in values and returns the
// reference checks they need. pi_no is left to the caller, which guards
// its uniqueness.
func (r HeaderPatch) Apply(values map[string]any) ([]reference.Check, error) {
	var checks []reference.Check

	if r.QuotationID.Present() {
		checks = append(checks, QuotationCheck(r.QuotationID.Ptr()))
	}
	r.QuotationID.Apply(values, "quotation_id")

	for _, date := range []struct {
		column, field string
		value optional.Value[string]
	}{
		{"date", "date", r.Date},
		{"production_date", "productionDate", r.ProductionDate},
		{"production_expiry_date", "productionExpiryDate", r.ProductionExpiryDate},
	} {
		if err := document.ApplyDate(values, date.column, date.field, date.value); err != nil {
			return nil, err
		}
	}

	if r.ConsigneeDetails.Set {
		consignee := r.ConsigneeDetails.Ptr()
		checks = append(checks, ConsigneeChecks(consignee)...)
		values["consignee_details"] = datatypes.NewJSONType(consignee)
	}
	if r.ShipmentDetails.Set {
		shipment := r.ShipmentDetails.Ptr()
		checks = append(checks, ShipmentChecks(shipment)...)
		values["shipment_details"] = datatypes.NewJSONType(shipment)
	}
	if r.ShipmentModel.Set {
		values["shipment_model"] = datatypes.NewJSONType(r.ShipmentModel.Ptr())
	}
	if r.ProductDetails != nil {
		checks = append(checks, document.LineChecks(*r.ProductDetails)...)
	}

	r.Remarks.Apply(values, "remarks")
	r.InternalNote.Apply(values, "internal_note")
	r.PlaceOfReceiptByPreCarrier.Apply(values, "place_of_receipt_by_pre_carrier")
	r.VesselFlightNo.Apply(values, "vessel_flight_no")
	r.SalesBroker.Apply(values, "sales_broker")
	r.Palletised.Apply(values, "palletised")
	r.Brokerage.Apply(values, "brokerage")
	r.BrokeragePercentage.Apply(values, "brokerage_percentage")
	r.SoldBy.Apply(values, "sold_by")
	return checks, nil
}

func (d ConsigneeDetails) validate(c *validation.Collector) {
	if d.ConsigneeAddressID != nil && *d.ConsigneeAddressID < 1 {
		c.Add("consigneeDetails.consigneeAddressId", validation.CodeInvalid, "consigneeDetails.consigneeAddressId must not be less than 1")
	}
}

func QuotationCheck(id *snowflake.ID) reference.Check {
	return reference.Check{Field: "quotationId", Entity: reference.Quotation, ID: id, Message: "Quotation not found"}
}

func ConsigneeChecks(d *ConsigneeDetails) []reference.Check {
	if d == nil {
		return nil
	}
	return []reference.Check{
		{Field: "consigneeDetails.consigneeId", Entity: reference.Customer, ID: d.ConsigneeID, Message: "Consignee customer not found"},
		{Field: "consigneeDetails.finalDestinationPortId", Entity: reference.Port, ID: d.FinalDestinationPortID, Message: "Final destination port not found"},
	}
}

func ShipmentChecks(d *ShipmentDetails) []reference.Check {
	if d == nil {
		return nil
	}
	return []reference.Check{
		{Field: "shipmentDetails.currencyId", Entity: reference.Currency, ID: d.CurrencyID, Message: "Currency not found"},
		{Field: "shipmentDetails.bankId", Entity: reference.BankDetail, ID: d.BankID, Message: "Bank Detail not found"},
		{Field: "shipmentDetails.shipmentTermId", Entity: reference.ShipmentTerm, ID: d.ShipmentTermID, Message: "Shipment Term not found"},
		{Field: "shipmentDetails.paymentTermId", Entity: reference.PaymentTerm, ID: d.PaymentTermID, Message: "Payment Term not found"},
	}
}

// ConsigneeView is a consignee block with the referenced rows attached.
type ConsigneeView struct {
	ConsigneeDetails
	Consignee            *document.CustomerSummary `json:"consignee,omitempty"`
	ConsigneeAddress     *customerdomain.Address   `json:"consigneeAddress,omitempty"`
	FinalDestinationPort *document.PortSummary     `json:"finalDestinationPort,omitempty"`
}

type ShipmentView struct {
	ShipmentDetails
	Currency     *document.CurrencySummary `json:"currency,omitempty"`
	Bank         *document.BankSummary     `json:"bank,omitempty"`
	ShipmentTerm *document.TermSummary     `json:"shipmentTerm,omitempty"`
	PaymentTerm  *document.TermSummary     `json:"paymentTerm,omitempty"`
}

// Enrich attaches summaries of the rows the detail blocks point at. An
// absent block yields a nil view.
func (h Header) Enrich(ctx context.Context, e *document.Enricher) (*ConsigneeView, *ShipmentView, error) {
	var (
		cv  *ConsigneeView
		sv  *ShipmentView
		err error
	)
	if consignee := h.ConsigneeDetails.Data(); consignee != nil {
		cv = &ConsigneeView{ConsigneeDetails: *consignee}
		if cv.Consignee, cv.ConsigneeAddress, err = e.Customer(ctx, consignee.ConsigneeID, consignee.ConsigneeAddressID); err != nil {
			return nil, nil, err
		}
		if cv.FinalDestinationPort, err = e.Port(ctx, consignee.FinalDestinationPortID); err != nil {
			return nil, nil, err
		}
	}
	if shipment := h.ShipmentDetails.Data(); shipment != nil {
		sv = &ShipmentView{ShipmentDetails: *shipment}
		if sv.Currency, err = e.Currency(ctx, shipment.CurrencyID); err != nil {
			return nil, nil, err
		}
		if sv.Bank, err = e.Bank(ctx, shipment.BankID); err != nil {
			return nil, nil, err
		}
		if sv.ShipmentTerm, err = e.ShipmentTerm(ctx, shipment.ShipmentTermID); err != nil {
			return nil, nil, err
		}
		if sv.PaymentTerm, err = e.PaymentTerm(ctx, shipment.PaymentTermID); err != nil {
			return nil, nil, err
		}
	}
	return cv, sv, nil
}

// ListFilter narrows invoice and proforma listings. IsProformaInvoice only
// applies to invoices.
type ListFilter struct {
	OrganizationID    *snowflake.ID
	Search            string
	QuotationID       *snowflake.ID
	SalesBroker       *bool
	IsProformaInvoice *bool
	DateFrom          *time.Time
	DateTo            *time.Time
	Limit             int
	Offset            int
}

// Options renders the filter without paging.
func (f ListFilter) Options() []option.QueryOption {
	opts := []option.QueryOption{option.ApplySearch(strings.TrimSpace(f.Search), "pi_no")}
	if f.OrganizationID != nil {
		opts = append(opts, option.ApplyWhere("organization_id = ?", *f.OrganizationID))
	}
	if f.QuotationID != nil {
		opts = append(opts, option.ApplyWhere("quotation_id = ?", *f.QuotationID))
	}
	if f.SalesBroker != nil {
		opts = append(opts, option.ApplyWhere("sales_broker = ?", *f.SalesBroker))
	}
	if f.IsProformaInvoice != nil {
		opts = append(opts, option.ApplyWhere("is_proforma_invoice = ?", *f.IsProformaInvoice))
	}
	if f.DateFrom != nil {
		opts = append(opts, option.ApplyWhere("date >= ?", *f.DateFrom))
	}
	if f.DateTo != nil {
		opts = append(opts, option.ApplyWhere("date <= ?", *f.DateTo))
	}
	return opts
}

// ListRequest carries the raw listing query. Dates are ISO 8601 strings.
type ListRequest struct {
	Page              int
	Limit             int
	Search            string
	QuotationID       *snowflake.ID
	SalesBroker       *bool
	IsProformaInvoice *bool
	DateFrom          string
	DateTo            string
}

// Filter validates the date bounds and builds the paged filter.
func (r ListRequest) Filter(limit, offset int) (ListFilter, error) {
	from, err := document.ParseDate("dateFrom", r.DateFrom)
	if err != nil {
		return ListFilter{}, err
	}
	to, err := document.ParseDate("dateTo", r.DateTo)
	if err != nil {
		return ListFilter{}, err
	}
	return ListFilter{
		Search:            strings.TrimSpace(r.Search),
		QuotationID:       r.QuotationID,
		SalesBroker:       r.SalesBroker,
		IsProformaInvoice: r.IsProformaInvoice,
		DateFrom:          from,
		DateTo:            to,
		Limit:             limit,
		Offset:            offset,
	}, nil
}
