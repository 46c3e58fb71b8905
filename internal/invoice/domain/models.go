// Package domain contains the persistence models and request shapes of
// commercial invoices. Proforma invoices share the header, the detail
// blocks and the request handling defined here.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tradedesk/internal/document"
	productdomain "github.com/smallbiznis/tradedesk/internal/product/domain"
	quotationdomain "github.com/smallbiznis/tradedesk/internal/quotation/domain"
	settingsdomain "github.com/smallbiznis/tradedesk/internal/settings/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ConsigneeDetails names the buyer and the final destination.
type ConsigneeDetails struct {
	ConsigneeID            *snowflake.ID `json:"consigneeId,omitempty"`
	ConsigneeAddressID     *int          `json:"consigneeAddressId,omitempty"`
	Country                *string       `json:"country,omitempty"`
	FinalDestinationPortID *snowflake.ID `json:"finalDestinationPortId,omitempty"`
}

type ShipmentDetails struct {
	CountryOfOrigin    *string       `json:"countryOfOrigin,omitempty"`
	PreCarriageBy      *string       `json:"preCarriageBy,omitempty"`
	CountryOfLoading   *string       `json:"countryOfLoading,omitempty"`
	CountryOfDischarge *string       `json:"countryOfDischarge,omitempty"`
	PortOfDischarge    *string       `json:"portOfDischarge,omitempty"`
	CurrencyID         *snowflake.ID `json:"currencyId,omitempty"`
	ConversionRate     *float64      `json:"conversionRate,omitempty"`
	BankID             *snowflake.ID `json:"bankId,omitempty"`
	PaymentTermID      *snowflake.ID `json:"paymentTermId,omitempty"`
	ShipmentTermID     *snowflake.ID `json:"shipmentTermId,omitempty"`
	ShipmentPeriod     *float64      `json:"shipmentPeriod,omitempty"`
	OrderType          *string       `json:"orderType,omitempty"`
}

// ShipmentModel records how the goods travel and the shipment totals.
// Container and bulk counts are free text as typed on the paper form.
type ShipmentModel struct {
	ShipmentMode            *string  `json:"shipmentMode,omitempty"`
	Ft20FCL                 *string  `json:"ft20FCL,omitempty"`
	Ft40FCL                 *string  `json:"ft40FCL,omitempty"`
	Ft40HC                  *string  `json:"ft40HC,omitempty"`
	Ft20LCL                 *string  `json:"ft20LCL,omitempty"`
	Ft40LCL                 *string  `json:"ft40LCL,omitempty"`
	DryBulk                 *string  `json:"dryBulk,omitempty"`
	LiquidBulk              *string  `json:"liquidBulk,omitempty"`
	IsoTank                 *string  `json:"isoTank,omitempty"`
	FlexiTank               *string  `json:"flexiTank,omitempty"`
	TotalNetWeight          *float64 `json:"totalNetWeight,omitempty"`
	TotalGrossWeight        *float64 `json:"totalGrossWeight,omitempty"`
	Total                   *float64 `json:"total,omitempty"`
	Freight                 *float64 `json:"freight,omitempty"`
	FreightIncludeInTotal   *bool    `json:"freightIncludeInTotal,omitempty"`
	Insurance               *float64 `json:"insurance,omitempty"`
	InsuranceIncludeInTotal *bool    `json:"insuranceIncludeInTotal,omitempty"`
	GrandTotal              *float64 `json:"grandTotal,omitempty"`
}

// Header holds the columns shared by invoices and proforma invoices. The
// detail blocks are optional and stored as JSON null when absent.
type Header struct {
	QuotationID                *snowflake.ID                         `gorm:"index" json:"quotationId"`
	Date                       *time.Time                            `json:"date"`
	ConsigneeDetails           datatypes.JSONType[*ConsigneeDetails] `gorm:"type:json" json:"consigneeDetails"`
	ShipmentDetails            datatypes.JSONType[*ShipmentDetails]  `gorm:"type:json" json:"shipmentDetails"`
	ShipmentModel              datatypes.JSONType[*ShipmentModel]    `gorm:"type:json" json:"shipmentModel"`
	Remarks                    *string                               `gorm:"type:text" json:"remarks"`
	InternalNote               *string                               `gorm:"type:text" json:"internalNote"`
	ProductionDate             *time.Time                            `json:"productionDate"`
	ProductionExpiryDate       *time.Time                            `json:"productionExpiryDate"`
	PlaceOfReceiptByPreCarrier *string                               `gorm:"type:text" json:"placeOfReceiptByPreCarrier"`
	VesselFlightNo             *string                               `gorm:"type:text" json:"vesselFlightNo"`
	SalesBroker                bool                                  `gorm:"not null;default:false" json:"salesBroker"`
	Palletised                 bool                                  `gorm:"not null;default:false" json:"palletised"`
	Brokerage                  *float64                              `json:"brokerage"`
	BrokeragePercentage        *float64                              `json:"brokeragePercentage"`
	SoldBy                     *string                               `gorm:"type:text" json:"soldBy"`
	OrganizationID             *snowflake.ID                         `gorm:"index" json:"organizationId"`
	Version                    int64                                 `gorm:"not null;default:1" json:"version"`
}

type Invoice struct {
	ID   snowflake.ID `gorm:"primaryKey" json:"id"`
	PINo string       `gorm:"column:pi_no;type:text;not null" json:"piNo"`
	Header
	IsProformaInvoice bool                       `gorm:"not null;default:false" json:"isProformaInvoice"`
	CreatedAt         time.Time                  `gorm:"not null" json:"createdAt"`
	UpdatedAt         time.Time                  `gorm:"not null" json:"updatedAt"`
	DeletedAt         gorm.DeletedAt             `gorm:"index" json:"deletedAt"`
	Quotation         *quotationdomain.Quotation `gorm:"foreignKey:QuotationID" json:"quotation,omitempty"`
	InvoiceProducts   []InvoiceProduct           `gorm:"foreignKey:InvoiceID" json:"invoiceProducts"`
	InvoiceContainers []InvoiceContainer         `gorm:"foreignKey:InvoiceID" json:"invoiceContainers"`
}

func (Invoice) TableName() string { return "invoices" }

type InvoiceProduct struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	InvoiceID snowflake.ID `gorm:"not null;index" json:"invoiceId"`
	document.LineValues
	Product     *productdomain.Product      `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Unit        *settingsdomain.Unit        `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	PackageType *settingsdomain.PackageType `gorm:"foreignKey:PackageTypeID" json:"packageType,omitempty"`
	Material    *settingsdomain.Material    `gorm:"foreignKey:MaterialID" json:"material,omitempty"`
	CreatedAt   time.Time                   `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time                   `gorm:"not null" json:"updatedAt"`
}

func (InvoiceProduct) TableName() string { return "invoice_products" }

type InvoiceContainer struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	InvoiceID snowflake.ID `gorm:"not null;index" json:"invoiceId"`
	document.ContainerValues
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (InvoiceContainer) TableName() string { return "invoice_containers" }

// LinePreloads eager-loads the quotation, every line with its referenced
// rows and the containers.
var LinePreloads = []string{
	"Quotation",
	"InvoiceProducts.Product",
	"InvoiceProducts.Unit",
	"InvoiceProducts.PackageType",
	"InvoiceProducts.Material",
}
