package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tradedesk/internal/document"
	productdomain "github.com/smallbiznis/tradedesk/internal/product/domain"
	settingsdomain "github.com/smallbiznis/tradedesk/internal/settings/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ConsigneeDetails names the buyer side of a quotation. ConsigneeAddressID
// is a 1-based position in the consignee's address book.
type ConsigneeDetails struct {
	BuyerOrderNo       *string       `json:"buyerOrderNo,omitempty"`
	OrderDate          *string       `json:"orderDate,omitempty"`
	ConsigneeID        *snowflake.ID `json:"consigneeId,omitempty"`
	ConsigneeAddressID *int          `json:"consigneeAddressId,omitempty"`
	NotifyPartyID      *snowflake.ID `json:"notifyPartyId,omitempty"`
	OtherNotifyPartyID *snowflake.ID `json:"otherNotifyPartyId,omitempty"`
	Country            string        `json:"country"`
	PortID             *snowflake.ID `json:"portId,omitempty"`
}

// ShipmentDetails carries routing and commercial terms. Brokerage fields
// apply to broker quotations.
type ShipmentDetails struct {
	CountryOfOrigin            *string       `json:"countryOfOrigin,omitempty"`
	PreCarriageBy              *string       `json:"preCarriageBy,omitempty"`
	PlaceOfReceiptByPreCarrier *string       `json:"placeOfReceiptByPreCarrier,omitempty"`
	VesselFlightNo             *string       `json:"vesselFlightNo,omitempty"`
	CountryOfLoading           *string       `json:"countryOfLoading,omitempty"`
	PlaceOfLoading             *string       `json:"placeOfLoading,omitempty"`
	CountryOfDischarge         *string       `json:"countryOfDischarge,omitempty"`
	PortOfDischarge            *string       `json:"portOfDischarge,omitempty"`
	CurrencyID                 *snowflake.ID `json:"currencyId,omitempty"`
	ConversionRate             *float64      `json:"conversionRate,omitempty"`
	BankID                     *snowflake.ID `json:"bankId,omitempty"`
	ShipmentPeriod             *string       `json:"shipmentPeriod,omitempty"`
	ShipmentTermID             *snowflake.ID `json:"shipmentTermId,omitempty"`
	PaymentTermID              *snowflake.ID `json:"paymentTermId,omitempty"`
	SalespersonID              *snowflake.ID `json:"salespersonId,omitempty"`
	Brokerage                  *float64      `json:"brokerage,omitempty"`
	BrokerageUnit              *float64      `json:"brokerageUnit,omitempty"`
	SoldBy                     *string       `json:"soldBy,omitempty"`
}

type Quotation struct {
	ID                snowflake.ID                         `gorm:"primaryKey" json:"id"`
	QuotationNo       string                               `gorm:"column:quotation_no;type:text;not null" json:"quotationNo"`
	Date              *time.Time                           `json:"date"`
	ConsigneeDetails  datatypes.JSONType[ConsigneeDetails] `gorm:"type:json;not null" json:"consigneeDetails"`
	ShipmentDetails   datatypes.JSONType[ShipmentDetails]  `gorm:"type:json;not null" json:"shipmentDetails"`
	SalesBroker       bool                                 `gorm:"not null;default:false" json:"salesBroker"`
	Remark            *string                              `gorm:"type:text" json:"remark"`
	OrganizationID    *snowflake.ID                        `gorm:"index" json:"organizationId"`
	Version           int64                                `gorm:"not null;default:1" json:"version"`
	CreatedAt         time.Time                            `gorm:"not null" json:"createdAt"`
	UpdatedAt         time.Time                            `gorm:"not null" json:"updatedAt"`
	DeletedAt         gorm.DeletedAt                       `gorm:"index" json:"deletedAt"`
	QuotationProducts []QuotationProduct                   `gorm:"foreignKey:QuotationID" json:"quotationProducts"`
}

func (Quotation) TableName() string { return "quotations" }

// QuotationProduct is one product line. Lines are replaced wholesale and
// carry no soft delete.
type QuotationProduct struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	QuotationID snowflake.ID `gorm:"not null;index" json:"quotationId"`
	document.LineValues
	Product     *productdomain.Product      `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Unit        *settingsdomain.Unit        `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	PackageType *settingsdomain.PackageType `gorm:"foreignKey:PackageTypeID" json:"packageType,omitempty"`
	Material    *settingsdomain.Material    `gorm:"foreignKey:MaterialID" json:"material,omitempty"`
	CreatedAt   time.Time                   `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time                   `gorm:"not null" json:"updatedAt"`
}

func (QuotationProduct) TableName() string { return "quotation_products" }

// LinePreloads eager-loads every line with its referenced rows.
var LinePreloads = []string{
	"QuotationProducts",
	"QuotationProducts.Product",
	"QuotationProducts.Unit",
	"QuotationProducts.PackageType",
	"QuotationProducts.Material",
}
