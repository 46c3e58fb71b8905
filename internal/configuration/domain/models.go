package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	DefaultInvoiceSeriesBasedOn = "General Setting For All Invoice"
	DefaultPISeriesBasedOn      = "General Setting For All PI"
)

// InternationalInvoiceConfiguration holds the export numbering series and
// declarations of one organization.
type InternationalInvoiceConfiguration struct {
	ID                          snowflake.ID  `gorm:"primaryKey" json:"id"`
	OrganizationID              *snowflake.ID `gorm:"uniqueIndex:ux_international_invoice_configurations_org" json:"organizationId"`
	PinCode                     *string       `gorm:"type:text" json:"pinCode"`
	DeclarationExport           *string       `gorm:"type:text" json:"declarationExport"`
	DeclarationDomestic         *string       `gorm:"type:text" json:"declarationDomestic"`
	InvoiceSeriesSettingBasedOn string        `gorm:"type:text;not null" json:"invoiceSeriesSettingBasedOn"`
	PiSeriesSettingBasedOn      string        `gorm:"type:text;not null" json:"piSeriesSettingBasedOn"`
	InvoicePrefix               *string       `gorm:"type:text" json:"invoicePrefix"`
	InvoiceStartFrom            int64         `gorm:"not null;default:0" json:"invoiceStartFrom"`
	InvoiceSuffix               *string       `gorm:"type:text" json:"invoiceSuffix"`
	PiPrefix                    *string       `gorm:"type:text" json:"piPrefix"`
	PiStartFrom                 int64         `gorm:"not null;default:0" json:"piStartFrom"`
	PiSuffix                    *string       `gorm:"type:text" json:"piSuffix"`
	QuotationPrefix             *string       `gorm:"type:text" json:"quotationPrefix"`
	QuotationStartFrom          int64         `gorm:"not null;default:0" json:"quotationStartFrom"`
	QuotationSuffix             *string       `gorm:"type:text" json:"quotationSuffix"`
	PoPrefix                    *string       `gorm:"type:text" json:"poPrefix"`
	PoStartFrom                 int64         `gorm:"not null;default:0" json:"poStartFrom"`
	PoSuffix                    *string       `gorm:"type:text" json:"poSuffix"`
	ServicePoPrefix             *string       `gorm:"type:text" json:"servicePoPrefix"`
	ServicePoStartFrom          int64         `gorm:"not null;default:0" json:"servicePoStartFrom"`
	ServicePoSuffix             *string       `gorm:"type:text" json:"servicePoSuffix"`
	PiInvoiceNoEditing          bool          `gorm:"not null;default:true" json:"piInvoiceNoEditing"`
	CreatedAt                   time.Time     `gorm:"not null" json:"createdAt"`
	UpdatedAt                   time.Time     `gorm:"not null" json:"updatedAt"`
}

func (InternationalInvoiceConfiguration) TableName() string {
	return "international_invoice_configurations"
}

type DomesticInvoiceConfiguration struct {
	ID                       snowflake.ID  `gorm:"primaryKey" json:"id"`
	OrganizationID           *snowflake.ID `gorm:"uniqueIndex:ux_domestic_invoice_configurations_org" json:"organizationId"`
	DomesticInvoicePrefix    *string       `gorm:"type:text" json:"domesticInvoicePrefix"`
	DomesticInvoiceStartFrom int64         `gorm:"not null;default:0" json:"domesticInvoiceStartFrom"`
	DomesticInvoiceSuffix    *string       `gorm:"type:text" json:"domesticInvoiceSuffix"`
	DomesticPiPrefix         *string       `gorm:"type:text" json:"domesticPiPrefix"`
	DomesticPiStartFrom      int64         `gorm:"not null;default:0" json:"domesticPiStartFrom"`
	DomesticPiSuffix         *string       `gorm:"type:text" json:"domesticPiSuffix"`
	CreatedAt                time.Time     `gorm:"not null" json:"createdAt"`
	UpdatedAt                time.Time     `gorm:"not null" json:"updatedAt"`
}

func (DomesticInvoiceConfiguration) TableName() string {
	return "domestic_invoice_configurations"
}
