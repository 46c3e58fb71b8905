package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tradedesk/internal/document"
	invoicedomain "github.com/smallbiznis/tradedesk/internal/invoice/domain"
	productdomain "github.com/smallbiznis/tradedesk/internal/product/domain"
	quotationdomain "github.com/smallbiznis/tradedesk/internal/quotation/domain"
	settingsdomain "github.com/smallbiznis/tradedesk/internal/settings/domain"
	"gorm.io/gorm"
)

// ProformaInvoice shares the invoice header and detail blocks. Its PI
// numbers are unique among live proforma invoices only.
type ProformaInvoice struct {
	ID   snowflake.ID `gorm:"primaryKey" json:"id"`
	PINo string       `gorm:"column:pi_no;type:text;not null" json:"piNo"`
	invoicedomain.Header
	CreatedAt                 time.Time                  `gorm:"not null" json:"createdAt"`
	UpdatedAt                 time.Time                  `gorm:"not null" json:"updatedAt"`
	DeletedAt                 gorm.DeletedAt             `gorm:"index" json:"deletedAt"`
	Quotation                 *quotationdomain.Quotation `gorm:"foreignKey:QuotationID" json:"quotation,omitempty"`
	ProformaInvoiceProducts   []ProformaInvoiceProduct   `gorm:"foreignKey:ProformaInvoiceID" json:"proformaInvoiceProducts"`
	ProformaInvoiceContainers []ProformaInvoiceContainer `gorm:"foreignKey:ProformaInvoiceID" json:"proformaInvoiceContainers"`
}

func (ProformaInvoice) TableName() string { return "proforma_invoices" }

type ProformaInvoiceProduct struct {
	ID                snowflake.ID `gorm:"primaryKey" json:"id"`
	ProformaInvoiceID snowflake.ID `gorm:"not null;index" json:"proformaInvoiceId"`
	document.LineValues
	Product     *productdomain.Product      `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Unit        *settingsdomain.Unit        `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	PackageType *settingsdomain.PackageType `gorm:"foreignKey:PackageTypeID" json:"packageType,omitempty"`
	Material    *settingsdomain.Material    `gorm:"foreignKey:MaterialID" json:"material,omitempty"`
	CreatedAt   time.Time                   `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time                   `gorm:"not null" json:"updatedAt"`
}

func (ProformaInvoiceProduct) TableName() string { return "proforma_invoice_products" }

type ProformaInvoiceContainer struct {
	ID                snowflake.ID `gorm:"primaryKey" json:"id"`
	ProformaInvoiceID snowflake.ID `gorm:"not null;index" json:"proformaInvoiceId"`
	document.ContainerValues
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (ProformaInvoiceContainer) TableName() string { return "proforma_invoice_containers" }

var LinePreloads = []string{
	"Quotation",
	"ProformaInvoiceProducts.Product",
	"ProformaInvoiceProducts.Unit",
	"ProformaInvoiceProducts.PackageType",
	"ProformaInvoiceProducts.Material",
}
