package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Port struct {
	ID        snowflake.ID   `gorm:"primaryKey" json:"id"`
	Country   string         `gorm:"type:text;not null" json:"country"`
	PortName  string         `gorm:"type:text;not null" json:"portName"`
	PortCode  *string        `gorm:"type:text" json:"portCode"`
	CreatedAt time.Time      `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"not null" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt"`
}

func (Port) TableName() string { return "ports" }

type Currency struct {
	ID            snowflake.ID   `gorm:"primaryKey" json:"id"`
	CurrencyName  string         `gorm:"type:text;not null" json:"currencyName"`
	Symbol        *string        `gorm:"type:text" json:"symbol"`
	Words         *string        `gorm:"type:text" json:"words"`
	MarkAsDefault bool           `gorm:"not null;default:false" json:"markAsDefault"`
	CreatedAt     time.Time      `gorm:"not null" json:"createdAt"`
	UpdatedAt     time.Time      `gorm:"not null" json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deletedAt"`
}

func (Currency) TableName() string { return "currencies" }

type PaymentTerm struct {
	ID            snowflake.ID   `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"type:text;not null" json:"name"`
	Term          *string        `gorm:"type:text" json:"term"`
	MarkAsDefault bool           `gorm:"not null;default:false" json:"markAsDefault"`
	CreatedAt     time.Time      `gorm:"not null" json:"createdAt"`
	UpdatedAt     time.Time      `gorm:"not null" json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deletedAt"`
}

func (PaymentTerm) TableName() string { return "payment_terms" }

type ShipmentTerm struct {
	ID            snowflake.ID   `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"type:text;not null" json:"name"`
	Term          *string        `gorm:"type:text" json:"term"`
	MarkAsDefault bool           `gorm:"not null;default:false" json:"markAsDefault"`
	CreatedAt     time.Time      `gorm:"not null" json:"createdAt"`
	UpdatedAt     time.Time      `gorm:"not null" json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deletedAt"`
}

func (ShipmentTerm) TableName() string { return "shipment_terms" }

type Material struct {
	ID            snowflake.ID   `gorm:"primaryKey" json:"id"`
	MaterialName  string         `gorm:"type:text;not null" json:"materialName"`
	MarkAsDefault bool           `gorm:"not null;default:false" json:"markAsDefault"`
	CreatedAt     time.Time      `gorm:"not null" json:"createdAt"`
	UpdatedAt     time.Time      `gorm:"not null" json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deletedAt"`
}

func (Material) TableName() string { return "materials" }

type PackageType struct {
	ID            snowflake.ID   `gorm:"primaryKey" json:"id"`
	PackageType   string         `gorm:"column:package_type;type:text;not null" json:"packageType"`
	MarkAsDefault bool           `gorm:"not null;default:false" json:"markAsDefault"`
	CreatedAt     time.Time      `gorm:"not null" json:"createdAt"`
	UpdatedAt     time.Time      `gorm:"not null" json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deletedAt"`
}

func (PackageType) TableName() string { return "package_types" }

type BankDetail struct {
	ID              snowflake.ID   `gorm:"primaryKey" json:"id"`
	BankName        string         `gorm:"type:text;not null" json:"bankName"`
	AccountNo       string         `gorm:"type:text;not null" json:"accountNo"`
	SwiftCode       string         `gorm:"type:text;not null" json:"swiftCode"`
	OtherDetails    *string        `gorm:"type:text" json:"otherDetails"`
	IfscCode        string         `gorm:"type:text;not null" json:"ifscCode"`
	IsVostroPayment string         `gorm:"type:text;not null;default:'N'" json:"isVostroPayment"`
	BeneficiaryName string         `gorm:"type:text;not null" json:"beneficiaryName"`
	AccountType     string         `gorm:"type:text;not null;default:'CURRENT ACCOUNT'" json:"accountType"`
	MarkAsDefault   bool           `gorm:"not null;default:false" json:"markAsDefault"`
	AdCode          string         `gorm:"type:text;not null" json:"adCode"`
	VostroType      *string        `gorm:"type:text" json:"vostroType"`
	CreatedAt       time.Time      `gorm:"not null" json:"createdAt"`
	UpdatedAt       time.Time      `gorm:"not null" json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deletedAt"`
}

func (BankDetail) TableName() string { return "bank_details" }

// UnitAdvanced holds optional packaging hints for a unit.
type UnitAdvanced struct {
	PackagingUnit string   `json:"packagingUnit,omitempty"`
	Weight        *float64 `json:"weight,omitempty"`
	Note          string   `json:"note,omitempty"`
}

type Unit struct {
	ID        snowflake.ID                     `gorm:"primaryKey" json:"id"`
	OrderUnit string                           `gorm:"type:text;not null" json:"orderUnit"`
	Default   bool                             `gorm:"column:is_default;not null;default:false" json:"default"`
	Advanced  datatypes.JSONType[UnitAdvanced] `gorm:"type:json" json:"advanced"`
	CreatedAt time.Time                        `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time                        `gorm:"not null" json:"updatedAt"`
	DeletedAt gorm.DeletedAt                   `gorm:"index" json:"deletedAt"`
}

func (Unit) TableName() string { return "units" }

type QualitySpeculation struct {
	ID            snowflake.ID   `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"type:text;not null" json:"name"`
	Specification string         `gorm:"type:text;not null" json:"specification"`
	CreatedAt     time.Time      `gorm:"not null" json:"createdAt"`
	UpdatedAt     time.Time      `gorm:"not null" json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deletedAt"`
}

func (QualitySpeculation) TableName() string { return "quality_speculations" }

func (m *Port) SetID(id snowflake.ID)               { m.ID = id }
func (m *Currency) SetID(id snowflake.ID)           { m.ID = id }
func (m *PaymentTerm) SetID(id snowflake.ID)        { m.ID = id }
func (m *ShipmentTerm) SetID(id snowflake.ID)       { m.ID = id }
func (m *Material) SetID(id snowflake.ID)           { m.ID = id }
func (m *PackageType) SetID(id snowflake.ID)        { m.ID = id }
func (m *BankDetail) SetID(id snowflake.ID)         { m.ID = id }
func (m *Unit) SetID(id snowflake.ID)               { m.ID = id }
func (m *QualitySpeculation) SetID(id snowflake.ID) { m.ID = id }

func (m *Currency) IsDefault() bool     { return m.MarkAsDefault }
func (m *PaymentTerm) IsDefault() bool  { return m.MarkAsDefault }
func (m *ShipmentTerm) IsDefault() bool { return m.MarkAsDefault }
func (m *Material) IsDefault() bool     { return m.MarkAsDefault }
func (m *PackageType) IsDefault() bool  { return m.MarkAsDefault }
func (m *BankDetail) IsDefault() bool   { return m.MarkAsDefault }
func (m *Unit) IsDefault() bool         { return m.Default }
