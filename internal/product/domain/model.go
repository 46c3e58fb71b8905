package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	settingsdomain "github.com/smallbiznis/tradedesk/internal/settings/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const DefaultInventoryType = "Finished Goods"

// Product is a sellable item. Packages are products created with only a
// unit and weights, so every descriptive column is nullable.
type Product struct {
	ID              snowflake.ID                        `gorm:"primaryKey" json:"id"`
	Name            *string                             `gorm:"type:text" json:"name"`
	HsnSac          *string                             `gorm:"column:hsn_sac;type:text" json:"hsnSac"`
	UnitID          snowflake.ID                        `gorm:"not null;index" json:"unitId"`
	Gst             float64                             `gorm:"not null;default:0" json:"gst"`
	Description     *string                             `gorm:"type:text" json:"description"`
	Image           *string                             `gorm:"type:text" json:"image"`
	InventoryType   string                              `gorm:"type:text;not null;default:'Finished Goods'" json:"inventoryType"`
	ProductTag      *string                             `gorm:"type:text" json:"productTag"`
	NetWeight       *float64                            `json:"netWeight"`
	GrossWeight     *float64                            `json:"grossWeight"`
	DimensionLength *float64                            `json:"dimensionLength"`
	DimensionWidth  *float64                            `json:"dimensionWidth"`
	DimensionHeight *float64                            `json:"dimensionHeight"`
	SellPrice       *float64                            `json:"sellPrice"`
	Variants        datatypes.JSONSlice[map[string]any] `gorm:"type:json" json:"variants"`
	CustomFields    datatypes.JSONSlice[map[string]any] `gorm:"type:json" json:"customFields"`
	Schemes         datatypes.JSONSlice[map[string]any] `gorm:"type:json" json:"schemes"`
	Unit            *settingsdomain.Unit                `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	CreatedAt       time.Time                           `gorm:"not null" json:"createdAt"`
	UpdatedAt       time.Time                           `gorm:"not null" json:"updatedAt"`
	DeletedAt       gorm.DeletedAt                      `gorm:"index" json:"deletedAt"`
}

func (Product) TableName() string { return "products" }

// Package is the packaging view over a product row.
type Package struct {
	ID          snowflake.ID         `json:"id"`
	UnitID      snowflake.ID         `json:"unitId"`
	NetWeight   *float64             `json:"netWeight"`
	GrossWeight *float64             `json:"grossWeight"`
	Unit        *settingsdomain.Unit `json:"unit"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

func PackageFromProduct(p *Product) Package {
	return Package{
		ID:          p.ID,
		UnitID:      p.UnitID,
		NetWeight:   p.NetWeight,
		GrossWeight: p.GrossWeight,
		Unit:        p.Unit,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
