package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Address is one entry of a customer's address book. Documents refer to
// it by 1-based position.
type Address struct {
	Name        string `json:"name,omitempty"`
	Label       string `json:"label,omitempty"`
	AddressLine string `json:"addressLine,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	Country     string `json:"country,omitempty"`
	PostalCode  string `json:"postalCode,omitempty"`
}

type Customer struct {
	ID              snowflake.ID                 `gorm:"primaryKey" json:"id"`
	CustomerName    string                       `gorm:"type:text;not null" json:"customerName"`
	Email           *string                      `gorm:"type:text" json:"email"`
	Country         string                       `gorm:"type:text;not null" json:"country"`
	Company         *string                      `gorm:"type:text" json:"company"`
	Address         string                       `gorm:"type:text;not null" json:"address"`
	Addresses       datatypes.JSONSlice[Address] `gorm:"type:json" json:"addresses"`
	BankName        *string                      `gorm:"type:text" json:"bankName"`
	BeneficiaryName *string                      `gorm:"type:text" json:"beneficiaryName"`
	AccountNo       *string                      `gorm:"type:text" json:"accountNo"`
	AccountType     *string                      `gorm:"type:text" json:"accountType"`
	Other           *string                      `gorm:"type:text" json:"other"`
	OrganizationID  *snowflake.ID                `gorm:"index" json:"organizationId"`
	ManagerID       *snowflake.ID                `gorm:"index" json:"managerId"`
	CreatedAt       time.Time                    `gorm:"not null" json:"createdAt"`
	UpdatedAt       time.Time                    `gorm:"not null" json:"updatedAt"`
	DeletedAt       gorm.DeletedAt               `gorm:"index" json:"deletedAt"`
}

func (Customer) TableName() string { return "customers" }

// AddressAt resolves a 1-based address position.
func (c *Customer) AddressAt(position int) (Address, bool) {
	if c == nil || position < 1 || position > len(c.Addresses) {
		return Address{}, false
	}
	return c.Addresses[position-1], true
}
