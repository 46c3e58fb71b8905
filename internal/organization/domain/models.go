// Package domain contains persistence models for the organization service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	userdomain "github.com/smallbiznis/tradedesk/internal/user/domain"
	"gorm.io/gorm"
)

// Organization represents a tenant.
type Organization struct {
	ID        snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name      string            `gorm:"type:text;not null" json:"name"`
	Slug      string            `gorm:"type:text;not null;index:ix_organizations_slug" json:"slug"`
	Email     *string           `gorm:"type:text" json:"email"`
	Phone     *string           `gorm:"type:text" json:"phone"`
	Address   *string           `gorm:"type:text" json:"address"`
	Users     []userdomain.User `gorm:"foreignKey:OrganizationID" json:"users,omitempty"`
	CreatedAt time.Time         `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time         `gorm:"not null" json:"updatedAt"`
	DeletedAt gorm.DeletedAt    `gorm:"index" json:"deletedAt"`
}

// TableName sets the database table name.
func (Organization) TableName() string { return "organizations" }
