package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Role struct {
	ID          snowflake.ID                `gorm:"primaryKey" json:"id"`
	Name        string                      `gorm:"type:text;not null;uniqueIndex:ux_roles_name" json:"name"`
	Permissions datatypes.JSONSlice[string] `gorm:"type:json" json:"permissions"`
	CreatedAt   time.Time                   `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time                   `gorm:"not null" json:"updatedAt"`
}

func (Role) TableName() string { return "roles" }
