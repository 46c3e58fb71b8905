package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	roledomain "github.com/smallbiznis/tradedesk/internal/role/domain"
)

// User has no soft delete; deleting a user removes the row.
type User struct {
	ID             snowflake.ID     `gorm:"primaryKey" json:"id"`
	Name           string           `gorm:"type:text;not null" json:"name"`
	Email          string           `gorm:"type:text;not null;uniqueIndex:ux_users_email" json:"email"`
	PasswordHash   string           `gorm:"column:password;type:text;not null" json:"-"`
	Mobile         *string          `gorm:"type:text" json:"mobile"`
	RoleID         snowflake.ID     `gorm:"not null;index" json:"roleId"`
	Role           *roledomain.Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	OrganizationID *snowflake.ID    `gorm:"index" json:"organizationId"`
	CreatedAt      time.Time        `gorm:"not null" json:"createdAt"`
	UpdatedAt      time.Time        `gorm:"not null" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// RoleName returns the preloaded role name, empty when not loaded.
func (u *User) RoleName() string {
	if u == nil || u.Role == nil {
		return ""
	}
	return u.Role.Name
}
