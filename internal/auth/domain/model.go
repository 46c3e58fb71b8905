package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the access token payload. Subject holds the user id.
type Claims struct {
	Email  string `json:"email"`
	RoleID string `json:"roleId"`
	jwt.RegisteredClaims
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	IP       string `json:"-"`
}

type LoginResult struct {
	AccessToken string `json:"access_token"`
}

// Profile is the signed-in user as returned by GET /auth/profile.
type Profile struct {
	ID             snowflake.ID  `json:"id"`
	Name           string        `json:"name"`
	Email          string        `json:"email"`
	Mobile         *string       `json:"mobile"`
	Role           snowflake.ID  `json:"role"`
	RoleName       string        `json:"roleName"`
	OrganizationID *snowflake.ID `json:"organizationId"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}
