package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tradedesk/pkg/db/pagination"
	"github.com/smallbiznis/tradedesk/pkg/optional"
)

type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (*User, error)
	List(ctx context.Context, req ListUserRequest) (ListUserResponse, error)
	Get(ctx context.Context, id snowflake.ID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateUserRequest) (*User, error)
	Delete(ctx context.Context, id snowflake.ID) error
}

type CreateUserRequest struct {
	Name           string        `json:"name"`
	Email          string        `json:"email"`
	Password       string        `json:"password"`
	Mobile         *string       `json:"mobile"`
	RoleID         snowflake.ID  `json:"roleId"`
	OrganizationID *snowflake.ID `json:"organizationId"`
}

type UpdateUserRequest struct {
	Name           optional.Value[string]       `json:"name"`
	Email          optional.Value[string]       `json:"email"`
	Password       optional.Value[string]       `json:"password"`
	Mobile         optional.Value[string]       `json:"mobile"`
	RoleID         optional.Value[snowflake.ID] `json:"roleId"`
	OrganizationID optional.Value[snowflake.ID] `json:"organizationId"`
}

type ListUserRequest struct {
	Page        int
	Limit       int
	Search      string
	RoleID      *snowflake.ID
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

type ListUserResponse struct {
	Data []User          `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

var (
	ErrInvalidID = errors.New("invalid_id")
)
