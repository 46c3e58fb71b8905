package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tradedesk/pkg/optional"
)

type Service interface {
	Create(ctx context.Context, req CreateRoleRequest) (*Role, error)
	List(ctx context.Context) ([]Role, error)
	Get(ctx context.Context, id snowflake.ID) (*Role, error)
	FindByName(ctx context.Context, name string) (*Role, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateRoleRequest) (*Role, error)
	Delete(ctx context.Context, id snowflake.ID) error
}

type CreateRoleRequest struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

type UpdateRoleRequest struct {
	Name        optional.Value[string]   `json:"name"`
	Permissions optional.Value[[]string] `json:"permissions"`
}

var (
	ErrInvalidID = errors.New("invalid_id")
	// ErrRoleInUse is returned when users still hold the role.
	ErrRoleInUse = errors.New("role_in_use")
)
