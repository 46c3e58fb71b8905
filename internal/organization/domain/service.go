package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tradedesk/pkg/db/pagination"
	"github.com/smallbiznis/tradedesk/pkg/optional"
)

type Service interface {
	Create(ctx context.Context, req CreateOrganizationRequest) (*Organization, error)
	List(ctx context.Context, req ListOrganizationRequest) (ListOrganizationResponse, error)
	GetByID(ctx context.Context, id snowflake.ID) (*Organization, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateOrganizationRequest) (*Organization, error)
	Delete(ctx context.Context, id snowflake.ID) error
}

type CreateOrganizationRequest struct {
	Name    string  `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

type UpdateOrganizationRequest struct {
	Name    optional.Value[string] `json:"name"`
	Email   optional.Value[string] `json:"email"`
	Phone   optional.Value[string] `json:"phone"`
	Address optional.Value[string] `json:"address"`
}

type ListOrganizationRequest struct {
	Page   int
	Limit  int
	Search string
}

type ListOrganizationResponse struct {
	Data []Organization  `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
)
