package domain

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tradedesk/pkg/db/pagination"
	"github.com/smallbiznis/tradedesk/pkg/optional"
)

type ListCustomerRequest struct {
	Page   int
	Limit  int
	Search string
}

type ListCustomerFilter struct {
	// OrganizationID restricts the listing; nil lists every organization.
	OrganizationID *snowflake.ID
	Search         string
	Limit          int
	Offset         int
}

type ListCustomerResponse struct {
	Data []Customer      `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

type CreateCustomerRequest struct {
	CustomerName    string        `json:"customerName"`
	Email           *string       `json:"email"`
	Country         string        `json:"country"`
	Company         *string       `json:"company"`
	Address         string        `json:"address"`
	Addresses       []Address     `json:"addresses"`
	BankName        *string       `json:"bankName"`
	BeneficiaryName *string       `json:"beneficiaryName"`
	AccountNo       *json.Number  `json:"accountNo"`
	AccountType     *string       `json:"accountType"`
	Other           *string       `json:"other"`
	OrganizationID  *snowflake.ID `json:"organizationId"`
}

type UpdateCustomerRequest struct {
	CustomerName    optional.Value[string]      `json:"customerName"`
	Email           optional.Value[string]      `json:"email"`
	Country         optional.Value[string]      `json:"country"`
	Company         optional.Value[string]      `json:"company"`
	Address         optional.Value[string]      `json:"address"`
	Addresses       optional.Value[[]Address]   `json:"addresses"`
	BankName        optional.Value[string]      `json:"bankName"`
	BeneficiaryName optional.Value[string]      `json:"beneficiaryName"`
	AccountNo       optional.Value[json.Number] `json:"accountNo"`
	AccountType     optional.Value[string]      `json:"accountType"`
	Other           optional.Value[string]      `json:"other"`
}

type Service interface {
	Create(ctx context.Context, req CreateCustomerRequest) (Customer, error)
	List(ctx context.Context, req ListCustomerRequest) (ListCustomerResponse, error)
	GetByID(ctx context.Context, id snowflake.ID) (Customer, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateCustomerRequest) (Customer, error)
	Delete(ctx context.Context, id snowflake.ID) error
}

var (
	ErrInvalidID = errors.New("invalid_id")
)

var searchColumns = []string{"customer_name", "email", "company"}

// SearchColumns lists the columns matched by the list search term.
func SearchColumns() []string {
	return append([]string(nil), searchColumns...)
}
