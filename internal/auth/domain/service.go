package domain

import (
	"context"

	"github.com/smallbiznis/tradedesk/internal/orgcontext"
)

type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResult, error)
	// Authenticate verifies a bearer token and resolves the caller from
	// the current user and role rows.
	Authenticate(ctx context.Context, rawToken string) (orgcontext.Identity, error)
	Profile(ctx context.Context) (Profile, error)
}
