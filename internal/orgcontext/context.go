package orgcontext

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// SuperAdminRole bypasses organization scoping.
const SuperAdminRole = "Super Admin"

// AdminRole may manage settings and documents inside its organization.
const AdminRole = "Admin"

// Identity is the authenticated caller resolved from the bearer token.
type Identity struct {
	UserID         snowflake.ID
	RoleID         snowflake.ID
	RoleName       string
	OrganizationID *snowflake.ID
}

// IsSuperAdmin reports whether the caller holds the Super Admin role.
func (i Identity) IsSuperAdmin() bool {
	return i.RoleName == SuperAdminRole
}

// IsAdmin reports whether the caller holds Admin or Super Admin.
func (i Identity) IsAdmin() bool {
	return i.RoleName == AdminRole || i.IsSuperAdmin()
}

type identityKey struct{}

// WithIdentity stores the caller identity in the context.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFromContext returns the caller identity, if set.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	identity, ok := ctx.Value(identityKey{}).(Identity)
	return identity, ok
}

// OrgIDFromContext returns the caller's organization, if any.
func OrgIDFromContext(ctx context.Context) (snowflake.ID, bool) {
	identity, ok := IdentityFromContext(ctx)
	if !ok || identity.OrganizationID == nil {
		return 0, false
	}
	return *identity.OrganizationID, true
}
