package orgcontext

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

var ErrUnauthenticated = errors.New("unauthenticated")

// ForbiddenError rejects a caller that is authenticated but not allowed.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	if e == nil || e.Message == "" {
		return "forbidden"
	}
	return e.Message
}

const (
	MessageOrganizationRequired = "User must belong to an organization"
	MessageAccessDenied         = "Access denied"
)

// Scope describes which organization a caller may read.
// Unrestricted is true for Super Admin; otherwise OrganizationID is set.
type Scope struct {
	Unrestricted   bool
	OrganizationID snowflake.ID
}

// ResolveScope derives the organization filter for the caller.
func ResolveScope(ctx context.Context) (Scope, error) {
	identity, ok := IdentityFromContext(ctx)
	if !ok {
		return Scope{}, ErrUnauthenticated
	}
	if identity.IsSuperAdmin() {
		return Scope{Unrestricted: true}, nil
	}
	if identity.OrganizationID == nil {
		return Scope{}, &ForbiddenError{Message: MessageOrganizationRequired}
	}
	return Scope{OrganizationID: *identity.OrganizationID}, nil
}

// Allows reports whether a record owned by orgID is visible in the scope.
func (s Scope) Allows(orgID *snowflake.ID) bool {
	if s.Unrestricted {
		return true
	}
	return orgID != nil && *orgID == s.OrganizationID
}

// CheckAccess returns Forbidden "Access denied" when the record lies outside the scope.
func (s Scope) CheckAccess(orgID *snowflake.ID) error {
	if s.Allows(orgID) {
		return nil
	}
	return &ForbiddenError{Message: MessageAccessDenied}
}

// Owner is the organization records are filtered by and stamped with. It is
// nil for an unrestricted scope.
func (s Scope) Owner() *snowflake.ID {
	if s.Unrestricted {
		return nil
	}
	orgID := s.OrganizationID
	return &orgID
}
