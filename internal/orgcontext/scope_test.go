package orgcontext

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveScope(t *testing.T) {
	org := snowflake.ID(7)
	other := snowflake.ID(8)

	_, err := ResolveScope(context.Background())
	assert.ErrorIs(t, err, ErrUnauthenticated)

	scope, err := ResolveScope(WithIdentity(context.Background(), Identity{UserID: 1, RoleName: SuperAdminRole}))
	require.NoError(t, err)
	assert.True(t, scope.Unrestricted)
	assert.True(t, scope.Allows(nil))
	assert.Nil(t, scope.Owner())

	_, err = ResolveScope(WithIdentity(context.Background(), Identity{UserID: 2, RoleName: AdminRole}))
	var forbidden *ForbiddenError
	require.ErrorAs(t, err, &forbidden)
	assert.Equal(t, MessageOrganizationRequired, forbidden.Message)

	scope, err = ResolveScope(WithIdentity(context.Background(), Identity{UserID: 3, RoleName: AdminRole, OrganizationID: &org}))
	require.NoError(t, err)
	assert.False(t, scope.Unrestricted)
	assert.True(t, scope.Allows(&org))
	assert.False(t, scope.Allows(&other))
	assert.False(t, scope.Allows(nil))
	require.NotNil(t, scope.Owner())
	assert.Equal(t, org, *scope.Owner())

	err = scope.CheckAccess(&other)
	require.ErrorAs(t, err, &forbidden)
	assert.Equal(t, MessageAccessDenied, forbidden.Message)
}
