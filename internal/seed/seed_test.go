package seed

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tradedesk/internal/auth/password"
	"github.com/smallbiznis/tradedesk/internal/config"
	"github.com/smallbiznis/tradedesk/internal/orgcontext"
	referencedomain "github.com/smallbiznis/tradedesk/internal/reference/domain"
	roledomain "github.com/smallbiznis/tradedesk/internal/role/domain"
	userdomain "github.com/smallbiznis/tradedesk/internal/user/domain"
	"github.com/smallbiznis/tradedesk/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newSeeder(t *testing.T, bootstrap config.BootstrapConfig) (*Seeder, *gorm.DB) {
	t.Helper()
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&referencedomain.Country{}, &roledomain.Role{}, &userdomain.User{}))
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return New(Params{
		DB:     conn,
		Log:    zap.NewNop(),
		Config: config.Config{Bootstrap: bootstrap},
		GenID:  node,
	}), conn
}

func TestRunIsIdempotent(t *testing.T) {
	seeder, conn := newSeeder(t, config.BootstrapConfig{
		Enabled:       true,
		AdminEmail:    "Root@Tradedesk.local",
		AdminPassword: "admin123",
		AdminName:     "super admin",
	})
	ctx := context.Background()
	require.NoError(t, seeder.Run(ctx))
	require.NoError(t, seeder.Run(ctx))

	var roles []roledomain.Role
	require.NoError(t, conn.Order("name").Find(&roles).Error)
	require.Len(t, roles, 2)
	assert.Equal(t, orgcontext.AdminRole, roles[0].Name)
	assert.Equal(t, orgcontext.SuperAdminRole, roles[1].Name)
	assert.Equal(t, []string{"all"}, []string(roles[1].Permissions))

	var users []userdomain.User
	require.NoError(t, conn.Preload("Role").Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "root@tradedesk.local", users[0].Email)
	assert.Equal(t, orgcontext.SuperAdminRole, users[0].RoleName())
	assert.Nil(t, users[0].OrganizationID)
	assert.True(t, password.Verify("admin123", users[0].PasswordHash))

	var count int64
	require.NoError(t, conn.Model(&referencedomain.Country{}).Count(&count).Error)
	assert.Equal(t, int64(len(countries)), count)
}

func TestRunWithoutBootstrapSkipsAdmin(t *testing.T) {
	seeder, conn := newSeeder(t, config.BootstrapConfig{})
	require.NoError(t, seeder.Run(context.Background()))

	var count int64
	require.NoError(t, conn.Model(&userdomain.User{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, conn.Model(&roledomain.Role{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}
