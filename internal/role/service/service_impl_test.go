package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tradedesk/internal/role/domain"
	"github.com/smallbiznis/tradedesk/pkg/apperror"
	"github.com/smallbiznis/tradedesk/pkg/db"
	"github.com/smallbiznis/tradedesk/pkg/optional"
	"github.com/smallbiznis/tradedesk/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.Role{}))
	require.NoError(t, conn.Exec(`CREATE TABLE users (id INTEGER PRIMARY KEY, role_id INTEGER NOT NULL)`).Error)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return New(Params{DB: conn, Log: zap.NewNop(), GenID: node}), conn
}

func TestCreateTrimsNameAndDefaultsPermissions(t *testing.T) {
	svc, _ := newTestService(t)

	role, err := svc.Create(context.Background(), domain.CreateRoleRequest{Name: "  Sales  "})
	require.NoError(t, err)

	assert.Equal(t, "Sales", role.Name)
	assert.NotNil(t, role.Permissions)
	assert.Empty(t, role.Permissions)

	found, err := svc.FindByName(context.Background(), "Sales")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, role.ID, found.ID)
}

func TestCreateRequiresName(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), domain.CreateRoleRequest{Name: "   "})

	var vErr *validation.Error
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "name", vErr.Violations[0].Field)
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateRoleRequest{Name: "Finance"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.CreateRoleRequest{Name: "Finance"})
	var conflict *apperror.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "name", conflict.Field)
}

func TestUpdateKeepsOwnNameAndReplacesPermissions(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	role, err := svc.Create(ctx, domain.CreateRoleRequest{Name: "Finance", Permissions: []string{"invoice:view"}})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, role.ID, domain.UpdateRoleRequest{
		Name:        optional.Of("Finance"),
		Permissions: optional.Of([]string{"invoice:view", "invoice:export"}),
	})
	require.NoError(t, err)

	assert.Equal(t, "Finance", updated.Name)
	assert.Equal(t, []string{"invoice:view", "invoice:export"}, []string(updated.Permissions))
}

func TestUpdateRejectsNameOfAnotherRole(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateRoleRequest{Name: "Finance"})
	require.NoError(t, err)
	sales, err := svc.Create(ctx, domain.CreateRoleRequest{Name: "Sales"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, sales.ID, domain.UpdateRoleRequest{Name: optional.Of("Finance")})
	var conflict *apperror.ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestGetMissingRole(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = svc.Get(context.Background(), 12345)
	var notFound *apperror.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Role not found", notFound.Error())
}

func TestDeleteRefusesAssignedRole(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	role, err := svc.Create(ctx, domain.CreateRoleRequest{Name: "Sales"})
	require.NoError(t, err)
	require.NoError(t, conn.Exec(`INSERT INTO users (id, role_id) VALUES (?, ?)`, 1, role.ID).Error)

	assert.ErrorIs(t, svc.Delete(ctx, role.ID), domain.ErrRoleInUse)

	require.NoError(t, conn.Exec(`DELETE FROM users`).Error)
	require.NoError(t, svc.Delete(ctx, role.ID))

	_, err = svc.Get(ctx, role.ID)
	var notFound *apperror.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
