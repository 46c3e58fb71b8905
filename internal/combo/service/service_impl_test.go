package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tradedesk/internal/combo/domain"
	organizationdomain "github.com/smallbiznis/tradedesk/internal/organization/domain"
	"github.com/smallbiznis/tradedesk/internal/orgcontext"
	quotationdomain "github.com/smallbiznis/tradedesk/internal/quotation/domain"
	"github.com/smallbiznis/tradedesk/internal/reference"
	referencedomain "github.com/smallbiznis/tradedesk/internal/reference/domain"
	roledomain "github.com/smallbiznis/tradedesk/internal/role/domain"
	userdomain "github.com/smallbiznis/tradedesk/internal/user/domain"
	"github.com/smallbiznis/tradedesk/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	svc        domain.Service
	conn       *gorm.DB
	superAdmin roledomain.Role
	admin      roledomain.Role
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&roledomain.Role{},
		&userdomain.User{},
		&organizationdomain.Organization{},
		&quotationdomain.Quotation{},
		&referencedomain.Country{},
	))

	f := fixture{
		svc:        New(Params{DB: conn, Log: zap.NewNop(), Countries: reference.NewRepository(conn)}),
		conn:       conn,
		superAdmin: roledomain.Role{ID: 1, Name: orgcontext.SuperAdminRole},
		admin:      roledomain.Role{ID: 2, Name: orgcontext.AdminRole},
	}
	require.NoError(t, conn.Create(&f.superAdmin).Error)
	require.NoError(t, conn.Create(&f.admin).Error)

	users := []userdomain.User{
		{ID: 10, Name: "Root", Email: "root@x.io", PasswordHash: "x", RoleID: 1},
		{ID: 11, Name: "Ana", Email: "ana@x.io", PasswordHash: "x", RoleID: 2, OrganizationID: orgID(7)},
		{ID: 12, Name: "Budi", Email: "budi@x.io", PasswordHash: "x", RoleID: 2, OrganizationID: orgID(8)},
	}
	require.NoError(t, conn.Create(&users).Error)
	return f
}

func orgID(v int64) *snowflake.ID {
	id := snowflake.ID(v)
	return &id
}

func as(role string, org *snowflake.ID) context.Context {
	return orgcontext.WithIdentity(context.Background(), orgcontext.Identity{UserID: 99, RoleName: role, OrganizationID: org})
}

func TestUsersComboReturnsRolesPerUser(t *testing.T) {
	f := newFixture(t)

	items, err := f.svc.Users(as(orgcontext.SuperAdminRole, nil), "")
	require.NoError(t, err)
	assert.Equal(t, []domain.Item{
		{ID: "1", Label: orgcontext.SuperAdminRole},
		{ID: "2", Label: orgcontext.AdminRole},
		{ID: "2", Label: orgcontext.AdminRole},
	}, items)

	items, err = f.svc.Users(as(orgcontext.AdminRole, orgID(7)), "")
	require.NoError(t, err)
	assert.Equal(t, []domain.Item{{ID: "2", Label: orgcontext.AdminRole}}, items)

	items, err = f.svc.Users(as(orgcontext.SuperAdminRole, nil), "bud")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = f.svc.Users(as(orgcontext.AdminRole, nil), "")
	var forbidden *orgcontext.ForbiddenError
	require.True(t, errors.As(err, &forbidden))
	assert.Equal(t, orgcontext.MessageOrganizationRequired, forbidden.Message)
}

func TestRolesAndOrganizations(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.conn.Create(&[]organizationdomain.Organization{
		{ID: 7, Name: "Jakarta Exports", Slug: "jakarta-exports"},
		{ID: 8, Name: "Bali Traders", Slug: "bali-traders"},
	}).Error)

	roles, err := f.svc.Roles(context.Background(), "super")
	require.NoError(t, err)
	assert.Equal(t, []domain.Item{{ID: "1", Label: orgcontext.SuperAdminRole}}, roles)

	orgs, err := f.svc.Organizations(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []domain.Item{{ID: "8", Label: "Bali Traders"}, {ID: "7", Label: "Jakarta Exports"}}, orgs)
}

func TestQuotationsComboSkipsDeletedAndForeign(t *testing.T) {
	f := newFixture(t)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	quotations := []quotationdomain.Quotation{
		{ID: 100, QuotationNo: "QT-2025-0001", OrganizationID: orgID(7), CreatedAt: base},
		{ID: 101, QuotationNo: "QT-2025-0002", OrganizationID: orgID(7), CreatedAt: base.Add(time.Hour)},
		{ID: 102, QuotationNo: "QT-2025-0003", OrganizationID: orgID(8), CreatedAt: base.Add(2 * time.Hour)},
	}
	require.NoError(t, f.conn.Create(&quotations).Error)
	require.NoError(t, f.conn.Delete(&quotationdomain.Quotation{}, 100).Error)

	items, err := f.svc.Quotations(as(orgcontext.AdminRole, orgID(7)), "")
	require.NoError(t, err)
	assert.Equal(t, []domain.Item{{ID: "101", Label: "QT-2025-0002"}}, items)

	items, err = f.svc.Quotations(as(orgcontext.SuperAdminRole, nil), "0003")
	require.NoError(t, err)
	assert.Equal(t, []domain.Item{{ID: "102", Label: "QT-2025-0003"}}, items)
}

func TestCountriesCombo(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.conn.Create(&[]referencedomain.Country{
		{Code: "ID", Name: "Indonesia"},
		{Code: "IN", Name: "India"},
		{Code: "DE", Name: "Germany"},
	}).Error)

	items, err := f.svc.Countries(context.Background(), "ind")
	require.NoError(t, err)
	assert.Equal(t, []domain.Item{{ID: "IN", Label: "India"}, {ID: "ID", Label: "Indonesia"}}, items)
}
