package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/golang-jwt/jwt/v5"
	"github.com/smallbiznis/tradedesk/internal/auth/domain"
	"github.com/smallbiznis/tradedesk/internal/clock"
	"github.com/smallbiznis/tradedesk/internal/config"
	"github.com/smallbiznis/tradedesk/internal/orgcontext"
	roledomain "github.com/smallbiznis/tradedesk/internal/role/domain"
	roleservice "github.com/smallbiznis/tradedesk/internal/role/service"
	userdomain "github.com/smallbiznis/tradedesk/internal/user/domain"
	userservice "github.com/smallbiznis/tradedesk/internal/user/service"
	"github.com/smallbiznis/tradedesk/pkg/db"
	"github.com/smallbiznis/tradedesk/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	auth  domain.Service
	clock *clock.FakeClock
	admin *userdomain.User
	users userdomain.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&roledomain.Role{}, &userdomain.User{}))
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	ctx := context.Background()
	roles := roleservice.New(roleservice.Params{DB: conn, Log: zap.NewNop(), GenID: node})
	adminRole, err := roles.Create(ctx, roledomain.CreateRoleRequest{Name: orgcontext.AdminRole})
	require.NoError(t, err)

	users := userservice.New(userservice.Params{DB: conn, Log: zap.NewNop(), GenID: node, Roles: roles})
	org := snowflake.ID(7)
	mobile := "+62-811-000"
	admin, err := users.Create(ctx, userdomain.CreateUserRequest{
		Name:           "Export Desk",
		Email:          "Desk@Example.com",
		Password:       "s3cret-pass",
		Mobile:         &mobile,
		RoleID:         adminRole.ID,
		OrganizationID: &org,
	})
	require.NoError(t, err)

	clk := clock.NewFakeClock(time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC))
	svc := New(Params{
		Log:    zap.NewNop(),
		Config: config.Config{AuthJWTSecret: "test-secret", AuthJWTTTL: time.Hour},
		Users:  users,
		Clock:  clk,
	})
	return fixture{auth: svc, clock: clk, admin: admin, users: users}
}

func TestLoginIssuesSignedToken(t *testing.T) {
	f := newFixture(t)

	res, err := f.auth.Login(context.Background(), domain.LoginRequest{Email: " desk@example.com ", Password: "s3cret-pass", IP: "10.0.0.1"})
	require.NoError(t, err)
	require.NotEmpty(t, res.AccessToken)

	var claims domain.Claims
	_, _, err = jwt.NewParser().ParseUnverified(res.AccessToken, &claims)
	require.NoError(t, err)
	assert.Equal(t, "desk@example.com", claims.Email)
	assert.Equal(t, f.admin.ID.String(), claims.Subject)
	assert.Equal(t, f.admin.RoleID.String(), claims.RoleID)
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Login(ctx, domain.LoginRequest{Email: "desk@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = f.auth.Login(ctx, domain.LoginRequest{Email: "nobody@example.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = f.auth.Login(ctx, domain.LoginRequest{})
	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Violations, 2)
}

func TestAuthenticateResolvesIdentity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res, err := f.auth.Login(ctx, domain.LoginRequest{Email: "desk@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	identity, err := f.auth.Authenticate(ctx, res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, f.admin.ID, identity.UserID)
	assert.Equal(t, f.admin.RoleID, identity.RoleID)
	assert.Equal(t, orgcontext.AdminRole, identity.RoleName)
	require.NotNil(t, identity.OrganizationID)
	assert.Equal(t, snowflake.ID(7), *identity.OrganizationID)

	f.clock.Advance(2 * time.Hour)
	_, err = f.auth.Authenticate(ctx, res.AccessToken)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestAuthenticateRejectsForeignOrMalformedTokens(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, domain.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   f.admin.ID.String(),
			ExpiresAt: jwt.NewNumericDate(f.clock.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("other-secret"))
	require.NoError(t, err)
	_, err = f.auth.Authenticate(ctx, forged)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = f.auth.Authenticate(ctx, "not-a-token")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = f.auth.Authenticate(ctx, "")
	assert.ErrorIs(t, err, orgcontext.ErrUnauthenticated)

	require.NoError(t, f.users.Delete(ctx, f.admin.ID))
	res, err := jwt.NewWithClaims(jwt.SigningMethodHS256, domain.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   f.admin.ID.String(),
			ExpiresAt: jwt.NewNumericDate(f.clock.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = f.auth.Authenticate(ctx, res)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestProfileHidesPassword(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.Profile(context.Background())
	assert.ErrorIs(t, err, orgcontext.ErrUnauthenticated)

	ctx := orgcontext.WithIdentity(context.Background(), orgcontext.Identity{UserID: f.admin.ID})
	profile, err := f.auth.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Export Desk", profile.Name)
	assert.Equal(t, f.admin.RoleID, profile.Role)
	assert.Equal(t, orgcontext.AdminRole, profile.RoleName)
	require.NotNil(t, profile.Mobile)
	assert.Equal(t, "+62-811-000", *profile.Mobile)
}
