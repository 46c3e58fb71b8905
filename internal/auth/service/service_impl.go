package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/golang-jwt/jwt/v5"
	"github.com/smallbiznis/tradedesk/internal/auth/domain"
	"github.com/smallbiznis/tradedesk/internal/auth/password"
	"github.com/smallbiznis/tradedesk/internal/clock"
	"github.com/smallbiznis/tradedesk/internal/config"
	"github.com/smallbiznis/tradedesk/internal/observability/metrics"
	"github.com/smallbiznis/tradedesk/internal/orgcontext"
	"github.com/smallbiznis/tradedesk/internal/ratelimit"
	userdomain "github.com/smallbiznis/tradedesk/internal/user/domain"
	"github.com/smallbiznis/tradedesk/pkg/apperror"
	"github.com/smallbiznis/tradedesk/pkg/validation"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const devSecret = "tradedesk-development-secret"

type Params struct {
	fx.In

	Log     *zap.Logger
	Config  config.Config
	Users   userdomain.Service
	Clock   clock.Clock             `optional:"true"`
	Limiter *ratelimit.LoginLimiter `optional:"true"`
	Metrics *metrics.Metrics        `optional:"true"`
}

type Service struct {
	log     *zap.Logger
	users   userdomain.Service
	clock   clock.Clock
	limiter *ratelimit.LoginLimiter
	metrics *metrics.Metrics
	secret  []byte
	ttl     time.Duration
}

func New(p Params) domain.Service {
	log := p.Log.Named("auth.service")
	secret := p.Config.AuthJWTSecret
	if secret == "" && !p.Config.IsProduction() {
		log.Warn("AUTH_JWT_SECRET is empty, using the development secret")
		secret = devSecret
	}
	ttl := p.Config.AuthJWTTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	clk := p.Clock
	if clk == nil {
		clk = clock.System()
	}
	return &Service{
		log:     log,
		users:   p.Users,
		clock:   clk,
		limiter: p.Limiter,
		metrics: p.Metrics,
		secret:  []byte(secret),
		ttl:     ttl,
	}
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var c validation.Collector
	c.Required("email", email)
	if req.Password == "" {
		c.Add("password", validation.CodeRequired, "password is required")
	}
	if err := c.Err(); err != nil {
		return domain.LoginResult{}, err
	}

	if err := s.limiter.Allow(ctx, req.IP, email); err != nil {
		s.metrics.RecordLogin(ctx, "rate_limited")
		s.metrics.RecordRateLimitDenied(ctx, "auth.login")
		return domain.LoginResult{}, err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return domain.LoginResult{}, err
	}
	if user == nil || !password.Verify(req.Password, user.PasswordHash) {
		s.metrics.RecordLogin(ctx, "invalid_credentials")
		return domain.LoginResult{}, domain.ErrInvalidCredentials
	}

	token, err := s.sign(user)
	if err != nil {
		return domain.LoginResult{}, err
	}

	s.metrics.RecordLogin(ctx, "success")
	s.log.Info("user signed in", zap.String("user_id", user.ID.String()))
	return domain.LoginResult{AccessToken: token}, nil
}

func (s *Service) sign(user *userdomain.User) (string, error) {
	if len(s.secret) == 0 {
		return "", domain.ErrMissingSecret
	}
	now := s.clock.Now()
	claims := domain.Claims{
		Email:  user.Email,
		RoleID: user.RoleID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Service) Authenticate(ctx context.Context, rawToken string) (orgcontext.Identity, error) {
	if len(s.secret) == 0 {
		return orgcontext.Identity{}, domain.ErrMissingSecret
	}
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return orgcontext.Identity{}, orgcontext.ErrUnauthenticated
	}

	var claims domain.Claims
	_, err := jwt.ParseWithClaims(rawToken, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		s.log.Debug("token rejected", zap.Error(err))
		return orgcontext.Identity{}, domain.ErrInvalidToken
	}

	userID, err := snowflake.ParseString(claims.Subject)
	if err != nil || userID == 0 {
		return orgcontext.Identity{}, domain.ErrInvalidToken
	}
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return orgcontext.Identity{}, domain.ErrInvalidToken
		}
		return orgcontext.Identity{}, err
	}

	return orgcontext.Identity{
		UserID:         user.ID,
		RoleID:         user.RoleID,
		RoleName:       user.RoleName(),
		OrganizationID: user.OrganizationID,
	}, nil
}

func (s *Service) Profile(ctx context.Context) (domain.Profile, error) {
	identity, ok := orgcontext.IdentityFromContext(ctx)
	if !ok {
		return domain.Profile{}, orgcontext.ErrUnauthenticated
	}
	user, err := s.users.Get(ctx, identity.UserID)
	if err != nil {
		return domain.Profile{}, err
	}
	return domain.Profile{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Mobile:         user.Mobile,
		Role:           user.RoleID,
		RoleName:       user.RoleName(),
		OrganizationID: user.OrganizationID,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}, nil
}
