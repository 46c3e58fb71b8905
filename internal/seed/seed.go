package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tradedesk/internal/auth/password"
	"github.com/smallbiznis/tradedesk/internal/config"
	"github.com/smallbiznis/tradedesk/internal/orgcontext"
	"github.com/smallbiznis/tradedesk/internal/ratelimit"
	referencedomain "github.com/smallbiznis/tradedesk/internal/reference/domain"
	roledomain "github.com/smallbiznis/tradedesk/internal/role/domain"
	userdomain "github.com/smallbiznis/tradedesk/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	lockKey = "tradedesk:seed"
	lockTTL = time.Minute
)

var Module = fx.Module("seed",
	fx.Provide(New),
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	Config config.Config
	GenID  *snowflake.Node
	Locker *ratelimit.Locker `optional:"true"`
}

// Seeder inserts the rows a fresh install needs. Every step is idempotent.
type Seeder struct {
	db     *gorm.DB
	log    *zap.Logger
	cfg    config.Config
	genID  *snowflake.Node
	locker *ratelimit.Locker
}

func New(p Params) *Seeder {
	return &Seeder{
		db:     p.DB,
		log:    p.Log.Named("seed"),
		cfg:    p.Config,
		genID:  p.GenID,
		locker: p.Locker,
	}
}

func (s *Seeder) Run(ctx context.Context) error {
	err := s.locker.Run(ctx, lockKey, lockTTL, s.seed)
	if errors.Is(err, ratelimit.ErrLockHeld) {
		s.log.Info("another instance is seeding, skipping")
		return nil
	}
	return err
}

func (s *Seeder) seed(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureCountries(tx); err != nil {
			return err
		}
		superAdmin, err := s.ensureRole(tx, orgcontext.SuperAdminRole, []string{"all"})
		if err != nil {
			return err
		}
		if _, err := s.ensureRole(tx, orgcontext.AdminRole, []string{}); err != nil {
			return err
		}
		if !s.cfg.Bootstrap.Enabled {
			return nil
		}
		return s.ensureAdmin(tx, superAdmin)
	})
}

func (s *Seeder) ensureRole(tx *gorm.DB, name string, permissions []string) (roledomain.Role, error) {
	var role roledomain.Role
	err := tx.Where("name = ?", name).First(&role).Error
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return role, err
	}
	role = roledomain.Role{
		ID:          s.genID.Generate(),
		Name:        name,
		Permissions: permissions,
	}
	if err := tx.Create(&role).Error; err != nil {
		return role, err
	}
	s.log.Info("role seeded", zap.String("role", name))
	return role, nil
}

func (s *Seeder) ensureAdmin(tx *gorm.DB, role roledomain.Role) error {
	email := strings.ToLower(strings.TrimSpace(s.cfg.Bootstrap.AdminEmail))
	if email == "" || s.cfg.Bootstrap.AdminPassword == "" {
		return errors.New("bootstrap admin email and password are required")
	}

	var count int64
	if err := tx.Model(&userdomain.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := password.Hash(s.cfg.Bootstrap.AdminPassword)
	if err != nil {
		return err
	}
	name := strings.TrimSpace(s.cfg.Bootstrap.AdminName)
	if name == "" {
		name = email
	}
	user := userdomain.User{
		ID:           s.genID.Generate(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		RoleID:       role.ID,
	}
	if err := tx.Create(&user).Error; err != nil {
		return err
	}
	s.log.Info("bootstrap admin created", zap.String("email", email))
	return nil
}

func ensureCountries(tx *gorm.DB) error {
	rows := make([]referencedomain.Country, 0, len(countries))
	for _, c := range countries {
		rows = append(rows, referencedomain.Country{Code: c[0], Name: c[1]})
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(rows, 100).Error
}
