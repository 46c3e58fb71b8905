package migration

import (
	"context"

	"github.com/smallbiznis/tradedesk/internal/seed"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, seeder *seed.Seeder, log *zap.Logger) error {
		ctx := context.Background()
		if err := Migrate(ctx, conn, log.Named("migration")); err != nil {
			return err
		}
		return seeder.Run(ctx)
	}),
)
