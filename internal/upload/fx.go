package upload

import (
	"context"
	"fmt"

	"github.com/smallbiznis/tradedesk/internal/config"
	"github.com/smallbiznis/tradedesk/internal/upload/domain"
	"github.com/smallbiznis/tradedesk/internal/upload/service"
	"github.com/smallbiznis/tradedesk/internal/upload/storage"
	"go.uber.org/fx"
)

var Module = fx.Module("upload.service",
	fx.Provide(NewStorage),
	fx.Provide(service.New),
)

// NewStorage selects the storage driver named by UPLOAD_DRIVER.
func NewStorage(lc fx.Lifecycle, cfg config.Config) (domain.Storage, error) {
	switch cfg.Upload.Driver {
	case "", "local":
		return storage.NewLocal(cfg.Upload.Dir)
	case "gcs":
		bucket, err := storage.NewGCS(context.Background(), cfg.Upload.GCSBucket)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.StopHook(bucket.Close))
		return bucket, nil
	default:
		return nil, fmt.Errorf("unknown upload driver %q", cfg.Upload.Driver)
	}
}
