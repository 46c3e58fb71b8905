package config

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// ListingPolicy bounds offset pagination on list endpoints.
type ListingPolicy struct {
	DefaultLimit int `mapstructure:"defaultLimit"`
	MaxLimit     int `mapstructure:"maxLimit"`
}

// UploadPolicy bounds single-file uploads.
type UploadPolicy struct {
	MaxSizeMB         int      `mapstructure:"maxSizeMB"`
	AllowedExtensions []string `mapstructure:"allowedExtensions"`
}

// DocumentConfig is the hot-reloadable part of the configuration.
type DocumentConfig struct {
	Listing ListingPolicy `mapstructure:"listing"`
	Upload  UploadPolicy  `mapstructure:"upload"`
}

func DefaultDocumentConfig() DocumentConfig {
	return DocumentConfig{
		Listing: ListingPolicy{DefaultLimit: 10, MaxLimit: 100},
		Upload:  UploadPolicy{MaxSizeMB: 5},
	}
}

// AllowsExtension reports whether ext (with leading dot) may be uploaded.
// An empty allow list accepts every extension.
func (p UploadPolicy) AllowsExtension(ext string) bool {
	if len(p.AllowedExtensions) == 0 {
		return true
	}
	ext = strings.ToLower(strings.TrimSpace(ext))
	for _, allowed := range p.AllowedExtensions {
		allowed = strings.ToLower(strings.TrimSpace(allowed))
		if !strings.HasPrefix(allowed, ".") {
			allowed = "." + allowed
		}
		if allowed == ext {
			return true
		}
	}
	return false
}

// MaxBytes returns the upload size limit in bytes.
func (p UploadPolicy) MaxBytes() int64 {
	return int64(p.MaxSizeMB) * 1024 * 1024
}

type DocumentConfigHolder struct {
	current atomic.Value // holds DocumentConfig
}

// NewStaticDocumentConfigHolder returns a holder that never reloads.
func NewStaticDocumentConfigHolder(cfg DocumentConfig) *DocumentConfigHolder {
	holder := &DocumentConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func NewDocumentConfigHolder(log *zap.Logger) (*DocumentConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("documents")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/tradedesk")
	v.AddConfigPath(".")

	v.SetEnvPrefix("TRADEDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultDocumentConfig()
	v.SetDefault("listing.defaultLimit", defaults.Listing.DefaultLimit)
	v.SetDefault("listing.maxLimit", defaults.Listing.MaxLimit)
	v.SetDefault("upload.maxSizeMB", defaults.Upload.MaxSizeMB)
	v.SetDefault("upload.allowedExtensions", defaults.Upload.AllowedExtensions)

	watch := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		watch = false
	}

	var cfg DocumentConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := validateDocumentConfig(cfg); err != nil {
		return nil, err
	}

	holder := NewStaticDocumentConfigHolder(cfg)
	if !watch {
		return holder, nil
	}

	log = log.Named("config.documents")
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated DocumentConfig
		if err := v.Unmarshal(&updated); err != nil {
			log.Warn("reload failed", zap.Error(err))
			return
		}
		if err := validateDocumentConfig(updated); err != nil {
			log.Warn("invalid config ignored", zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("reloaded", zap.String("file", e.Name))
	})
	v.WatchConfig()

	return holder, nil
}

// Get returns the current policy. A nil holder yields the defaults.
func (h *DocumentConfigHolder) Get() DocumentConfig {
	if h == nil {
		return DefaultDocumentConfig()
	}
	return h.current.Load().(DocumentConfig)
}

func validateDocumentConfig(cfg DocumentConfig) error {
	if cfg.Listing.DefaultLimit < 1 {
		return errors.New("listing.defaultLimit must be at least 1")
	}
	if cfg.Listing.MaxLimit < cfg.Listing.DefaultLimit {
		return errors.New("listing.maxLimit must not be below listing.defaultLimit")
	}
	if cfg.Upload.MaxSizeMB < 1 {
		return errors.New("upload.maxSizeMB must be at least 1")
	}
	return nil
}
