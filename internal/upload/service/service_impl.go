package service

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
	"github.com/oklog/ulid/v2"
	"github.com/smallbiznis/tradedesk/internal/clock"
	"github.com/smallbiznis/tradedesk/internal/config"
	"github.com/smallbiznis/tradedesk/internal/upload/domain"
	"github.com/smallbiznis/tradedesk/pkg/validation"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const bytesPerMB = 1024 * 1024

type Params struct {
	fx.In

	Log      *zap.Logger
	Storage  domain.Storage
	Clock    clock.Clock
	Policies *config.DocumentConfigHolder `optional:"true"`
}

type Service struct {
	log      *zap.Logger
	storage  domain.Storage
	clock    clock.Clock
	policies *config.DocumentConfigHolder
}

func New(p Params) domain.Service {
	return &Service{
		log:      p.Log.Named("upload.service"),
		storage:  p.Storage,
		clock:    p.Clock,
		policies: p.Policies,
	}
}

func (s *Service) policy() config.UploadPolicy {
	if s.policies == nil {
		return config.DefaultDocumentConfig().Upload
	}
	return s.policies.Get().Upload
}

func (s *Service) Upload(ctx context.Context, in domain.FileInput) (domain.File, error) {
	if in.Body == nil || in.OriginalName == "" {
		return domain.File{}, validation.New("file", validation.CodeRequired, "No file uploaded")
	}
	policy := s.policy()
	if in.Size > policy.MaxBytes() {
		return domain.File{}, validation.New("file", validation.CodeInvalid,
			fmt.Sprintf("File too large. Maximum size is %dMB", policy.MaxSizeMB))
	}
	ext := strings.ToLower(filepath.Ext(in.OriginalName))
	if !policy.AllowsExtension(ext) {
		return domain.File{}, validation.New("file", validation.CodeInvalid,
			fmt.Sprintf("File type %q is not allowed", ext))
	}

	now := s.clock.Now()
	name := StoredName(in.OriginalName, now.UnixMilli(), ulid.Make())
	path, err := s.storage.Put(ctx, name, in.Body, in.ContentType)
	if err != nil {
		return domain.File{}, fmt.Errorf("store upload: %w", err)
	}

	encoding := in.Encoding
	if encoding == "" {
		encoding = "7bit"
	}
	s.log.Info("file uploaded",
		zap.String("driver", s.storage.Driver()),
		zap.String("filename", name),
		zap.Int64("size", in.Size),
	)
	return domain.File{
		OriginalName: in.OriginalName,
		Filename:     name,
		Path:         path,
		Size:         in.Size,
		SizeInMB:     math.Round(float64(in.Size)/bytesPerMB*100) / 100,
		Mimetype:     in.ContentType,
		Encoding:     encoding,
		UploadedAt:   now,
	}, nil
}

// StoredName builds <slug>-<unixMillis>-<ulid><ext> from the client file
// name.
func StoredName(original string, millis int64, id ulid.ULID) string {
	ext := strings.ToLower(filepath.Ext(original))
	base := slug.Make(strings.TrimSuffix(filepath.Base(original), filepath.Ext(original)))
	if base == "" {
		base = "file"
	}
	return fmt.Sprintf("%s-%d-%s%s", base, millis, strings.ToLower(id.String()), ext)
}
