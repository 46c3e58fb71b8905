package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/smallbiznis/tradedesk/internal/clock"
	"github.com/smallbiznis/tradedesk/internal/config"
	"github.com/smallbiznis/tradedesk/internal/upload/domain"
	"github.com/smallbiznis/tradedesk/internal/upload/storage"
	"github.com/smallbiznis/tradedesk/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var uploadedAt = time.Date(2025, 4, 2, 9, 30, 0, 0, time.UTC)

func newService(t *testing.T, policy config.UploadPolicy) (domain.Service, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "uploads")
	local, err := storage.NewLocal(dir)
	require.NoError(t, err)
	holder := config.NewStaticDocumentConfigHolder(config.DocumentConfig{
		Listing: config.DefaultDocumentConfig().Listing,
		Upload:  policy,
	})
	return New(Params{
		Log:      zap.NewNop(),
		Storage:  local,
		Clock:    clock.NewFakeClock(uploadedAt),
		Policies: holder,
	}), dir
}

func TestStoredName(t *testing.T) {
	id := ulid.MustParse("01HZY3K9Q6V7W8X9Y0Z1A2B3C4")
	assert.Equal(t, "shipping-marks-v2-1743586200000-01hzy3k9q6v7w8x9y0z1a2b3c4.png",
		StoredName("Shipping Marks v2.PNG", 1743586200000, id))
	assert.Equal(t, "file-1-01hzy3k9q6v7w8x9y0z1a2b3c4.pdf", StoredName("???.pdf", 1, id))
}

func TestUploadWritesFileAndDescribesIt(t *testing.T) {
	svc, dir := newService(t, config.UploadPolicy{MaxSizeMB: 1})
	body := strings.Repeat("a", 1536)

	file, err := svc.Upload(context.Background(), domain.FileInput{
		OriginalName: "Marking Label.png",
		Size:         int64(len(body)),
		ContentType:  "image/png",
		Body:         strings.NewReader(body),
	})
	require.NoError(t, err)
	assert.Equal(t, "Marking Label.png", file.OriginalName)
	assert.True(t, strings.HasPrefix(file.Filename, "marking-label-1743586200000-"))
	assert.True(t, strings.HasSuffix(file.Filename, ".png"))
	assert.Equal(t, filepath.ToSlash(filepath.Join(dir, file.Filename)), file.Path)
	assert.Equal(t, 0.0, file.SizeInMB)
	assert.Equal(t, "7bit", file.Encoding)
	assert.Equal(t, uploadedAt, file.UploadedAt)

	stored, err := os.ReadFile(filepath.Join(dir, file.Filename))
	require.NoError(t, err)
	assert.Equal(t, body, string(stored))
}

func TestUploadRejectsMissingOversizedAndForbiddenFiles(t *testing.T) {
	svc, _ := newService(t, config.UploadPolicy{MaxSizeMB: 1, AllowedExtensions: []string{"pdf", "png"}})
	ctx := context.Background()

	cases := []struct {
		name    string
		in      domain.FileInput
		message string
	}{
		{"missing", domain.FileInput{}, "No file uploaded"},
		{"too large", domain.FileInput{OriginalName: "a.pdf", Size: 2 * bytesPerMB, Body: strings.NewReader("x")}, "File too large. Maximum size is 1MB"},
		{"extension", domain.FileInput{OriginalName: "a.exe", Size: 1, Body: strings.NewReader("x")}, `File type ".exe" is not allowed`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Upload(ctx, tc.in)
			var verr *validation.Error
			require.True(t, errors.As(err, &verr))
			require.Len(t, verr.Violations, 1)
			assert.Equal(t, tc.message, verr.Violations[0].Message)
		})
	}
}

func TestUploadSizeInMBRoundsToTwoDecimals(t *testing.T) {
	svc, _ := newService(t, config.UploadPolicy{MaxSizeMB: 5})
	sizeMB := 1.257
	size := int64(sizeMB * bytesPerMB)
	file, err := svc.Upload(context.Background(), domain.FileInput{
		OriginalName: "datasheet.pdf",
		Size:         size,
		ContentType:  "application/pdf",
		Encoding:     "binary",
		Body:         strings.NewReader("%PDF"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1.26, file.SizeInMB)
	assert.Equal(t, "binary", file.Encoding)
}
