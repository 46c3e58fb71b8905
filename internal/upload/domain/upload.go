package domain

import (
	"context"
	"io"
	"time"
)

// Storage persists uploaded bytes under a generated object name and
// returns the path clients use to refer to it.
type Storage interface {
	Put(ctx context.Context, name string, body io.Reader, contentType string) (string, error)
	Driver() string
}

type FileInput struct {
	OriginalName string
	Size         int64
	ContentType  string
	Encoding     string
	Body         io.Reader
}

type File struct {
	OriginalName string    `json:"originalName"`
	Filename     string    `json:"filename"`
	Path         string    `json:"path"`
	Size         int64     `json:"size"`
	SizeInMB     float64   `json:"sizeInMB"`
	Mimetype     string    `json:"mimetype"`
	Encoding     string    `json:"encoding"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

type Service interface {
	Upload(ctx context.Context, in FileInput) (File, error)
}
