package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"carlot/internal/config"
)

// ErrDisabled is returned when no upload provider is configured.
var ErrDisabled = errors.New("uploads are disabled")

// File is an incoming image.
type File struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// Result describes a stored image.
type Result struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// Uploader stores listing photos with a third-party provider.
type Uploader interface {
	Upload(ctx context.Context, file File) (Result, error)
}

// New returns the uploader selected by cfg.Provider, or nil when uploads are off.
func New(ctx context.Context, cfg config.UploadConfig) (Uploader, error) {
	switch cfg.Provider {
	case "":
		return nil, nil
	case "cloudinary":
		return NewCloudinary(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
	case "s3":
		return NewS3(ctx, S3Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Prefix:    cfg.S3Prefix,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Endpoint:  cfg.S3Endpoint,
		})
	default:
		return nil, fmt.Errorf("unknown upload provider %q", cfg.Provider)
	}
}

// objectName builds a unique, extension-preserving name for an upload.
func objectName(original string) string {
	ext := strings.ToLower(path.Ext(original))
	if len(ext) > 8 {
		ext = ""
	}
	return uuid.NewString() + ext
}
