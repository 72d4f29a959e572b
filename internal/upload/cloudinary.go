package upload

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Cloudinary uploads images through the Cloudinary upload API.
type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinary builds a Cloudinary uploader from account credentials.
func NewCloudinary(cloudName, apiKey, apiSecret, folder string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	return &Cloudinary{cld: cld, folder: folder}, nil
}

func (c *Cloudinary) Upload(ctx context.Context, file File) (Result, error) {
	publicID := strings.TrimSuffix(objectName(file.Name), path.Ext(file.Name))

	resp, err := c.cld.Upload.Upload(ctx, file.Body, uploader.UploadParams{
		PublicID: publicID,
		Folder:   c.folder,
	})
	if err != nil {
		return Result{}, fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.Error.Message != "" {
		return Result{}, fmt.Errorf("cloudinary upload: %s", resp.Error.Message)
	}

	return Result{URL: resp.SecureURL, PublicID: resp.PublicID}, nil
}
