package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// imageTransformation bounds uploads to 1200x800 and lets the host pick the quality.
const imageTransformation = "c_limit,w_1200,h_800/q_auto:good"

type CloudinaryHost struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryHost(cloudName, apiKey, apiSecret, folder string) (*CloudinaryHost, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	return &CloudinaryHost{cld: cld, folder: folder}, nil
}

func (h *CloudinaryHost) Upload(ctx context.Context, data []byte, filename string) (string, error) {
	resp, err := h.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:         h.folder,
		Transformation: imageTransformation,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", filename, err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("upload %s: %s", filename, resp.Error.Message)
	}
	return resp.SecureURL, nil
}

// UnconfiguredHost rejects every upload. Used when no image host credentials are set.
type UnconfiguredHost struct{}

func (UnconfiguredHost) Upload(context.Context, []byte, string) (string, error) {
	return "", errors.New("image host is not configured")
}
