package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const DefaultMaxImageBytes = 3 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ImageHost stores an image and returns its public URL.
type ImageHost interface {
	Upload(ctx context.Context, data []byte, filename string) (string, error)
}

type UploadService struct {
	host     ImageHost
	maxBytes int64
}

func NewUploadService(host ImageHost, maxBytes int64) *UploadService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}
	return &UploadService{host: host, maxBytes: maxBytes}
}

func (s *UploadService) MaxBytes() int64 {
	return s.maxBytes
}

// Validate checks the declared type, the size and that the leading bytes
// carry the signature of the declared type.
func (s *UploadService) Validate(contentType string, data []byte) error {
	declared := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if !allowedImageTypes[declared] {
		return fmt.Errorf("%w: %q", ErrUnsupportedImage, contentType)
	}
	if int64(len(data)) > s.maxBytes {
		return fmt.Errorf("%w: %d bytes", ErrImageTooLarge, len(data))
	}
	if len(data) == 0 || !mimetype.Detect(data).Is(declared) {
		return ErrImageSignature
	}
	return nil
}

func (s *UploadService) Upload(ctx context.Context, contentType, filename string, data []byte) (string, error) {
	if err := s.Validate(contentType, data); err != nil {
		return "", err
	}

	url, err := s.host.Upload(ctx, data, filename)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageHost, err)
	}
	return url, nil
}
