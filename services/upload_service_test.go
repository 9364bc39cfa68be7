package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngBytes  = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)
	jpegBytes = append([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}, make([]byte, 32)...)
	gifBytes  = append([]byte("GIF89a"), make([]byte, 32)...)
)

type fakeHost struct {
	calls int
	err   error
}

func (h *fakeHost) Upload(_ context.Context, data []byte, filename string) (string, error) {
	h.calls++
	if h.err != nil {
		return "", h.err
	}
	return "https://images.test/blog/" + filename, nil
}

func TestUploadValidate(t *testing.T) {
	svc := NewUploadService(&fakeHost{}, 1024)

	tests := []struct {
		name        string
		contentType string
		data        []byte
		want        error
	}{
		{"png", "image/png", pngBytes, nil},
		{"jpeg with params", "image/jpeg; charset=binary", jpegBytes, nil},
		{"gif", "IMAGE/GIF", gifBytes, nil},
		{"svg not allowed", "image/svg+xml", []byte("<svg/>"), ErrUnsupportedImage},
		{"pdf not allowed", "application/pdf", []byte("%PDF-1.7"), ErrUnsupportedImage},
		{"too large", "image/png", append(pngBytes, make([]byte, 1024)...), ErrImageTooLarge},
		{"jpeg bytes declared png", "image/png", jpegBytes, ErrImageSignature},
		{"html declared png", "image/png", []byte("<html><script>alert(1)</script></html>"), ErrImageSignature},
		{"empty", "image/png", nil, ErrImageSignature},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Validate(tt.contentType, tt.data)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUploadSendsValidImagesToHost(t *testing.T) {
	host := &fakeHost{}
	svc := NewUploadService(host, 0)
	assert.EqualValues(t, DefaultMaxImageBytes, svc.MaxBytes())

	url, err := svc.Upload(context.Background(), "image/png", "plan.png", pngBytes)
	require.NoError(t, err)
	assert.Equal(t, "https://images.test/blog/plan.png", url)

	_, err = svc.Upload(context.Background(), "image/png", "fake.png", bytes.Repeat([]byte("A"), 64))
	assert.ErrorIs(t, err, ErrImageSignature)
	assert.Equal(t, 1, host.calls, "rejected files never reach the host")
}

func TestUploadWrapsHostErrors(t *testing.T) {
	svc := NewUploadService(&fakeHost{err: errors.New("502 bad gateway")}, 0)

	_, err := svc.Upload(context.Background(), "image/png", "plan.png", pngBytes)
	assert.ErrorIs(t, err, ErrImageHost)
}

func TestUnconfiguredHostRejects(t *testing.T) {
	svc := NewUploadService(UnconfiguredHost{}, 0)

	_, err := svc.Upload(context.Background(), "image/png", "plan.png", pngBytes)
	assert.ErrorIs(t, err, ErrImageHost)
}
