package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"CONFIG_FILE", "PORT", "GIN_MODE", "JWT_SECRET", "UPLOAD_LIMIT", "RATE_LIMIT_BACKEND"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 5, cfg.UploadLimit)
	assert.Equal(t, 15*time.Minute, cfg.UploadWindow)
	assert.EqualValues(t, 3<<20, cfg.UploadMaxBytes)
	assert.Equal(t, 10*time.Minute, cfg.VerificationTTL)
	assert.Equal(t, "memory", cfg.RateLimitBackend)
	assert.Equal(t, "default-secret", cfg.SigningSecret())
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archblog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9090"
upload_limit: 3
upload_window: 1m
cors_allowed_origins:
  - https://studio.test
site_url: https://file.test
`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SITE_URL", "https://env.test/")
	t.Setenv("UPLOAD_LIMIT", "8")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 8, cfg.UploadLimit, "environment wins over the file")
	assert.Equal(t, time.Minute, cfg.UploadWindow)
	assert.Equal(t, []string{"https://studio.test"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "https://env.test", cfg.SiteURL)
}

func TestLoadListsFromEnv(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("TRUSTED_PROXIES", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.TrustedProxies, "no proxy is trusted by default")

	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.test, https://b.test,")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1, 172.16.0.0/12")
	t.Setenv("SMTP_TIMEOUT", "5s")

	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, []string{"10.0.0.1", "172.16.0.0/12"}, cfg.TrustedProxies)
	assert.Equal(t, 5*time.Second, cfg.SMTPTimeout)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.GinMode = "release"
	assert.Error(t, cfg.Validate(), "release mode needs a JWT secret")

	cfg.JWTSecret = "s3cret"
	assert.NoError(t, cfg.Validate())

	cfg.RateLimitBackend = "memcached"
	assert.Error(t, cfg.Validate())
}

func TestDSN(t *testing.T) {
	cfg := Default()
	assert.Contains(t, cfg.DSN(), "dbname=archblog")

	cfg.DatabaseURL = "postgres://u:p@db:5432/blog"
	assert.Equal(t, "postgres://u:p@db:5432/blog", cfg.DSN())
}

func TestLoadRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("upload_limit: [oops"), 0o600))
	t.Setenv("CONFIG_FILE", path)

	_, err := Load()
	assert.Error(t, err)
}
