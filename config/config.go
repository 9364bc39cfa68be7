package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port    string `yaml:"port"`
	GinMode string `yaml:"gin_mode"`

	DatabaseURL string `yaml:"database_url"`
	DBHost      string `yaml:"db_host"`
	DBPort      string `yaml:"db_port"`
	DBUser      string `yaml:"db_user"`
	DBPassword  string `yaml:"db_password"`
	DBName      string `yaml:"db_name"`
	DBSSLMode   string `yaml:"db_sslmode"`
	DBTimezone  string `yaml:"db_timezone"`
	DBLogLevel  string `yaml:"db_log_level"`

	JWTSecret          string        `yaml:"jwt_secret"`
	SessionTTL         time.Duration `yaml:"session_ttl"`
	CORSAllowedOrigins []string      `yaml:"cors_allowed_origins"`
	TrustedProxies     []string      `yaml:"trusted_proxies"`

	SiteURL          string `yaml:"site_url"`
	AdminNotifyEmail string `yaml:"admin_notify_email"`

	SMTPHost     string        `yaml:"smtp_host"`
	SMTPPort     int           `yaml:"smtp_port"`
	SMTPUser     string        `yaml:"smtp_user"`
	SMTPPassword string        `yaml:"smtp_password"`
	SMTPFrom     string        `yaml:"smtp_from"`
	SMTPTimeout  time.Duration `yaml:"smtp_timeout"`

	CloudinaryCloudName string `yaml:"cloudinary_cloud_name"`
	CloudinaryAPIKey    string `yaml:"cloudinary_api_key"`
	CloudinaryAPISecret string `yaml:"cloudinary_api_secret"`
	CloudinaryFolder    string `yaml:"cloudinary_folder"`

	RateLimitBackend string        `yaml:"rate_limit_backend"`
	RedisAddr        string        `yaml:"redis_addr"`
	RedisPassword    string        `yaml:"redis_password"`
	RedisDB          int           `yaml:"redis_db"`
	UploadLimit      int           `yaml:"upload_limit"`
	UploadWindow     time.Duration `yaml:"upload_window"`
	UploadMaxBytes   int64         `yaml:"upload_max_bytes"`

	VerificationTTL time.Duration `yaml:"verification_ttl"`
}

func Default() *Config {
	return &Config{
		Port:    "8080",
		GinMode: "debug",

		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "postgres",
		DBName:     "archblog",
		DBSSLMode:  "disable",
		DBTimezone: "UTC",
		DBLogLevel: "warn",

		SessionTTL:         24 * time.Hour,
		CORSAllowedOrigins: []string{"http://localhost:3000"},

		SiteURL: "http://localhost:3000",

		SMTPPort:    587,
		SMTPFrom:    "no-reply@localhost",
		SMTPTimeout: 30 * time.Second,

		CloudinaryFolder: "blog",

		RateLimitBackend: "memory",
		RedisAddr:        "localhost:6379",
		UploadLimit:      5,
		UploadWindow:     15 * time.Minute,
		UploadMaxBytes:   3 << 20,

		VerificationTTL: 10 * time.Minute,
	}
}

// Load builds the configuration from defaults, the optional YAML file named by
// CONFIG_FILE and finally the environment.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.GinMode = getEnv("GIN_MODE", cfg.GinMode)

	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.DBHost = getEnv("DB_HOST", cfg.DBHost)
	cfg.DBPort = getEnv("DB_PORT", cfg.DBPort)
	cfg.DBUser = getEnv("DB_USER", cfg.DBUser)
	cfg.DBPassword = getEnv("DB_PASSWORD", cfg.DBPassword)
	cfg.DBName = getEnv("DB_NAME", cfg.DBName)
	cfg.DBSSLMode = getEnv("DB_SSLMODE", cfg.DBSSLMode)
	cfg.DBTimezone = getEnv("DB_TIMEZONE", cfg.DBTimezone)
	cfg.DBLogLevel = getEnv("DB_LOG_LEVEL", cfg.DBLogLevel)

	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.SessionTTL = getEnvDuration("SESSION_TTL", cfg.SessionTTL)
	if origins := getEnv("CORS_ALLOWED_ORIGINS", ""); origins != "" {
		cfg.CORSAllowedOrigins = splitCSV(origins)
	}
	if proxies := getEnv("TRUSTED_PROXIES", ""); proxies != "" {
		cfg.TrustedProxies = splitCSV(proxies)
	}

	cfg.SiteURL = strings.TrimRight(getEnv("SITE_URL", cfg.SiteURL), "/")
	cfg.AdminNotifyEmail = getEnv("ADMIN_NOTIFY_EMAIL", cfg.AdminNotifyEmail)

	cfg.SMTPHost = getEnv("SMTP_HOST", cfg.SMTPHost)
	cfg.SMTPPort = getEnvInt("SMTP_PORT", cfg.SMTPPort)
	cfg.SMTPUser = getEnv("SMTP_USER", cfg.SMTPUser)
	cfg.SMTPPassword = getEnv("SMTP_PASSWORD", cfg.SMTPPassword)
	cfg.SMTPFrom = getEnv("SMTP_FROM", cfg.SMTPFrom)
	cfg.SMTPTimeout = getEnvDuration("SMTP_TIMEOUT", cfg.SMTPTimeout)

	cfg.CloudinaryCloudName = getEnv("CLOUDINARY_CLOUD_NAME", cfg.CloudinaryCloudName)
	cfg.CloudinaryAPIKey = getEnv("CLOUDINARY_API_KEY", cfg.CloudinaryAPIKey)
	cfg.CloudinaryAPISecret = getEnv("CLOUDINARY_API_SECRET", cfg.CloudinaryAPISecret)
	cfg.CloudinaryFolder = getEnv("CLOUDINARY_FOLDER", cfg.CloudinaryFolder)

	cfg.RateLimitBackend = getEnv("RATE_LIMIT_BACKEND", cfg.RateLimitBackend)
	cfg.RedisAddr = getEnv("REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", cfg.RedisPassword)
	cfg.RedisDB = getEnvInt("REDIS_DB", cfg.RedisDB)
	cfg.UploadLimit = getEnvInt("UPLOAD_LIMIT", cfg.UploadLimit)
	cfg.UploadWindow = getEnvDuration("UPLOAD_WINDOW", cfg.UploadWindow)
	cfg.UploadMaxBytes = int64(getEnvInt("UPLOAD_MAX_BYTES", int(cfg.UploadMaxBytes)))

	cfg.VerificationTTL = getEnvDuration("VERIFICATION_TTL", cfg.VerificationTTL)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.GinMode == "release" && c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required in release mode")
	}
	if c.UploadLimit <= 0 {
		return errors.New("UPLOAD_LIMIT must be positive")
	}
	if c.UploadWindow <= 0 {
		return errors.New("UPLOAD_WINDOW must be positive")
	}
	if c.VerificationTTL <= 0 {
		return errors.New("VERIFICATION_TTL must be positive")
	}
	switch c.RateLimitBackend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown RATE_LIMIT_BACKEND %q", c.RateLimitBackend)
	}
	return nil
}

func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode, c.DBTimezone)
}

// SigningSecret falls back to a fixed development secret outside release mode.
func (c *Config) SigningSecret() string {
	if c.JWTSecret == "" {
		return "default-secret"
	}
	return c.JWTSecret
}

func getEnv(key, defaultVal string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(value)); err == nil {
			return d
		}
	}
	return defaultVal
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	return out
}
