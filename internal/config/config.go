package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port        string `yaml:"port"`
	Environment string `yaml:"environment"`
	// DatabaseURL selects the metadata store: a postgres:// URL uses pgx,
	// anything else is treated as a SQLite DSN.
	DatabaseURL string `yaml:"database_url"`
	CORSOrigins string `yaml:"cors_origins"`
	// Blob storage
	BlobBackend string `yaml:"blob_backend"` // "fs" or "s3"
	UploadDir   string `yaml:"upload_dir"`
	S3Bucket    string `yaml:"s3_bucket"`
	S3Region    string `yaml:"s3_region"`
	S3Endpoint  string `yaml:"s3_endpoint"`
	S3AccessKey string `yaml:"s3_access_key"`
	S3SecretKey string `yaml:"s3_secret_key"`
	S3Prefix    string `yaml:"s3_prefix"`
	// PDF conversion
	ConvertAPISecret  string        `yaml:"convertapi_secret"`
	ConvertAPIBaseURL string        `yaml:"convertapi_base_url"`
	ConvertAPITimeout time.Duration `yaml:"convertapi_timeout"`
	// Uploads and logging
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
	LogDir         string `yaml:"log_dir"` // Empty disables the log file
	LogMaxFiles    int    `yaml:"log_max_files"`
}

// Load builds the configuration from defaults, an optional YAML file named by
// IMPORTDOCS_CONFIG, and environment variables, in increasing precedence.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("IMPORTDOCS_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.CORSOrigins = getEnv("CORS_ORIGINS", cfg.CORSOrigins)
	cfg.BlobBackend = getEnv("BLOB_BACKEND", cfg.BlobBackend)
	cfg.UploadDir = getEnv("UPLOAD_DIR", cfg.UploadDir)
	cfg.S3Bucket = getEnv("S3_BUCKET", cfg.S3Bucket)
	cfg.S3Region = getEnv("S3_REGION", cfg.S3Region)
	cfg.S3Endpoint = getEnv("S3_ENDPOINT", cfg.S3Endpoint)
	cfg.S3AccessKey = getEnv("S3_ACCESS_KEY", cfg.S3AccessKey)
	cfg.S3SecretKey = getEnv("S3_SECRET_KEY", cfg.S3SecretKey)
	cfg.S3Prefix = getEnv("S3_PREFIX", cfg.S3Prefix)
	cfg.ConvertAPISecret = getEnv("CONVERTAPI_SECRET", cfg.ConvertAPISecret)
	cfg.ConvertAPIBaseURL = getEnv("CONVERTAPI_BASE_URL", cfg.ConvertAPIBaseURL)
	cfg.LogDir = getEnv("LOG_DIR", cfg.LogDir)

	var err error
	if cfg.ConvertAPITimeout, err = getEnvDuration("CONVERTAPI_TIMEOUT", cfg.ConvertAPITimeout); err != nil {
		return nil, err
	}
	if cfg.MaxUploadBytes, err = getEnvInt64("MAX_UPLOAD_BYTES", cfg.MaxUploadBytes); err != nil {
		return nil, err
	}
	maxFiles, err := getEnvInt64("LOG_MAX_FILES", int64(cfg.LogMaxFiles))
	if err != nil {
		return nil, err
	}
	cfg.LogMaxFiles = int(maxFiles)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Port:              "3001",
		Environment:       "dev",
		DatabaseURL:       "file:importer.sqlite",
		CORSOrigins:       "http://localhost:3000",
		BlobBackend:       "fs",
		UploadDir:         "uploads",
		S3Region:          "us-east-1",
		S3Prefix:          "uploads/",
		ConvertAPIBaseURL: "https://v2.convertapi.com",
		ConvertAPITimeout: 2 * time.Minute,
		MaxUploadBytes:    100 << 20,
		LogMaxFiles:       10,
	}
}

// loadFile overlays values from a YAML file onto cfg
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

func (c *Config) validate() error {
	switch c.BlobBackend {
	case "fs":
		if c.UploadDir == "" {
			return fmt.Errorf("UPLOAD_DIR is required for the fs blob backend")
		}
	case "s3":
		if c.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for the s3 blob backend")
		}
	default:
		return fmt.Errorf("unknown BLOB_BACKEND %q (want fs or s3)", c.BlobBackend)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}

// IsPostgres reports whether DatabaseURL points at a PostgreSQL server
func (c *Config) IsPostgres() bool {
	return strings.HasPrefix(c.DatabaseURL, "postgres://") || strings.HasPrefix(c.DatabaseURL, "postgresql://")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
