// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the settings shared by the CLI and the HTTP server.
type Config struct {
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	DatabaseURL  string `env:"DATABASE_URL"`
	Port         int    `env:"PORT" envDefault:"8080"`

	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	CacheTTL      time.Duration `env:"CACHE_TTL" envDefault:"24h"`

	HRUsername     string `env:"HR_USERNAME" envDefault:"hr"`
	HRPasswordHash string `env:"HR_PASSWORD_HASH"`

	BatchConcurrency int    `env:"BATCH_CONCURRENCY" envDefault:"4"`
	MaxUploadMB      int    `env:"MAX_UPLOAD_MB" envDefault:"10"`
	CatalogPath      string `env:"CATALOG_PATH"`

	S3Region   string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Endpoint string `env:"S3_ENDPOINT"`

	UseBrowser bool `env:"USE_BROWSER" envDefault:"true"`
}

// Load parses the configuration from environment variables and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Credentials are not required here; commands that need them check on use.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.BatchConcurrency < 1 || c.BatchConcurrency > 64 {
		return fmt.Errorf("config error: BATCH_CONCURRENCY must be between 1 and 64, got %d", c.BatchConcurrency)
	}
	if c.MaxUploadMB < 1 {
		return fmt.Errorf("config error: MAX_UPLOAD_MB must be positive, got %d", c.MaxUploadMB)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("config error: CACHE_TTL must be non-negative")
	}
	if c.RedisDB < 0 {
		return fmt.Errorf("config error: REDIS_DB must be non-negative")
	}
	return nil
}

// HRAuthEnabled reports whether HR credentials are configured.
func (c *Config) HRAuthEnabled() bool {
	return c.HRUsername != "" && c.HRPasswordHash != ""
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// MaxUploadBytes returns the multipart upload limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}
