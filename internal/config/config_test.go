package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "BATCH_CONCURRENCY", "CACHE_TTL", "HR_USERNAME", "MAX_UPLOAD_MB", "S3_REGION", "REDIS_DB"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 4, cfg.BatchConcurrency)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
	assert.Equal(t, "hr", cfg.HRUsername)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("DATABASE_URL", "postgres://localhost/test")
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CACHE_TTL", "90m")
	t.Setenv("BATCH_CONCURRENCY", "8")
	t.Setenv("HR_USERNAME", "recruiter")
	t.Setenv("HR_PASSWORD_HASH", "$2a$10$hash")
	t.Setenv("S3_REGION", "eu-west-1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "key", cfg.GeminiAPIKey)
	assert.Equal(t, "postgres://localhost/test", cfg.DatabaseURL)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 90*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 8, cfg.BatchConcurrency)
	assert.Equal(t, "eu-west-1", cfg.S3Region)
	assert.True(t, cfg.HRAuthEnabled())
}

func TestLoad_InvalidNumber(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse environment")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{Port: 8080, BatchConcurrency: 4, MaxUploadMB: 10, CacheTTL: time.Hour}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "port zero", mutate: func(c *Config) { c.Port = 0 }, wantErr: "PORT"},
		{name: "port too large", mutate: func(c *Config) { c.Port = 70000 }, wantErr: "PORT"},
		{name: "concurrency zero", mutate: func(c *Config) { c.BatchConcurrency = 0 }, wantErr: "BATCH_CONCURRENCY"},
		{name: "concurrency too large", mutate: func(c *Config) { c.BatchConcurrency = 65 }, wantErr: "BATCH_CONCURRENCY"},
		{name: "upload limit", mutate: func(c *Config) { c.MaxUploadMB = 0 }, wantErr: "MAX_UPLOAD_MB"},
		{name: "negative ttl", mutate: func(c *Config) { c.CacheTTL = -time.Second }, wantErr: "CACHE_TTL"},
		{name: "negative redis db", mutate: func(c *Config) { c.RedisDB = -1 }, wantErr: "REDIS_DB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestHRAuthEnabled(t *testing.T) {
	assert.False(t, (&Config{HRUsername: "hr"}).HRAuthEnabled())
	assert.False(t, (&Config{HRPasswordHash: "x"}).HRAuthEnabled())
	assert.True(t, (&Config{HRUsername: "hr", HRPasswordHash: "x"}).HRAuthEnabled())
}
