package ratelimit

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// envConfig mirrors the RATE_LIMIT_* environment variables.
type envConfig struct {
	Enabled         bool          `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	DefaultLimit    int           `env:"RATE_LIMIT_DEFAULT_LIMIT" envDefault:"1000"`
	DefaultWindow   time.Duration `env:"RATE_LIMIT_DEFAULT_WINDOW" envDefault:"1m"`
	CleanupInterval time.Duration `env:"RATE_LIMIT_CLEANUP_INTERVAL" envDefault:"5m"`
	AnalysisLimit   int           `env:"RATE_LIMIT_ANALYSIS_LIMIT" envDefault:"30"`
	BatchLimit      int           `env:"RATE_LIMIT_BATCH_LIMIT" envDefault:"10"`
	Whitelist       string        `env:"RATE_LIMIT_WHITELIST"`
	Blacklist       string        `env:"RATE_LIMIT_BLACKLIST"`
}

// LoadConfig loads rate limiting configuration from environment variables.
// Unparseable values fall back to the defaults.
func LoadConfig() *Config {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		ec = envConfig{}
		_ = env.ParseWithOptions(&ec, env.Options{Environment: map[string]string{}})
	}

	if !ec.Enabled {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    ec.DefaultLimit,
		DefaultWindow:   ec.DefaultWindow,
		CleanupInterval: ec.CleanupInterval,
		Whitelist:       parseIPList(ec.Whitelist),
		Blacklist:       parseIPList(ec.Blacklist),
		EndpointConfigs: DefaultEndpointConfigs(ec.AnalysisLimit, ec.BatchLimit),
	}
}

// DefaultEndpointConfigs returns the endpoint limits. LLM-backed routes get
// analysisLimit requests per minute, HR batches batchLimit per hour.
func DefaultEndpointConfigs(analysisLimit, batchLimit int) []EndpointConfig {
	llm := func(path string) EndpointConfig {
		return EndpointConfig{Path: path, Method: "POST", Limit: analysisLimit, Window: time.Minute, Burst: max(1, analysisLimit/3)}
	}
	return []EndpointConfig{
		// batches fan out to many LLM calls
		{Path: "/v1/hr/batch", Method: "POST", Limit: batchLimit, Window: time.Hour, Burst: max(1, batchLimit/5)},
		{Path: "/v1/hr/batch/stream", Method: "POST", Limit: batchLimit, Window: time.Hour, Burst: max(1, batchLimit/5)},

		llm("/v1/analyze"),
		llm("/v1/ats"),
		llm("/v1/linkedin"),
		llm("/v1/cover-letter"),

		// token issuing is a password check
		{Path: "/v1/auth/token", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},

		// everything else, including the pure extraction and catalog routes, uses the default limit
	}
}

// parseIPList parses a comma-separated list of IP addresses into a map.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
