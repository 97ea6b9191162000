package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/resume-analyzer/internal/cache"
	"go.uber.org/zap"
)

// CachedClient wraps a Client and reuses completions for identical prompts.
// Cache failures are logged and never fail a generation.
type CachedClient struct {
	Client
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedClient wraps inner with store. A zero ttl uses cache.DefaultTTL.
func NewCachedClient(inner Client, store cache.Cache, ttl time.Duration, logger *zap.Logger) *CachedClient {
	if ttl == 0 {
		ttl = cache.DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedClient{Client: inner, cache: store, ttl: ttl, logger: logger}
}

// GenerateContent returns a cached completion or generates and stores a new one
func (c *CachedClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.cached(ctx, "text", prompt, tier, func() (string, error) {
		return c.Client.GenerateContent(ctx, prompt, tier)
	})
}

// GenerateWithTemperature returns a cached completion or generates and stores a new one
func (c *CachedClient) GenerateWithTemperature(ctx context.Context, prompt string, tier ModelTier, temperature float32) (string, error) {
	kind := fmt.Sprintf("text@%.2f", temperature)
	return c.cached(ctx, kind, prompt, tier, func() (string, error) {
		return c.Client.GenerateWithTemperature(ctx, prompt, tier, temperature)
	})
}

// GenerateJSON returns a cached completion or generates and stores a new one
func (c *CachedClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.cached(ctx, "json", prompt, tier, func() (string, error) {
		return c.Client.GenerateJSON(ctx, prompt, tier)
	})
}

func (c *CachedClient) cached(ctx context.Context, kind, prompt string, tier ModelTier, generate func() (string, error)) (string, error) {
	key := cache.Key(kind, c.Client.GetModel(tier), prompt)

	if value, ok, err := c.cache.Get(ctx, key); err != nil {
		c.logger.Warn("completion cache read failed", zap.Error(err))
	} else if ok {
		c.logger.Debug("completion cache hit", zap.String("tier", string(tier)))
		return value, nil
	}

	value, err := generate()
	if err != nil {
		return "", err
	}

	if err := c.cache.Set(ctx, key, value, c.ttl); err != nil {
		c.logger.Warn("completion cache write failed", zap.Error(err))
	}
	return value, nil
}

// Close closes the wrapped client; the cache is owned by the caller
func (c *CachedClient) Close() error {
	return c.Client.Close()
}
