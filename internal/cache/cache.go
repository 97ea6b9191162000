// Package cache provides a small key/value cache for LLM completions,
// backed by Redis when configured and by process memory otherwise.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"
)

// DefaultTTL is how long completions are kept when no TTL is configured
const DefaultTTL = 24 * time.Hour

// Cache stores string values by key
type Cache interface {
	// Get returns the cached value and whether it was present
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key for ttl
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Close releases any resources held by the cache
	Close() error
}

// Key derives a stable cache key from its parts
func Key(parts ...string) string {
	h := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(h[:])
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// Memory is an in-process Cache with per-entry expiry
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemory creates an empty in-memory cache
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get returns the value for key if present and not expired
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	if !entry.expiresAt.IsZero() && m.now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return "", false, nil
	}
	return entry.value, true, nil
}

// Set stores value under key. A non-positive ttl never expires.
func (m *Memory) Set(_ context.Context, key, value string, ttl time.Duration) error {
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}
	m.mu.Lock()
	m.entries[key] = entry
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, expired or not
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Close is a no-op
func (m *Memory) Close() error {
	return nil
}
