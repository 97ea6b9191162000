package config

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testConfig uses the minimum cost to keep hashing fast.
func testConfig(t *testing.T, pepper string) *PasswordConfig {
	t.Helper()
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("PASSWORD_PEPPER", pepper)
	cfg, err := NewPasswordConfig()
	require.NoError(t, err)
	return cfg
}

func TestNewPasswordConfig(t *testing.T) {
	tests := []struct {
		name       string
		bcryptCost string
		pepper     string
		wantCost   int
		wantErr    bool
	}{
		{name: "default cost", wantCost: 12},
		{name: "boundary cost 10", bcryptCost: "10", wantCost: 10},
		{name: "boundary cost 14", bcryptCost: "14", wantCost: 14},
		{name: "with pepper", bcryptCost: "12", pepper: "test-pepper", wantCost: 12},
		{name: "cost too low", bcryptCost: "9", wantErr: true},
		{name: "cost too high", bcryptCost: "15", wantErr: true},
		{name: "negative cost", bcryptCost: "-5", wantErr: true},
		{name: "float cost", bcryptCost: "12.5", wantErr: true},
		{name: "invalid cost", bcryptCost: "invalid", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BCRYPT_COST", tt.bcryptCost)
			t.Setenv("PASSWORD_PEPPER", tt.pepper)

			cfg, err := NewPasswordConfig()
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCost, cfg.BcryptCost)
			assert.Equal(t, tt.pepper, cfg.Pepper)
		})
	}
}

func TestPasswordConfig_HashAndVerify(t *testing.T) {
	cfg := testConfig(t, "")

	hash, err := cfg.HashPassword("hr-password-123")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)

	assert.True(t, cfg.VerifyPassword("hr-password-123", hash))
	assert.False(t, cfg.VerifyPassword("wrong-password", hash))
	assert.False(t, cfg.VerifyPassword("hr-password-123", "not-a-hash"))
}

func TestPasswordConfig_SaltedHashesDiffer(t *testing.T) {
	cfg := testConfig(t, "")

	first, err := cfg.HashPassword("same")
	require.NoError(t, err)
	second, err := cfg.HashPassword("same")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, cfg.VerifyPassword("same", first))
	assert.True(t, cfg.VerifyPassword("same", second))
}

func TestPasswordConfig_Pepper(t *testing.T) {
	peppered := testConfig(t, "pepper-1")
	hash, err := peppered.HashPassword("secret")
	require.NoError(t, err)
	assert.True(t, peppered.VerifyPassword("secret", hash))

	plain := &PasswordConfig{BcryptCost: 10}
	assert.False(t, plain.VerifyPassword("secret", hash), "removing the pepper must invalidate hashes")

	rotated := &PasswordConfig{BcryptCost: 10, Pepper: "pepper-2"}
	assert.False(t, rotated.VerifyPassword("secret", hash), "rotating the pepper must invalidate hashes")
}

func TestPasswordConfig_EmptyPassword(t *testing.T) {
	cfg := testConfig(t, "")

	hash, err := cfg.HashPassword("")
	require.NoError(t, err)
	assert.True(t, cfg.VerifyPassword("", hash))
	assert.False(t, cfg.VerifyPassword("not-empty", hash))
}

func TestPasswordConfig_PasswordExceeding72Bytes(t *testing.T) {
	cfg := testConfig(t, "")

	_, err := cfg.HashPassword(strings.Repeat("a", 73))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to hash password")
}

func TestPasswordConfig_ConcurrentVerify(t *testing.T) {
	cfg := testConfig(t, "")
	hash, err := cfg.HashPassword("concurrent")
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]bool, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = cfg.VerifyPassword("concurrent", hash)
		}(i)
	}
	wg.Wait()

	for i, ok := range results {
		assert.True(t, ok, "goroutine %d", i)
	}
}
