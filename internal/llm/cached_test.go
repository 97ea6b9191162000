package llm_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/resume-analyzer/internal/cache"
	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/llm/llmtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCachedClient_ReusesCompletions(t *testing.T) {
	ctx := context.Background()
	fake := llmtest.NewFake("ATS Score: 80%")
	client := llm.NewCachedClient(fake, cache.NewMemory(), 0, zap.NewNop())

	first, err := client.GenerateContent(ctx, "prompt", llm.TierStandard)
	require.NoError(t, err)
	second, err := client.GenerateContent(ctx, "prompt", llm.TierStandard)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, fake.Calls(), 1)
}

func TestCachedClient_KeysByPromptTierAndKind(t *testing.T) {
	ctx := context.Background()
	fake := llmtest.NewFake("ok")
	client := llm.NewCachedClient(fake, cache.NewMemory(), 0, nil)

	_, _ = client.GenerateContent(ctx, "a", llm.TierStandard)
	_, _ = client.GenerateContent(ctx, "b", llm.TierStandard)
	_, _ = client.GenerateContent(ctx, "a", llm.TierLite)
	_, _ = client.GenerateJSON(ctx, "a", llm.TierStandard)
	_, _ = client.GenerateWithTemperature(ctx, "a", llm.TierStandard, 0.2)
	_, _ = client.GenerateWithTemperature(ctx, "a", llm.TierStandard, 0.2)

	assert.Len(t, fake.Calls(), 5)
}

func TestCachedClient_DoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	attempts := 0
	fake := &llmtest.Fake{Respond: func(string) (string, error) {
		attempts++
		if attempts == 1 {
			return "", errors.New("quota exceeded")
		}
		return "recovered", nil
	}}
	client := llm.NewCachedClient(fake, cache.NewMemory(), 0, nil)

	_, err := client.GenerateContent(ctx, "p", llm.TierStandard)
	require.Error(t, err)

	text, err := client.GenerateContent(ctx, "p", llm.TierStandard)
	require.NoError(t, err)
	assert.Equal(t, "recovered", text)
}
