package narrator

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/jwebster45206/wayfarer/internal/services"
	"github.com/jwebster45206/wayfarer/pkg/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDescribeWorld(t *testing.T) {
	mock := services.NewMockProvider()
	mock.SetResponse("Spires of glass drift above a sea of cloud.")
	ai := services.NewAIService(mock, nil, quietLogger())

	got := New(ai, nil, nil, quietLogger()).DescribeWorld(context.Background(), "A floating city.")

	assert.Equal(t, "Spires of glass drift above a sea of cloud.", got)
	calls := mock.GetCalls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Prompt, "a world described as: A floating city.")
	assert.Equal(t, MaxTokens, calls[0].MaxTokens)
	assert.InDelta(t, Temperature, calls[0].Temperature, 1e-9)
}

func TestDescribeWorld_Fallback(t *testing.T) {
	mock := services.NewMockProvider()
	mock.SetGenerateError(errors.New("network down"))
	ai := services.NewAIService(mock, nil, quietLogger())
	cache := services.NewMockCache()

	got := New(ai, nil, cache, quietLogger()).DescribeWorld(context.Background(), "A floating city.")

	assert.Equal(t, FallbackDescription, got)
	assert.Empty(t, cache.SetCalls, "fallback text is never cached")
}

func TestDescribeWorld_Voice(t *testing.T) {
	mock := services.NewMockProvider()
	ai := services.NewAIService(mock, nil, quietLogger())
	voice := &scenario.Narrator{Name: "The Chronicler", Prompts: []string{"Use the past tense."}}

	New(ai, voice, nil, quietLogger()).DescribeWorld(context.Background(), "A swamp")

	calls := mock.GetCalls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Prompt, "Narrate as The Chronicler.")
	assert.Contains(t, calls[0].Prompt, "- Use the past tense.")
}

func TestDescribeWorld_Cache(t *testing.T) {
	mock := services.NewMockProvider()
	mock.SetResponse("Fog over the marsh.")
	ai := services.NewAIService(mock, nil, quietLogger())
	cache := services.NewMockCache()
	n := New(ai, nil, cache, quietLogger())

	first := n.DescribeWorld(context.Background(), "A swamp")
	second := n.DescribeWorld(context.Background(), "A swamp")

	assert.Equal(t, "Fog over the marsh.", first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, mock.CallCount())
	require.Len(t, cache.SetCalls, 1)
	assert.Equal(t, CacheTTL, cache.SetCalls[0].Expiration)
	assert.True(t, strings.HasPrefix(cache.SetCalls[0].Key, cacheKeyPrefix))
}

func TestDescribeWorld_CacheErrorFallsThrough(t *testing.T) {
	mock := services.NewMockProvider()
	mock.SetResponse("Fog over the marsh.")
	ai := services.NewAIService(mock, nil, quietLogger())
	cache := services.NewMockCache()
	cache.GetErr = errors.New("connection refused")

	got := New(ai, nil, cache, quietLogger()).DescribeWorld(context.Background(), "A swamp")

	assert.Equal(t, "Fog over the marsh.", got)
	assert.Equal(t, 1, mock.CallCount())
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, CacheKey("a"), CacheKey("a"))
	assert.NotEqual(t, CacheKey("a"), CacheKey("b"))
}
