package memory

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/jwebster45206/wayfarer/pkg/actor"
	"github.com/jwebster45206/wayfarer/pkg/chat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAI struct {
	reply   string
	prompts []string
	tokens  []int
	temps   []float64
}

func (f *fakeAI) Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) string {
	f.prompts = append(f.prompts, prompt)
	f.tokens = append(f.tokens, maxTokens)
	f.temps = append(f.temps, temperature)
	return f.reply
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func transcript() []chat.ChatMessage {
	return []chat.ChatMessage{
		{Role: chat.ChatRoleUser, Content: "Where is the key?"},
		{Role: chat.ChatRoleAgent, Content: "Under the mat."},
	}
}

func TestSummarize_Success(t *testing.T) {
	ai := &fakeAI{reply: "  Mara asked about the key; Bram said it was under the mat.  "}
	c := &actor.Character{Name: "Bram"}

	entry, ok := NewSummarizer(ai, quietLogger()).Summarize(context.Background(), c, transcript())

	require.True(t, ok)
	assert.Equal(t, actor.MemoryTypeInteraction, entry.Type)
	assert.Equal(t, "Mara asked about the key; Bram said it was under the mat.", entry.Content)
	assert.Equal(t, []actor.MemoryEntry{entry}, c.Memory())

	require.Len(t, ai.prompts, 1)
	assert.Contains(t, ai.prompts[0], "user: Where is the key?\nassistant: Under the mat.")
	assert.Equal(t, SummaryMaxTokens, ai.tokens[0])
	assert.InDelta(t, SummaryTemperature, ai.temps[0], 1e-9)
}

func TestSummarize_FailureLeavesMemory(t *testing.T) {
	for _, reply := range []string{"", "   \n"} {
		ai := &fakeAI{reply: reply}
		c := &actor.Character{Name: "Bram"}
		require.NoError(t, c.Remember(actor.MemoryEntry{Type: actor.MemoryTypeInteraction, Content: "earlier"}))

		_, ok := NewSummarizer(ai, quietLogger()).Summarize(context.Background(), c, transcript())

		assert.False(t, ok)
		assert.Len(t, ai.prompts, 1)
		assert.Len(t, c.Memory(), 1)
	}
}

func TestSummarize_EmptyTranscriptMakesNoCall(t *testing.T) {
	ai := &fakeAI{reply: "anything"}
	c := &actor.Character{Name: "Bram"}

	_, ok := NewSummarizer(ai, quietLogger()).Summarize(context.Background(), c, nil)

	assert.False(t, ok)
	assert.Empty(t, ai.prompts)
	assert.Empty(t, c.Memory())
}
