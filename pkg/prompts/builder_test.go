package prompts

import (
	"testing"

	"github.com/jwebster45206/wayfarer/pkg/chat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	builder := New()
	require.NotNil(t, builder)
	assert.Equal(t, MemoryWindow, builder.memoryLimit)
}

func TestBuilder_FluentInterface(t *testing.T) {
	speaker, player := testSpeaker(), testPlayer()
	transcript := []chat.ChatMessage{{Role: chat.ChatRoleUser, Content: "Hi"}}

	builder := New().
		WithSpeaker(speaker).
		WithCounterpart(player).
		WithLocation("Tavern").
		WithMemory(memories(2)).
		WithTranscript(transcript).
		WithUtterance("Any rooms?").
		WithMemoryLimit(2)

	assert.Same(t, speaker, builder.speaker)
	assert.Same(t, player, builder.counterpart)
	assert.Equal(t, "Tavern", builder.location)
	assert.Len(t, builder.memory, 2)
	assert.Equal(t, transcript, builder.transcript)
	assert.Equal(t, "Any rooms?", builder.utterance)
	assert.Equal(t, 2, builder.memoryLimit)
}

func TestBuilder_RequiresSpeaker(t *testing.T) {
	_, err := New().WithCounterpart(testPlayer()).Build()
	assert.Error(t, err)

	_, _, err = New().BuildPersona()
	assert.Error(t, err)
}

func TestBuilder_Build_MatchesDialoguePrompt(t *testing.T) {
	speaker, player := testSpeaker(), testPlayer()
	mem := memories(5)

	got, err := New().
		WithSpeaker(speaker).
		WithCounterpart(player).
		WithLocation("Tavern").
		WithMemory(mem).
		WithUtterance("Hello").
		Build()
	require.NoError(t, err)
	assert.Equal(t, DialoguePrompt(speaker, player, "Tavern", mem, nil, "Hello"), got)
}

func TestBuilder_MemoryLimit(t *testing.T) {
	got, err := New().WithSpeaker(testSpeaker()).WithMemory(memories(5)).WithMemoryLimit(1).Build()
	require.NoError(t, err)
	assert.Contains(t, got, "- memory-5")
	assert.NotContains(t, got, "- memory-4")

	// The window never grows past MemoryWindow.
	got, err = New().WithSpeaker(testSpeaker()).WithMemory(memories(5)).WithMemoryLimit(10).Build()
	require.NoError(t, err)
	assert.NotContains(t, got, "- memory-2")
}

func TestBuilder_BuildPersona(t *testing.T) {
	transcript := []chat.ChatMessage{{Role: chat.ChatRoleUser, Content: "Evening."}}
	persona, turn, err := New().
		WithSpeaker(testSpeaker()).
		WithCounterpart(testPlayer()).
		WithLocation("Tavern").
		WithTranscript(transcript).
		WithUtterance("Any rooms?").
		WithGuidance("Keep it family friendly.").
		BuildPersona()
	require.NoError(t, err)

	assert.Contains(t, persona, "You are Bram.")
	assert.Contains(t, persona, "Keep it family friendly.")
	assert.NotContains(t, persona, "Any rooms?")
	assert.Equal(t, "Conversation so far:\nMara: Evening.\n\nMara: Any rooms?", turn)
}
