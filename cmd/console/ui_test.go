package main

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwebster45206/wayfarer/internal/services"
	"github.com/jwebster45206/wayfarer/pkg/scenario"
	"github.com/jwebster45206/wayfarer/pkg/session"
	"github.com/jwebster45206/wayfarer/pkg/state"
	"github.com/jwebster45206/wayfarer/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUI(t *testing.T) ConsoleUI {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	world := &scenario.Scenario{
		Player: "Mara",
		Locations: map[string]scenario.Location{
			"Hall":    {Description: "A drafty hall.", Exits: map[string]string{"north": "Library"}},
			"Library": {Description: "Dusty shelves.", Connections: []string{"Hall"}},
		},
		Characters: map[string]scenario.Character{
			"Mara": {Location: "Hall"},
			"Bram": {Location: "Hall"},
		},
	}
	game, err := state.NewGame(world, "", state.FollowNone, log)
	require.NoError(t, err)

	provider := services.NewMockProvider()
	provider.SetResponse("Evening.")
	ai := services.NewAIService(provider, nil, log)
	ctrl := state.NewController(game, session.NewManager(ai, session.Options{}, log), storage.NewMockStorage(world), log)

	ui := NewConsoleUI(ctrl, "A quiet manor.")
	model, _ := ui.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return model.(ConsoleUI)
}

func typeLine(ui ConsoleUI, line string) (ConsoleUI, tea.Cmd) {
	ui.textarea.SetValue(line)
	model, cmd := ui.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return model.(ConsoleUI), cmd
}

func TestConsoleUI_OpeningText(t *testing.T) {
	ui := newTestUI(t)
	out := ui.String()
	assert.True(t, strings.HasPrefix(out, "A quiet manor.\nYou are in the Hall."))
	assert.Contains(t, out, "Characters here: Bram")
}

func TestConsoleUI_OneCommandAtATime(t *testing.T) {
	ui := newTestUI(t)

	ui, cmd := typeLine(ui, "move north")
	require.NotNil(t, cmd)
	assert.True(t, ui.loading)

	ui, cmd = typeLine(ui, "look")
	assert.Nil(t, cmd, "input is ignored while a command is running")
	assert.Equal(t, "Hall", ui.ctrl.Game().Player().Location)

	res := ui.ctrl.Handle(context.Background(), "move north")
	model, _ := ui.Update(commandResultMsg{result: res})
	ui = model.(ConsoleUI)
	assert.False(t, ui.loading)
	assert.Contains(t, ui.String(), "You: move north\nMara moves north from the Hall to the Library.")
}

func TestConsoleUI_CharacterReply(t *testing.T) {
	ui := newTestUI(t)
	ui.ctrl.Handle(context.Background(), "interact bram")

	res := ui.ctrl.Handle(context.Background(), "Evening, Bram.")
	model, _ := ui.Update(commandResultMsg{result: res})
	ui = model.(ConsoleUI)

	assert.True(t, strings.HasSuffix(ui.String(), "Bram: Evening."))
	assert.Equal(t, TalkingText, ui.textarea.Placeholder)
}

func TestConsoleUI_QuitResult(t *testing.T) {
	ui := newTestUI(t)
	_, cmd := ui.Update(commandResultMsg{result: state.CommandResult{Message: "Farewell.", Quit: true}})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func pressKey(ui ConsoleUI, key tea.KeyMsg) (ConsoleUI, tea.Cmd) {
	model, cmd := ui.Update(key)
	return model.(ConsoleUI), cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestConsoleUI_QuitWaitsForRunningCommand(t *testing.T) {
	ui := newTestUI(t)
	ui, cmd := typeLine(ui, "move north")
	require.NotNil(t, cmd)
	require.True(t, ui.loading)

	ui, _ = pressKey(ui, tea.KeyMsg{Type: tea.KeyEsc})
	require.True(t, ui.showQuitModal)

	ui, cmd = pressKey(ui, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	assert.Nil(t, cmd, "quit is deferred while the command runs")
	assert.True(t, ui.quitPending)
	assert.Contains(t, ui.View(), "Finishing the current turn")

	ui, cmd = pressKey(ui, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	assert.Nil(t, cmd)
	assert.True(t, ui.quitPending, "a confirmed quit cannot be taken back")

	res := ui.ctrl.Handle(context.Background(), "move north")
	model, cmd := ui.Update(commandResultMsg{result: res})
	ui = model.(ConsoleUI)
	assert.True(t, isQuit(cmd))
	assert.False(t, ui.loading)
	assert.Contains(t, ui.String(), "Mara moves north from the Hall to the Library.")
}

func TestConsoleUI_QuitWhenIdle(t *testing.T) {
	ui := newTestUI(t)
	ui, _ = pressKey(ui, tea.KeyMsg{Type: tea.KeyEsc})
	require.True(t, ui.showQuitModal)

	_, cmd := pressKey(ui, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'Y'}})
	assert.True(t, isQuit(cmd))
}

func TestFormatEntry_Wraps(t *testing.T) {
	out := formatEntry(entry{kind: entryGame, text: strings.Repeat("word ", 20)}, 30)
	assert.Greater(t, strings.Count(out, "\n"), 1)
}
