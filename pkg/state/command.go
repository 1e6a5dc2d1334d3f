package state

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jwebster45206/wayfarer/pkg/session"
	"github.com/jwebster45206/wayfarer/pkg/storage"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type CommandType string

const (
	CmdMove     CommandType = "move"
	CmdInteract CommandType = "interact"
	CmdLook     CommandType = "look"
	CmdSave     CommandType = "save"
	CmdLoad     CommandType = "load"
	CmdQuit     CommandType = "quit"
	CmdHelp     CommandType = "help"
	CmdMemory   CommandType = "memory"
	CmdNone     CommandType = "" // unrecognised
)

const (
	InvalidAction = "Invalid action."

	HelpText = `Commands:
  move <direction>   walk through an exit
  interact <name>    start talking to someone here
  look               describe your surroundings
  memory <name>      show what a character remembers
  save               save your game
  load               restore your saved game
  quit               leave the game
While talking, type 'back' to walk away.`
)

// parseCommand splits input into a verb and its argument. Verbs are
// case-insensitive; the argument keeps its spelling.
func parseCommand(input string) (CommandType, string) {
	known := map[string]CommandType{
		"move":     CmdMove,
		"m":        CmdMove,
		"go":       CmdMove,
		"interact": CmdInteract,
		"talk":     CmdInteract,
		"t":        CmdInteract,
		"look":     CmdLook,
		"l":        CmdLook,
		"save":     CmdSave,
		"load":     CmdLoad,
		"quit":     CmdQuit,
		"q":        CmdQuit,
		"exit":     CmdQuit,
		"help":     CmdHelp,
		"h":        CmdHelp,
		"?":        CmdHelp,
		"memory":   CmdMemory,
		"mem":      CmdMemory,
	}
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return CmdNone, ""
	}
	cmd, ok := known[strings.ToLower(fields[0])]
	if !ok {
		return CmdNone, ""
	}
	return cmd, strings.Join(fields[1:], " ")
}

// CommandResult is what one line of input produced.
type CommandResult struct {
	Message string
	Speaker string // set when a character is talking
	Quit    bool
}

// Controller routes console input to the game, the open interaction, or
// storage.
type Controller struct {
	game     *Game
	sessions *session.Manager
	store    storage.Storage
	logger   *slog.Logger
	title    cases.Caser
}

func NewController(game *Game, sessions *session.Manager, store storage.Storage, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		game:     game,
		sessions: sessions,
		store:    store,
		logger:   logger,
		title:    cases.Title(language.English),
	}
}

func (c *Controller) Game() *Game { return c.game }

// Partner returns the name of the character the player is talking to, or "".
func (c *Controller) Partner() string {
	if s := c.sessions.Active(); s != nil && s.IsOpen() {
		return s.Target().Name
	}
	return ""
}

// Handle runs one line of input. While an interaction is open every line is
// spoken to the character, except the exit token.
func (c *Controller) Handle(ctx context.Context, input string) CommandResult {
	if s := c.sessions.Active(); s != nil && s.IsOpen() {
		return c.converse(ctx, s, input)
	}

	cmd, arg := parseCommand(input)
	switch cmd {
	case CmdMove:
		return c.move(arg)
	case CmdInteract:
		return c.interact(arg)
	case CmdLook:
		return CommandResult{Message: c.game.Look()}
	case CmdSave:
		return c.save(ctx)
	case CmdLoad:
		return c.load(ctx)
	case CmdQuit:
		return CommandResult{Message: "Farewell, traveller.", Quit: true}
	case CmdHelp:
		return CommandResult{Message: HelpText}
	case CmdMemory:
		return c.memory(arg)
	default:
		return CommandResult{Message: InvalidAction}
	}
}

// Shutdown closes any open interaction so its memory is kept.
func (c *Controller) Shutdown(ctx context.Context) {
	if res, ok := c.sessions.CloseActive(ctx); ok {
		c.logger.Info("Interaction closed on shutdown", "turns", res.Turns, "summarized", res.Summarized)
	}
}

func (c *Controller) converse(ctx context.Context, s *session.Session, input string) CommandResult {
	name := s.Target().Name
	if session.IsExit(input) {
		res, _ := c.sessions.CloseActive(ctx)
		msg := fmt.Sprintf("You step away from %s.", name)
		if res.Summarized {
			msg += fmt.Sprintf(" %s will remember this.", name)
		}
		return CommandResult{Message: msg}
	}

	reply, err := s.Say(ctx, input)
	if err != nil {
		return CommandResult{Message: err.Error()}
	}
	return CommandResult{Message: reply, Speaker: name}
}

func (c *Controller) move(direction string) CommandResult {
	if direction == "" {
		return CommandResult{Message: "Where do you want to go?"}
	}
	msg, moved := c.game.MoveCharacter(c.game.Player(), direction)
	if moved {
		msg += "\n\n" + c.game.Look()
	}
	return CommandResult{Message: msg}
}

func (c *Controller) interact(name string) CommandResult {
	if name == "" {
		return CommandResult{Message: "Who do you want to talk to?"}
	}
	name = c.title.String(strings.ToLower(name))

	target, ok := c.game.Character(name)
	if !ok {
		return CommandResult{Message: fmt.Sprintf("%s is not here.", name)}
	}
	if _, err := c.sessions.Open(c.game.Player(), target); err != nil {
		switch {
		case errors.Is(err, session.ErrSelfInteraction):
			return CommandResult{Message: "You cannot interact with yourself."}
		case errors.Is(err, session.ErrNotHere):
			return CommandResult{Message: fmt.Sprintf("%s is not here.", target.Name)}
		case errors.Is(err, session.ErrSessionOpen):
			return CommandResult{Message: fmt.Sprintf("%s is busy.", target.Name)}
		default:
			return CommandResult{Message: err.Error()}
		}
	}
	return CommandResult{Message: fmt.Sprintf("You approach %s. Type '%s' to walk away.", target.Name, session.ExitToken)}
}

func (c *Controller) memory(name string) CommandResult {
	if name == "" {
		return CommandResult{Message: "Whose memory?"}
	}
	target, ok := c.game.Character(c.title.String(strings.ToLower(name)))
	if !ok {
		return CommandResult{Message: fmt.Sprintf("There is no one called %s.", name)}
	}
	entries := target.Memory()
	if len(entries) == 0 {
		return CommandResult{Message: fmt.Sprintf("%s remembers nothing yet.", target.Name)}
	}
	var b strings.Builder
	b.WriteString(target.Name + " remembers:")
	for _, e := range entries {
		b.WriteString("\n- " + e.Content)
	}
	return CommandResult{Message: b.String()}
}

func (c *Controller) save(ctx context.Context) CommandResult {
	if err := c.store.SaveGame(ctx, c.game.Snapshot()); err != nil {
		c.logger.Error("Failed to save game", "error", err)
		return CommandResult{Message: fmt.Sprintf("Failed to save game: %v", err)}
	}
	return CommandResult{Message: "Game saved."}
}

func (c *Controller) load(ctx context.Context) CommandResult {
	save, err := c.store.LoadGame(ctx)
	if errors.Is(err, storage.ErrSaveNotFound) {
		return CommandResult{Message: "No saved game found."}
	}
	if err != nil {
		c.logger.Error("Failed to load game", "error", err)
		return CommandResult{Message: fmt.Sprintf("Failed to load game: %v", err)}
	}

	warnings, err := c.game.Restore(save)
	if err != nil {
		c.logger.Error("Failed to restore game", "error", err)
		return CommandResult{Message: fmt.Sprintf("Failed to load game: %v", err)}
	}

	lines := append(warnings, "Game loaded.", "", c.game.Look())
	return CommandResult{Message: strings.Join(lines, "\n")}
}
