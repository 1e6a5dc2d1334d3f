// Package state owns the running game: the cast, the location graph, the
// player's position, and the command surface the console drives.
package state

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jwebster45206/wayfarer/pkg/actor"
	"github.com/jwebster45206/wayfarer/pkg/scenario"
	"github.com/jwebster45206/wayfarer/pkg/storage"
	"github.com/jwebster45206/wayfarer/pkg/world"
)

var (
	ErrNoPlayer      = errors.New("no player character selected")
	ErrUnknownPlayer = errors.New("player is not a character in this world")
)

// FollowPolicy decides who moves along with a character.
type FollowPolicy string

const (
	// FollowNone moves only the mover.
	FollowNone FollowPolicy = "none"
	// FollowFollowing also moves co-located characters that follow the
	// mover, and their followers in turn.
	FollowFollowing FollowPolicy = "following"
	// FollowColocated moves everyone who shares the mover's location.
	FollowColocated FollowPolicy = "colocated"
)

// ParseFollowPolicy accepts the policy names case-insensitively. An empty
// string is FollowNone.
func ParseFollowPolicy(s string) (FollowPolicy, error) {
	switch p := FollowPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return FollowNone, nil
	case FollowNone, FollowFollowing, FollowColocated:
		return p, nil
	default:
		return FollowNone, fmt.Errorf("unknown follow policy %q", s)
	}
}

// Game is the state of one play-through.
type Game struct {
	ID uuid.UUID

	world      *scenario.Scenario
	atlas      *world.Atlas
	characters map[string]*actor.Character
	player     *actor.Character
	policy     FollowPolicy
	logger     *slog.Logger
}

// NewGame builds the cast and location graph from a validated world
// document. playerName falls back to the document's default player.
func NewGame(doc *scenario.Scenario, playerName string, policy FollowPolicy, logger *slog.Logger) (*Game, error) {
	if doc == nil {
		return nil, errors.New("world document is nil")
	}
	if _, err := doc.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if policy == "" {
		policy = FollowNone
	}

	g := &Game{
		ID:         uuid.New(),
		world:      doc,
		atlas:      world.NewAtlas(doc.Locations),
		characters: make(map[string]*actor.Character, len(doc.Characters)),
		policy:     policy,
		logger:     logger,
	}
	for name, spec := range doc.Characters {
		g.characters[name] = actor.NewCharacter(name, spec)
	}

	if playerName = strings.TrimSpace(playerName); playerName == "" {
		playerName = doc.Player
	}
	if playerName == "" {
		return nil, ErrNoPlayer
	}
	player, ok := g.Character(playerName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlayer, playerName)
	}
	g.player = player

	logger.Info("Game started", "game_id", g.ID, "player", player.Name, "location", player.Location, "characters", len(g.characters), "follow_policy", policy)
	return g, nil
}

func (g *Game) Player() *actor.Character { return g.player }

func (g *Game) Atlas() *world.Atlas { return g.atlas }

func (g *Game) World() *scenario.Scenario { return g.world }

func (g *Game) FollowPolicy() FollowPolicy { return g.policy }

// Character looks a character up by exact name, then case-insensitively.
func (g *Game) Character(name string) (*actor.Character, bool) {
	if c, ok := g.characters[name]; ok {
		return c, true
	}
	for key, c := range g.characters {
		if strings.EqualFold(key, name) {
			return c, true
		}
	}
	return nil, false
}

// CharactersAt returns the characters in location, sorted by name.
func (g *Game) CharactersAt(location string) []*actor.Character {
	var here []*actor.Character
	for _, c := range g.characters {
		if c.Location == location {
			here = append(here, c)
		}
	}
	sort.Slice(here, func(i, j int) bool { return here[i].Name < here[j].Name })
	return here
}

// Move moves the player through the named exit.
func (g *Game) Move(direction string) string {
	msg, _ := g.MoveCharacter(g.player, direction)
	return msg
}

// MoveCharacter moves c through the named exit and reports what happened.
// A failed move changes nothing.
func (g *Game) MoveCharacter(c *actor.Character, direction string) (string, bool) {
	direction = strings.TrimSpace(direction)
	src := c.Location

	dest, err := g.atlas.Move(src, direction)
	if err != nil {
		g.logger.Debug("Move rejected", "character", c.Name, "direction", direction, "from", src, "error", err)
		return fmt.Sprintf("%s cannot go %s from the %s.", c.Name, direction, src), false
	}

	trailing := g.trailers(c, src)
	c.Location = dest.Name

	lines := []string{fmt.Sprintf("%s moves %s from the %s to the %s.", c.Name, direction, src, dest.Name)}
	for _, f := range trailing {
		f.Location = dest.Name
		lines = append(lines, fmt.Sprintf("%s follows %s.", f.Name, c.Name))
	}
	g.logger.Debug("Character moved", "character", c.Name, "from", src, "to", dest.Name, "followers", len(trailing))
	return strings.Join(lines, "\n"), true
}

// trailers returns who moves with leader under the current policy. Only
// characters standing in from are considered.
func (g *Game) trailers(leader *actor.Character, from string) []*actor.Character {
	switch g.policy {
	case FollowColocated:
		var out []*actor.Character
		for _, c := range g.CharactersAt(from) {
			if c != leader {
				out = append(out, c)
			}
		}
		return out

	case FollowFollowing:
		var out []*actor.Character
		moving := map[*actor.Character]bool{leader: true}
		queue := []*actor.Character{leader}
		for len(queue) > 0 {
			head := queue[0]
			queue = queue[1:]
			for _, c := range g.CharactersAt(from) {
				if moving[c] || !strings.EqualFold(c.Following, head.Name) {
					continue
				}
				moving[c] = true
				out = append(out, c)
				queue = append(queue, c)
			}
		}
		return out
	}
	return nil
}

// Look describes the player's location, its exits, and who else is there.
func (g *Game) Look() string {
	loc, ok := g.atlas.Get(g.player.Location)
	if !ok {
		return "You are in an unknown location."
	}

	var b strings.Builder
	b.WriteString("You are in the " + loc.Name + ".")
	if loc.Description != "" {
		b.WriteString(" " + loc.Description)
	}

	labels := loc.ExitLabels()
	if len(labels) == 0 {
		b.WriteString("\nThere are no exits.")
	} else {
		exits := make([]string, 0, len(labels))
		for _, label := range labels {
			if dest := loc.Exits[label]; dest != label {
				exits = append(exits, fmt.Sprintf("%s (%s)", label, dest))
			} else {
				exits = append(exits, label)
			}
		}
		b.WriteString("\nExits: " + strings.Join(exits, ", "))
	}

	var names []string
	for _, c := range g.CharactersAt(loc.Name) {
		if c != g.player {
			names = append(names, c.Name)
		}
	}
	if len(names) == 0 {
		b.WriteString("\nThere is no one else here.")
	} else {
		b.WriteString("\nCharacters here: " + strings.Join(names, ", "))
	}
	return b.String()
}

// Snapshot captures every character's location and memory.
func (g *Game) Snapshot() *storage.SaveFile {
	save := &storage.SaveFile{
		Player:     savedCharacter(g.player),
		Characters: make(map[string]storage.SavedCharacter, len(g.characters)),
	}
	for name, c := range g.characters {
		save.Characters[name] = savedCharacter(c)
	}
	return save
}

func savedCharacter(c *actor.Character) storage.SavedCharacter {
	return storage.SavedCharacter{
		Name:     c.Name,
		Location: c.Location,
		Memory:   c.Memory(),
	}
}

type restoreStep struct {
	c        *actor.Character
	location string
	memory   []actor.MemoryEntry
}

// Restore applies a saved game. The whole save is checked before anything
// changes: a missing or unknown player fails the load, while unknown
// characters and locations are skipped and reported as warnings.
func (g *Game) Restore(save *storage.SaveFile) ([]string, error) {
	if save == nil || strings.TrimSpace(save.Player.Name) == "" {
		return nil, ErrNoPlayer
	}
	player, ok := g.characters[save.Player.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlayer, save.Player.Name)
	}

	var (
		warnings []string
		steps    []restoreStep
	)
	plan := func(sc storage.SavedCharacter, c *actor.Character) {
		location := c.Location
		if sc.Location != "" {
			if _, ok := g.atlas.Get(sc.Location); ok {
				location = sc.Location
			} else {
				warnings = append(warnings, fmt.Sprintf("Location %q for %s not found in game data; keeping %s.", sc.Location, c.Name, c.Location))
			}
		}
		memory := make([]actor.MemoryEntry, 0, len(sc.Memory))
		blank := 0
		for _, e := range sc.Memory {
			if strings.TrimSpace(e.Content) == "" {
				blank++
				continue
			}
			memory = append(memory, e)
		}
		if blank > 0 {
			warnings = append(warnings, fmt.Sprintf("Dropped %d blank memory entries for %s.", blank, c.Name))
		}
		steps = append(steps, restoreStep{c: c, location: location, memory: memory})
	}

	names := make([]string, 0, len(save.Characters))
	for name := range save.Characters {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if name == player.Name {
			continue
		}
		c, ok := g.characters[name]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("Character %q from save file not found in game data.", name))
			continue
		}
		plan(save.Characters[name], c)
	}
	plan(save.Player, player)

	for _, s := range steps {
		s.c.Location = s.location
		s.c.RestoreMemory(s.memory)
	}
	g.player = player

	for _, w := range warnings {
		g.logger.Warn("Save file mismatch", "detail", w)
	}
	g.logger.Info("Game restored", "game_id", g.ID, "player", player.Name, "characters", len(steps))
	return warnings, nil
}
