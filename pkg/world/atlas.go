// Package world holds the location graph: named locations joined by labelled
// exits.
package world

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jwebster45206/wayfarer/pkg/scenario"
)

var (
	ErrUnknownLocation = errors.New("unknown location")
	ErrNoExit          = errors.New("no such exit")
)

// Location is a resolved place in the world.
type Location struct {
	Name        string
	Description string
	Exits       map[string]string // Label → destination name, as declared

	exits map[string]*Location // Label → destination; nil when unresolved
}

// Atlas indexes every location by name.
type Atlas struct {
	locations map[string]*Location
}

// NewAtlas builds the graph in two passes: every location record is created
// first, then exits are linked. Exits naming a missing location stay in the
// graph but resolve to nothing.
func NewAtlas(specs map[string]scenario.Location) *Atlas {
	a := &Atlas{locations: make(map[string]*Location, len(specs))}

	for name, spec := range specs {
		a.locations[name] = &Location{
			Name:        name,
			Description: spec.Description,
			Exits:       spec.AllExits(),
		}
	}

	for _, loc := range a.locations {
		loc.exits = make(map[string]*Location, len(loc.Exits))
		for label, dest := range loc.Exits {
			loc.exits[label] = a.locations[dest]
		}
	}

	return a
}

// Get returns the named location.
func (a *Atlas) Get(name string) (*Location, bool) {
	loc, ok := a.locations[name]
	return loc, ok
}

// Names returns all location names in sorted order.
func (a *Atlas) Names() []string {
	names := make([]string, 0, len(a.locations))
	for name := range a.locations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Move resolves direction from the named location. Labels match
// case-insensitively.
func (a *Atlas) Move(from, direction string) (*Location, error) {
	src, ok := a.locations[from]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLocation, from)
	}
	dest, ok := src.Exit(direction)
	if !ok {
		return nil, fmt.Errorf("%w: %q from %s", ErrNoExit, direction, from)
	}
	return dest, nil
}

// Exit returns the location reached through label. Unresolved exits report
// false.
func (l *Location) Exit(label string) (*Location, bool) {
	label = strings.TrimSpace(label)
	if dest, ok := l.exits[label]; ok {
		return dest, dest != nil
	}
	for candidate, dest := range l.exits {
		if strings.EqualFold(candidate, label) {
			return dest, dest != nil
		}
	}
	return nil, false
}

// ExitLabels returns the exit labels in sorted order.
func (l *Location) ExitLabels() []string {
	labels := make([]string, 0, len(l.Exits))
	for label := range l.Exits {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
