package scenario

// Location is a place in the world document.
type Location struct {
	Description string            `yaml:"description,omitempty"`
	Exits       map[string]string `yaml:"exits,omitempty"`       // Direction → location name
	Connections []string          `yaml:"connections,omitempty"` // Location names reachable by name
}

// AllExits merges labelled exits with plain connections. A connection is
// reachable using the destination name as its label; a labelled exit wins
// when both use the same label.
func (l Location) AllExits() map[string]string {
	exits := make(map[string]string, len(l.Exits)+len(l.Connections))
	for _, dest := range l.Connections {
		exits[dest] = dest
	}
	for label, dest := range l.Exits {
		exits[label] = dest
	}
	return exits
}
