package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validWorld = `
world_description: A fog-bound fishing village.
player: Mara
locations:
  Hall:
    description: A drafty hall.
    exits:
      north: Library
  Library:
    description: Dusty shelves.
    connections: [Hall]
characters:
  Mara:
    personality: Curious
    location: Hall
    relationships:
      Nobody: old rival
  Tomas:
    location: Library
    following: Mara
`

func writeWorld(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestValidateFile(t *testing.T) {
	tests := []struct {
		name         string
		file         string
		body         string
		wantErr      string
		wantWarnings int
	}{
		{name: "valid world", file: "world.yaml", body: validWorld, wantWarnings: 1},
		{name: "wrong extension", file: "world.json", body: validWorld, wantErr: "must have a .yaml or .yml extension"},
		{name: "unknown field", file: "world.yml", body: validWorld + "weather: rainy\n", wantErr: "failed strict YAML decoding"},
		{
			name:    "dangling location",
			file:    "world.yaml",
			body:    "locations:\n  Hall: {}\ncharacters:\n  Mara:\n    location: Attic\n",
			wantErr: `character "Mara" starts in unknown location "Attic"`,
		},
		{
			name:    "padded name",
			file:    "world.yaml",
			body:    "locations:\n  \" Hall\": {}\ncharacters:\n  Mara:\n    location: \" Hall\"\n",
			wantErr: "has leading or trailing spaces",
		},
		{name: "empty file", file: "world.yaml", body: "", wantErr: "world document is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &WorldValidator{}
			err := v.validateFile(writeWorld(t, tt.file, tt.body))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, v.warnings, tt.wantWarnings)
		})
	}
}

func TestValidateFile_Missing(t *testing.T) {
	v := &WorldValidator{}
	err := v.validateFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "failed to read file")
}
