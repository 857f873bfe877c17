package tracks

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/purgatorium/note"
)

//go:embed *.json
var TracksFS embed.FS

// Dir is the on-disk directory checked before the embedded tracks.
const Dir = "tracks"

// Default is the embedded track used when no track is configured.
const Default = "demo_notes.json"

// Load reads a track from disk first and falls back to the embedded tracks.
func Load(name string) ([]note.Event, error) {
	if name == "" {
		name = Default
	}
	data, err := read(name)
	if err != nil {
		return nil, fmt.Errorf("tracks: read %s: %w", name, err)
	}
	events, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("tracks: %s: %w", name, err)
	}
	return events, nil
}

// List returns the names of the embedded tracks.
func List() []string {
	entries, err := fs.ReadDir(TracksFS, ".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names
}

// read tries name as given, then under Dir, then the embedded copy.
func read(name string) ([]byte, error) {
	if data, err := os.ReadFile(name); err == nil {
		return data, nil
	}
	clean := filepath.ToSlash(name)
	if after, ok := strings.CutPrefix(clean, Dir+"/"); ok {
		clean = after
	}
	if data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return TracksFS.ReadFile(clean)
}
