// Package prefs persists choices made inside the TUI between runs.
// Preferences live in ~/.config/kulku/prefs.toml.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/kulku/internal/config"
)

// Prefs holds what the user last picked at runtime.
type Prefs struct {
	Theme string `toml:"theme"`
}

// DefaultPath is where prefs are kept unless the caller overrides it.
const DefaultPath = "~/.config/kulku/prefs.toml"

// Load reads prefs from path. Any problem reading the file yields empty prefs;
// a broken prefs file must never keep the program from starting.
func Load(path string) Prefs {
	resolved, err := resolvePath(path)
	if err != nil {
		return Prefs{}
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return Prefs{}
	}
	var p Prefs
	if err := toml.Unmarshal(data, &p); err != nil {
		return Prefs{}
	}
	p.Theme = strings.TrimSpace(p.Theme)
	return p
}

// Save writes prefs to path, creating parent directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	return config.ExpandPath(path)
}
