// Package prefs persists the dashboard preferences that survive restarts:
// the color theme, the view the operator left open, and an optional poll
// cadence override. Stored as TOML in ~/.config/recdeck/prefs.toml.
//
// Preferences are cosmetic: any failure to read or parse them degrades to
// defaults rather than keeping the dashboard from starting.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs is the persisted preference set.
type Prefs struct {
	Theme       string `toml:"theme"`
	View        string `toml:"view"`         // "home" or "deleted"
	PollSeconds int    `toml:"poll_seconds"` // 0 uses the configured cadence
}

const (
	defaultPrefsPath = "~/.config/recdeck/prefs.toml"
	defaultTheme     = "Nightfox"

	// ViewHome and ViewDeleted are the persistable candidate views. They
	// mirror the store's view names without importing it.
	ViewHome    = "home"
	ViewDeleted = "deleted"

	// Poll overrides past this are treated as file corruption, not intent.
	maxPollSeconds = 300
)

// Default returns the preferences used when no file exists.
func Default() Prefs {
	return Prefs{Theme: defaultTheme, View: ViewHome}
}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from the given path (empty means the default
// path) and normalizes whatever it finds. Missing or unreadable files,
// bad TOML, and out-of-range fields all fold back to defaults.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Default(), nil
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return Default(), nil
	}

	var p Prefs
	if err := toml.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	return p.normalized(), nil
}

// normalized folds unknown or out-of-range values back to their defaults,
// field by field; one bad field does not discard the others.
func (p Prefs) normalized() Prefs {
	if strings.TrimSpace(p.Theme) == "" {
		p.Theme = defaultTheme
	}
	switch p.View {
	case ViewHome, ViewDeleted:
	default:
		p.View = ViewHome
	}
	if p.PollSeconds < 0 || p.PollSeconds > maxPollSeconds {
		p.PollSeconds = 0
	}
	return p
}

// Save writes preferences to the given path, creating directories as
// needed. Values are normalized first so the file never round-trips
// garbage.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	data, err := toml.Marshal(p.normalized())
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
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
