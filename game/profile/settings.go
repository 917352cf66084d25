package profile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/emberforge/parley/core/document"
)

const settingsFile = "settings.yaml"

// Init creates the working directory layout.
func Init(workdir string) error {
	if err := os.MkdirAll(filepath.Join(workdir, "saves"), 0o755); err != nil {
		return fmt.Errorf("init working directory: %w", err)
	}
	return nil
}

// SettingsPath returns where launcher settings live under a working
// directory.
func SettingsPath(workdir string) string {
	return filepath.Join(workdir, settingsFile)
}

// DefaultSettings returns the launcher settings a fresh working
// directory starts with. New profiles pick their gamemode and
// difficulty up from here.
func DefaultSettings() map[string]any {
	return map[string]any{
		"default_gamemode":   "regular",
		"default_difficulty": "normal",
	}
}

// LoadSettings reads launcher settings. A missing or unreadable file
// is an error; callers decide whether to rewrite defaults.
func LoadSettings(workdir string) (map[string]any, error) {
	return document.LoadFile(SettingsPath(workdir))
}

// WriteSettings writes launcher settings.
func WriteSettings(workdir string, m map[string]any) error {
	return document.DumpFile(SettingsPath(workdir), m)
}
