// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	WorkDir string        `yaml:"workdir"`
	Saves   SavesConfig   `yaml:"saves"`
	Content ContentConfig `yaml:"content"`
	Engine  EngineConfig  `yaml:"engine"`
	Logging LoggingConfig `yaml:"logging"`
}

// SavesConfig configures how profiles are written to disk.
type SavesConfig struct {
	Format string `yaml:"format"` // "json" or "yaml"

	// DumpDefaults writes every profile field out, even those still
	// at their default, so save files are fully self-describing.
	DumpDefaults bool `yaml:"dump_defaults"`
}

// ContentConfig configures where content packs are read from.
type ContentConfig struct {
	Dir string `yaml:"dir"`
}

// EngineConfig configures the command engine.
type EngineConfig struct {
	DisableCoverageCheck bool `yaml:"disable_coverage_check"`
	ShowStats            bool `yaml:"show_stats"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "console"
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(&cfg)

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// FromEnv creates configuration entirely from environment variables.
// Every setting has a default, so this always yields a runnable
// configuration unless an override is invalid.
//
// Environment variables:
//
//	PARLEY_WORKDIR               - Working directory (default: ~/.parley)
//	PARLEY_SAVES_FORMAT          - Save format: json or yaml (default: json)
//	PARLEY_SAVES_DUMP_DEFAULTS   - Write defaulted fields into saves (default: false)
//	PARLEY_CONTENT_DIR           - Content pack directory (default: <workdir>/content)
//	PARLEY_ENGINE_COVERAGE_CHECK - Check patterns for shadowing (default: true)
//	PARLEY_ENGINE_SHOW_STATS     - Track dispatch statistics (default: false)
//	PARLEY_LOG_LEVEL             - Log level: debug, info, warn, error (default: info)
//	PARLEY_LOG_FORMAT            - Log format: json or console (default: json)
func FromEnv() (*Config, error) {
	var cfg Config

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// LoadWithFallback tries to load from file, falls back to environment
// variables and defaults. A missing file is not an error; a present but
// broken file is.
func LoadWithFallback(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return FromEnv()
}

// Default returns the configuration with every default applied and no
// file or environment input.
func Default() *Config {
	var cfg Config
	setDefaults(&cfg)
	return &cfg
}

// applyEnvOverrides applies PARLEY_* environment variables to the config.
// Environment variables always override file-based configuration.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PARLEY_WORKDIR"); v != "" {
		cfg.WorkDir = v
	}

	if v := os.Getenv("PARLEY_SAVES_FORMAT"); v != "" {
		cfg.Saves.Format = v
	}
	if v := os.Getenv("PARLEY_SAVES_DUMP_DEFAULTS"); v != "" {
		cfg.Saves.DumpDefaults = parseBool(v)
	}

	if v := os.Getenv("PARLEY_CONTENT_DIR"); v != "" {
		cfg.Content.Dir = v
	}

	if v := os.Getenv("PARLEY_ENGINE_COVERAGE_CHECK"); v != "" {
		cfg.Engine.DisableCoverageCheck = !parseBool(v)
	}
	if v := os.Getenv("PARLEY_ENGINE_SHOW_STATS"); v != "" {
		cfg.Engine.ShowStats = parseBool(v)
	}

	if v := os.Getenv("PARLEY_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("PARLEY_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}

// parseBool parses a boolean from common string values.
func parseBool(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "true" || v == "1" || v == "yes" || v == "on"
}

func setDefaults(cfg *Config) {
	if cfg.WorkDir == "" {
		cfg.WorkDir = defaultWorkDir()
	}

	if cfg.Saves.Format == "" {
		cfg.Saves.Format = "json"
	}

	if cfg.Content.Dir == "" {
		cfg.Content.Dir = filepath.Join(cfg.WorkDir, "content")
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

func defaultWorkDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".parley"
	}
	return filepath.Join(home, ".parley")
}

func validate(cfg *Config) error {
	validSaveFormats := map[string]bool{"json": true, "yaml": true}
	if !validSaveFormats[cfg.Saves.Format] {
		return fmt.Errorf("saves.format must be 'json' or 'yaml', got %q", cfg.Saves.Format)
	}

	validLogFormats := map[string]bool{"json": true, "console": true}
	if !validLogFormats[cfg.Logging.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console', got %q", cfg.Logging.Format)
	}

	return nil
}
