package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/emberforge/parley/config"
)

func TestLoad_ValidConfig(t *testing.T) {
	content := `
workdir: "/tmp/parley-test"

saves:
  format: "yaml"
  dump_defaults: true

content:
  dir: "/tmp/parley-test/packs"

engine:
  disable_coverage_check: true
  show_stats: true

logging:
  level: "debug"
  format: "console"
`

	cfg := writeAndLoad(t, content)

	if cfg.WorkDir != "/tmp/parley-test" {
		t.Errorf("WorkDir = %s, want /tmp/parley-test", cfg.WorkDir)
	}
	if cfg.Saves.Format != "yaml" {
		t.Errorf("Saves.Format = %s, want yaml", cfg.Saves.Format)
	}
	if !cfg.Saves.DumpDefaults {
		t.Error("Saves.DumpDefaults = false, want true")
	}
	if cfg.Content.Dir != "/tmp/parley-test/packs" {
		t.Errorf("Content.Dir = %s, want /tmp/parley-test/packs", cfg.Content.Dir)
	}
	if !cfg.Engine.DisableCoverageCheck {
		t.Error("Engine.DisableCoverageCheck = false, want true")
	}
	if !cfg.Engine.ShowStats {
		t.Error("Engine.ShowStats = false, want true")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %s, want debug", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %s, want console", cfg.Logging.Format)
	}
}

func TestLoad_Defaults(t *testing.T) {
	content := `
workdir: "/tmp/parley-defaults"
`

	cfg := writeAndLoad(t, content)

	// Check defaults
	if cfg.Saves.Format != "json" {
		t.Errorf("default Saves.Format = %s, want json", cfg.Saves.Format)
	}
	if cfg.Saves.DumpDefaults {
		t.Error("default Saves.DumpDefaults = true, want false")
	}
	if want := filepath.Join("/tmp/parley-defaults", "content"); cfg.Content.Dir != want {
		t.Errorf("default Content.Dir = %s, want %s", cfg.Content.Dir, want)
	}
	if cfg.Engine.DisableCoverageCheck {
		t.Error("default Engine.DisableCoverageCheck = true, want false")
	}
	if cfg.Engine.ShowStats {
		t.Error("default Engine.ShowStats = true, want false")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("default Logging.Level = %s, want info", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("default Logging.Format = %s, want json", cfg.Logging.Format)
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	os.Setenv("TEST_PARLEY_WORKDIR", "/tmp/parley-env")
	defer os.Unsetenv("TEST_PARLEY_WORKDIR")

	content := `
workdir: "${TEST_PARLEY_WORKDIR}"
`

	cfg := writeAndLoad(t, content)

	if cfg.WorkDir != "/tmp/parley-env" {
		t.Errorf("WorkDir = %s, want /tmp/parley-env", cfg.WorkDir)
	}
}

func TestLoad_InvalidSaveFormat(t *testing.T) {
	content := `
saves:
  format: "toml"
`

	_, err := writeAndLoadErr(t, content)
	if err == nil {
		t.Fatal("expected error for invalid saves.format")
	}
	if !strings.Contains(err.Error(), "saves.format") {
		t.Errorf("error = %v, want saves.format mentioned", err)
	}
}

func TestLoad_InvalidLogFormat(t *testing.T) {
	content := `
logging:
  format: "xml"
`

	_, err := writeAndLoadErr(t, content)
	if err == nil {
		t.Fatal("expected error for invalid logging.format")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	content := `
workdir: "/tmp/parley"
  this is not valid yaml: [
`
	_, err := writeAndLoadErr(t, content)
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := config.Load("/nonexistent/path/parley.yaml")
	if err == nil {
		t.Fatal("expected error for nonexistent file")
	}
}

func TestFromEnv(t *testing.T) {
	os.Setenv("PARLEY_WORKDIR", "/tmp/parley-from-env")
	os.Setenv("PARLEY_SAVES_FORMAT", "yaml")
	os.Setenv("PARLEY_SAVES_DUMP_DEFAULTS", "true")
	os.Setenv("PARLEY_LOG_LEVEL", "debug")
	os.Setenv("PARLEY_ENGINE_SHOW_STATS", "true")
	defer unsetParleyEnv()

	cfg, err := config.FromEnv()
	if err != nil {
		t.Fatalf("FromEnv error: %v", err)
	}

	if cfg.WorkDir != "/tmp/parley-from-env" {
		t.Errorf("WorkDir = %s, want /tmp/parley-from-env", cfg.WorkDir)
	}
	if cfg.Saves.Format != "yaml" {
		t.Errorf("Saves.Format = %s, want yaml", cfg.Saves.Format)
	}
	if !cfg.Saves.DumpDefaults {
		t.Error("Saves.DumpDefaults = false, want true")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %s, want debug", cfg.Logging.Level)
	}
	if !cfg.Engine.ShowStats {
		t.Error("Engine.ShowStats = false, want true")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	unsetParleyEnv()

	cfg, err := config.FromEnv()
	if err != nil {
		t.Fatalf("FromEnv error: %v", err)
	}

	if cfg.WorkDir == "" {
		t.Error("default WorkDir is empty")
	}
	if cfg.Saves.Format != "json" {
		t.Errorf("default Saves.Format = %s, want json", cfg.Saves.Format)
	}
	if filepath.Base(cfg.Content.Dir) != "content" {
		t.Errorf("default Content.Dir = %s, want <workdir>/content", cfg.Content.Dir)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	os.Setenv("PARLEY_SAVES_FORMAT", "json")
	os.Setenv("PARLEY_LOG_LEVEL", "error")
	defer func() {
		os.Unsetenv("PARLEY_SAVES_FORMAT")
		os.Unsetenv("PARLEY_LOG_LEVEL")
	}()

	content := `
workdir: "/tmp/parley-override"
saves:
  format: "yaml"
logging:
  level: "info"
`

	cfg := writeAndLoad(t, content)

	// Env should override file
	if cfg.Saves.Format != "json" {
		t.Errorf("Saves.Format = %s, want json (env override)", cfg.Saves.Format)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("Logging.Level = %s, want error (env override)", cfg.Logging.Level)
	}
	// File value should still be used for non-overridden
	if cfg.WorkDir != "/tmp/parley-override" {
		t.Errorf("WorkDir = %s, want /tmp/parley-override", cfg.WorkDir)
	}
}

func TestEnvOverrides_CoverageCheck(t *testing.T) {
	tests := []struct {
		value       string
		wantDisable bool
	}{
		{"true", false},
		{"1", false},
		{"false", true},
		{"off", true},
	}

	for _, tt := range tests {
		os.Setenv("PARLEY_ENGINE_COVERAGE_CHECK", tt.value)

		cfg, err := config.FromEnv()
		if err != nil {
			t.Fatalf("FromEnv error: %v", err)
		}
		if cfg.Engine.DisableCoverageCheck != tt.wantDisable {
			t.Errorf("value=%q: DisableCoverageCheck = %v, want %v",
				tt.value, cfg.Engine.DisableCoverageCheck, tt.wantDisable)
		}

		os.Unsetenv("PARLEY_ENGINE_COVERAGE_CHECK")
	}
}

func TestParseBoolValues(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"on", true},
		{"false", false},
		{"0", false},
		{"no", false},
		{"off", false},
		{"invalid", false},
	}

	for _, tt := range tests {
		os.Setenv("PARLEY_ENGINE_SHOW_STATS", tt.value)

		cfg, err := config.FromEnv()
		if err != nil {
			t.Fatalf("FromEnv error: %v", err)
		}
		if cfg.Engine.ShowStats != tt.expected {
			t.Errorf("value=%q: Engine.ShowStats = %v, want %v", tt.value, cfg.Engine.ShowStats, tt.expected)
		}

		os.Unsetenv("PARLEY_ENGINE_SHOW_STATS")
	}
}

func TestLoadWithFallback_FileExists(t *testing.T) {
	content := `
workdir: "/tmp/parley-file"
`

	dir := t.TempDir()
	path := filepath.Join(dir, "parley.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.LoadWithFallback(path)
	if err != nil {
		t.Fatalf("LoadWithFallback error: %v", err)
	}

	if cfg.WorkDir != "/tmp/parley-file" {
		t.Errorf("WorkDir = %s, want /tmp/parley-file", cfg.WorkDir)
	}
}

func TestLoadWithFallback_MissingFile(t *testing.T) {
	unsetParleyEnv()

	cfg, err := config.LoadWithFallback("/nonexistent/parley.yaml")
	if err != nil {
		t.Fatalf("LoadWithFallback error: %v", err)
	}

	if cfg.Saves.Format != "json" {
		t.Errorf("Saves.Format = %s, want json (defaults)", cfg.Saves.Format)
	}
}

func TestLoadWithFallback_BrokenFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "parley.yaml")
	if err := os.WriteFile(path, []byte("saves:\n  format: broken\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := config.LoadWithFallback(path); err == nil {
		t.Fatal("expected error for broken config file")
	}
}

func TestDefault(t *testing.T) {
	cfg := config.Default()

	if cfg.Saves.Format != "json" {
		t.Errorf("Default Saves.Format = %s, want json", cfg.Saves.Format)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Default Logging.Level = %s, want info", cfg.Logging.Level)
	}
	if cfg.WorkDir == "" {
		t.Error("Default WorkDir is empty")
	}
}

// Helpers

func unsetParleyEnv() {
	for _, key := range []string{
		"PARLEY_WORKDIR",
		"PARLEY_SAVES_FORMAT",
		"PARLEY_SAVES_DUMP_DEFAULTS",
		"PARLEY_CONTENT_DIR",
		"PARLEY_ENGINE_COVERAGE_CHECK",
		"PARLEY_ENGINE_SHOW_STATS",
		"PARLEY_LOG_LEVEL",
		"PARLEY_LOG_FORMAT",
	} {
		os.Unsetenv(key)
	}
}

func writeAndLoad(t *testing.T, content string) *config.Config {
	t.Helper()
	cfg, err := writeAndLoadErr(t, content)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	return cfg
}

func writeAndLoadErr(t *testing.T, content string) (*config.Config, error) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "parley.yaml")

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return config.Load(path)
}
