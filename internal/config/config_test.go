package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("TUISCAN_USER", "")
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.User.Name != nil {
		t.Fatalf("expected no user, got %q", *cfg.User.Name)
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `[user]
name = "ariel"

[editor]
start = "House Robber Scan"
only-authoritative = true

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("TUISCAN_USER", "")
	t.Setenv("TUISCAN_LOG_LEVEL", "")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if got := Value(cfg.User.Name, ""); got != "ariel" {
		t.Fatalf("expected user ariel, got %q", got)
	}
	if got := Value(cfg.Editor.Start, ""); got != "House Robber Scan" {
		t.Fatalf("unexpected start: %q", got)
	}
	if !Value(cfg.Editor.OnlyAuthoritative, false) {
		t.Fatalf("expected only-authoritative")
	}

	t.Setenv("TUISCAN_USER", "caliban")
	t.Setenv("TUISCAN_LOG_LEVEL", "warn")
	cfg, err = LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if got := Value(cfg.User.Name, ""); got != "caliban" {
		t.Fatalf("expected env user to win, got %q", got)
	}
	if got := Value(cfg.Log.Level, ""); got != "warn" {
		t.Fatalf("expected env log level, got %q", got)
	}
	if got := Value(cfg.Log.Format, "text"); got != "text" {
		t.Fatalf("expected default log format, got %q", got)
	}
}

func TestLoadConfigRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[user\nname="), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestDefaultPathsUseXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "tuiscan", "config.toml") {
		t.Fatalf("unexpected config path: %s", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "tuiscan", "tuiscan.db") {
		t.Fatalf("unexpected db path: %s", got)
	}
	if got := DefaultLogPath(); got != filepath.Join("/data", "tuiscan", "tuiscan.log") {
		t.Fatalf("unexpected log path: %s", got)
	}
}
