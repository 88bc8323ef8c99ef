// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	User   UserConfig   `toml:"user"`
	Editor EditorConfig `toml:"editor"`
	Log    LogConfig    `toml:"log"`
}

// UserConfig names the local reader. An empty name means not logged in.
type UserConfig struct {
	Name *string `toml:"name"`
}

// EditorConfig maps editor-related settings.
type EditorConfig struct {
	Start             *string `toml:"start"`
	OnlyAuthoritative *bool   `toml:"only-authoritative"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level  *string `toml:"level"`
	Format *string `toml:"format"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
// Environment overrides are applied on top of the file values.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	var cfg FileConfig
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
		}
	} else if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := applyEnv(&cfg); err != nil {
		return FileConfig{}, err
	}
	return cfg, nil
}
