package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// EnvConfig holds overrides read from the environment.
type EnvConfig struct {
	User      string `env:"TUISCAN_USER"`
	LogLevel  string `env:"TUISCAN_LOG_LEVEL"`
	LogFormat string `env:"TUISCAN_LOG_FORMAT"`
}

// ReadEnv reads the environment overrides.
func ReadEnv() (EnvConfig, error) {
	var env EnvConfig
	if err := cleanenv.ReadEnv(&env); err != nil {
		return EnvConfig{}, fmt.Errorf("failed to read env: %w", err)
	}
	return env, nil
}

func applyEnv(cfg *FileConfig) error {
	env, err := ReadEnv()
	if err != nil {
		return err
	}
	override(&cfg.User.Name, env.User)
	override(&cfg.Log.Level, env.LogLevel)
	override(&cfg.Log.Format, env.LogFormat)
	return nil
}

func override(target **string, value string) {
	if value == "" {
		return
	}
	v := value
	*target = &v
}

// Value dereferences an optional setting, falling back to def.
func Value[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
