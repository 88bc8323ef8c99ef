package main

import (
	"strings"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/tuiscan/internal/config"
	"github.com/verte-zerg/tuiscan/internal/model"
	"github.com/verte-zerg/tuiscan/internal/scansion"
)

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	template := defaultConfigTemplate()
	var cfg config.FileConfig
	if _, err := toml.Decode(template, &cfg); err != nil {
		t.Fatalf("template does not decode: %v", err)
	}
	if cfg.User.Name != nil || cfg.Editor.Start != nil {
		t.Fatalf("expected every value commented out")
	}

	uncommented := strings.NewReplacer("# name", "name", "# start", "start", "# level", "level").Replace(template)
	if _, err := toml.Decode(uncommented, &cfg); err != nil {
		t.Fatalf("uncommented template does not decode: %v", err)
	}
	if config.Value(cfg.Editor.Start, "") != scansion.BlankSlate {
		t.Fatalf("unexpected start: %v", cfg.Editor.Start)
	}
	if config.Value(cfg.User.Name, "") != "ariel" || config.Value(cfg.Log.Level, "") != defaultLogLevel {
		t.Fatalf("unexpected values: %+v", cfg)
	}
}

func TestValidateConfig(t *testing.T) {
	if err := validateConfig(model.Config{Start: scansion.BlankSlate}); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
	if err := validateConfig(model.Config{Start: scansion.BlankSlate, PoemID: -1}); err == nil {
		t.Fatalf("expected error for negative poem id")
	}
	if err := validateConfig(model.Config{Start: " "}); err == nil {
		t.Fatalf("expected error for empty start")
	}
}

func TestRootCommandWiring(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"config", "poems", "import", "show", "register", "stats"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Fatalf("missing subcommand %q", name)
		}
	}
	for _, flag := range []string{"user", "start", "poem", "own", "only-authoritative"} {
		if root.Flags().Lookup(flag) == nil {
			t.Fatalf("missing flag --%s", flag)
		}
	}
	root.SetArgs([]string{"--poem", "3", "--own", "poem.toml"})
	root.SilenceErrors = true
	if err := root.Execute(); err == nil || !strings.Contains(err.Error(), "none of the others") {
		t.Fatalf("expected mutually exclusive flag error, got %v", err)
	}
}
