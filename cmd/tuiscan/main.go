// Package main provides the CLI entrypoint for tuiscan.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/tuiscan/internal/catalog"
	"github.com/verte-zerg/tuiscan/internal/config"
	"github.com/verte-zerg/tuiscan/internal/logging"
	"github.com/verte-zerg/tuiscan/internal/store"
)

const (
	defaultCurveWindow = 10
	defaultLogLevel    = "info"
	defaultLogFormat   = "text"
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuiscan",
		Short:         "TUI poetry scansion trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runEditorCmd,
	}
	addEditorFlags(rootCmd)

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newPoemsCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

// setup loads the config file and builds the logger. Records go to w.
func setup(w io.Writer) (config.FileConfig, *slog.Logger, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, nil, fmt.Errorf("failed to load config: %w", err)
	}
	log := logging.New(logging.Options{
		Level:  config.Value(fileCfg.Log.Level, defaultLogLevel),
		Format: config.Value(fileCfg.Log.Format, defaultLogFormat),
	}, w)
	return fileCfg, log, nil
}

// openStore opens the database and seeds the catalog on first use.
func openStore(ctx context.Context, log *slog.Logger) (*store.Store, error) {
	path := config.DefaultDBPath()
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	seed, err := catalog.Seed()
	if err != nil {
		closeStore(st, log)
		return nil, fmt.Errorf("failed to load seed poem: %w", err)
	}
	seeded, err := st.SeedIfEmpty(ctx, seed)
	if err != nil {
		closeStore(st, log)
		return nil, fmt.Errorf("failed to seed catalog: %w", err)
	}
	if seeded {
		log.Info("seeded empty catalog", "title", seed.Title, "db", path)
	}
	return st, nil
}

func closeStore(st *store.Store, log *slog.Logger) {
	if cerr := st.Close(); cerr != nil {
		log.Error("failed to close db", "error", cerr)
	}
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
