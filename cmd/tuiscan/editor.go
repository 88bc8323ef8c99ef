package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/tuiscan/internal/catalog"
	"github.com/verte-zerg/tuiscan/internal/config"
	"github.com/verte-zerg/tuiscan/internal/logging"
	"github.com/verte-zerg/tuiscan/internal/model"
	"github.com/verte-zerg/tuiscan/internal/scansion"
	"github.com/verte-zerg/tuiscan/internal/session"
	"github.com/verte-zerg/tuiscan/internal/store"
	"github.com/verte-zerg/tuiscan/internal/tui"
)

var (
	editorUser              string
	editorStart             string
	editorPoemID            int64
	editorOwnPath           string
	editorOnlyAuthoritative bool
)

func addEditorFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&editorUser, "user", "", "reader name (empty: not logged in)")
	cmd.Flags().StringVar(&editorStart, "start", scansion.BlankSlate, "starting scansion label")
	cmd.Flags().Int64Var(&editorPoemID, "poem", 0, "catalog poem id (default: random)")
	cmd.Flags().StringVar(&editorOwnPath, "own", "", "scan your own poem from a TOML poem file")
	cmd.Flags().BoolVar(&editorOnlyAuthoritative, "only-authoritative", false, "pick random poems with an authoritative scansion only")
	cmd.MarkFlagsMutuallyExclusive("poem", "own")
}

func runEditorCmd(cmd *cobra.Command, _ []string) error {
	logFile, err := logging.OpenFile(config.DefaultLogPath())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := logFile.Close(); cerr != nil {
			// Best-effort close for the log file.
			_ = cerr
		}
	}()
	fileCfg, log, err := setup(logFile)
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "user", &editorUser, fileCfg.User.Name)
	applyStringConfig(cmd, "start", &editorStart, fileCfg.Editor.Start)
	applyBoolConfig(cmd, "only-authoritative", &editorOnlyAuthoritative, fileCfg.Editor.OnlyAuthoritative)

	cfg := model.Config{
		User:              strings.TrimSpace(editorUser),
		Start:             editorStart,
		PoemID:            editorPoemID,
		OwnPoemPath:       editorOwnPath,
		OnlyAuthoritative: editorOnlyAuthoritative,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	ctx := context.Background()
	st, err := openStore(ctx, log)
	if err != nil {
		return err
	}
	defer closeStore(st, log)

	identity := store.NewIdentity(st, cfg.User, log)
	opts := tui.Options{User: cfg.User}
	if user, ok := identity.User(ctx); ok {
		opts.Score = user.Score
		opts.HasScore = true
	} else if cfg.User != "" {
		logErrf("Reader %q is not registered; submissions will not be scored. Register with: tuiscan register %s\n", cfg.User, cfg.User)
	}

	poem, own, err := pickPoem(ctx, st, identity, cfg)
	if err != nil {
		return err
	}

	sess := session.New(log, cfg.User, identity, st, st)
	if err := sess.Load(poem, own); err != nil {
		return err
	}
	if cfg.Start != "" && cfg.Start != scansion.BlankSlate {
		if err := sess.SelectStart(cfg.Start); err != nil {
			return fmt.Errorf("%w (available: %s)", err, strings.Join(poem.Labels(), ", "))
		}
	}

	program := tea.NewProgram(tui.NewModel(sess, log, opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// pickPoem resolves the poem to edit. Readers who cannot record corrections only
// get random poems that have an authoritative scansion to be scored against.
func pickPoem(ctx context.Context, st *store.Store, identity *store.Identity, cfg model.Config) (scansion.Poem, bool, error) {
	if cfg.OwnPoemPath != "" {
		poem, err := catalog.Load(cfg.OwnPoemPath)
		if err != nil {
			return scansion.Poem{}, false, err
		}
		return poem, true, nil
	}
	id := cfg.PoemID
	if id == 0 {
		onlyAuthoritative := cfg.OnlyAuthoritative || !identity.IsPromoted(ctx)
		var err error
		id, err = st.RandomPoemID(ctx, onlyAuthoritative)
		if errors.Is(err, store.ErrPoemNotFound) {
			return scansion.Poem{}, false, fmt.Errorf("no poems to scan; import some with: tuiscan import FILE")
		}
		if err != nil {
			return scansion.Poem{}, false, err
		}
	}
	poem, err := st.GetPoem(ctx, id)
	if err != nil {
		return scansion.Poem{}, false, err
	}
	return poem, false, nil
}

func validateConfig(cfg model.Config) error {
	if cfg.PoemID < 0 {
		return fmt.Errorf("--poem must be > 0")
	}
	if strings.TrimSpace(cfg.Start) == "" {
		return fmt.Errorf("--start must not be empty")
	}
	return nil
}
