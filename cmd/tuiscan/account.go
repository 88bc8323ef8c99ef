package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/tuiscan/internal/model"
	"github.com/verte-zerg/tuiscan/internal/stats"
)

var (
	statsUser        string
	statsSince       string
	statsLast        int
	statsCurveWindow int
)

func newRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register NAME",
		Short: "Register a reader so submissions are scored",
		Args:  cobra.ExactArgs(1),
		RunE:  runRegisterCmd,
	}
}

func runRegisterCmd(cmd *cobra.Command, args []string) error {
	_, log, err := setup(os.Stderr)
	if err != nil {
		return err
	}
	ctx := context.Background()
	st, err := openStore(ctx, log)
	if err != nil {
		return err
	}
	defer closeStore(st, log)

	user, err := st.Register(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to register: %w", err)
	}
	log.Info("reader registered", "user", user.Name)
	_, err = fmt.Fprintf(cmd.OutOrStdout(),
		"Registered %s. Set [user] name = %q in the config or pass --user %s.\n", user.Name, user.Name, user.Name)
	return err
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show a reader's score and submission history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsUser, "user", "", "reader name (default: configured reader)")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N submissions")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, log, err := setup(os.Stderr)
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "user", &statsUser, fileCfg.User.Name)
	if strings.TrimSpace(statsUser) == "" {
		return fmt.Errorf("--user is required when no reader is configured")
	}
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}

	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}

	cfg := model.StatsConfig{
		User:        strings.TrimSpace(statsUser),
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
	}

	ctx := context.Background()
	st, err := openStore(ctx, log)
	if err != nil {
		return err
	}
	defer closeStore(st, log)

	report, err := stats.BuildReport(ctx, st, cfg)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	return stats.Render(cmd.OutOrStdout(), report)
}
