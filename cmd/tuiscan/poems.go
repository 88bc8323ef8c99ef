package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/verte-zerg/tuiscan/internal/catalog"
	"github.com/verte-zerg/tuiscan/internal/config"
	"github.com/verte-zerg/tuiscan/internal/model"
	"github.com/verte-zerg/tuiscan/internal/scansion"
	"github.com/verte-zerg/tuiscan/internal/tui"
)

const defaultShowWidth = 80

var (
	poemsPoet          string
	poemsAuthoritative bool
	poemsLimit         int

	showLabel string
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newPoemsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "poems",
		Short: "List catalog poems",
		Args:  cobra.NoArgs,
		RunE:  runPoemsCmd,
	}
	cmd.Flags().StringVar(&poemsPoet, "poet", "", "poet filter")
	cmd.Flags().BoolVar(&poemsAuthoritative, "authoritative", false, "only poems with an authoritative scansion")
	cmd.Flags().IntVar(&poemsLimit, "limit", 0, "limit to N poems")
	return cmd
}

func runPoemsCmd(cmd *cobra.Command, _ []string) error {
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

	poems, err := st.ListPoems(ctx, model.PoemFilter{
		Poet:              poemsPoet,
		OnlyAuthoritative: poemsAuthoritative,
		Limit:             poemsLimit,
	})
	if err != nil {
		return fmt.Errorf("failed to list poems: %w", err)
	}
	if len(poems) == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "No poems found.")
		return err
	}

	rows := make([][]string, 0, len(poems))
	for _, p := range poems {
		auth := ""
		if p.HasAuthoritative {
			auth = "yes"
		}
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10), p.Title, p.Poet, p.FirstLine, auth, strconv.Itoa(p.Scansions),
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Title", "Poet", "First Line", "Authoritative", "Scansions").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	_, err = fmt.Fprintln(cmd.OutOrStdout(), t.String())
	return err
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [FILE...]",
		Short: "Import TOML poem files into the catalog",
		Long:  "Import TOML poem files into the catalog. Without arguments, every *.toml file in the poem directory is imported. All files are validated first and written in one transaction, so a failure imports nothing.",
		RunE:  runImportCmd,
	}
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	_, log, err := setup(os.Stderr)
	if err != nil {
		return err
	}
	paths := args
	if len(paths) == 0 {
		dir := config.DefaultPoemDir()
		paths, err = filepath.Glob(filepath.Join(dir, "*.toml"))
		if err != nil {
			return fmt.Errorf("failed to list poem directory: %w", err)
		}
		if len(paths) == 0 {
			return fmt.Errorf("no poem files given and none found in %s", dir)
		}
		sort.Strings(paths)
	}

	// Validate everything before writing anything.
	poems := make([]scansion.Poem, len(paths))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		g.Go(func() error {
			poem, err := catalog.Load(path)
			if err != nil {
				return err
			}
			poems[i] = poem
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	ctx := context.Background()
	st, err := openStore(ctx, log)
	if err != nil {
		return err
	}
	defer closeStore(st, log)

	ids, err := st.InsertPoems(ctx, poems)
	if err != nil {
		return fmt.Errorf("failed to import poems: %w", err)
	}
	for i, id := range ids {
		log.Info("poem imported", "poem_id", id, "path", paths[i])
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Imported #%d %s\n", id, poems[i].Title); err != nil {
			return err
		}
	}
	return nil
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Print a poem with one of its scansions",
		Args:  cobra.ExactArgs(1),
		RunE:  runShowCmd,
	}
	cmd.Flags().StringVar(&showLabel, "label", "", "scansion label (default: the poem's reference)")
	return cmd
}

func runShowCmd(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid poem id %q", args[0])
	}
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

	poem, err := st.GetPoem(ctx, id)
	if err != nil {
		return err
	}
	label := poem.ReferenceLabel()
	var s scansion.Scansion
	if showLabel == "" {
		s, err = poem.Reference()
	} else {
		var n scansion.Named
		n, err = poem.Named(showLabel)
		label, s = showLabel, n.Scansion
	}
	if err != nil {
		return fmt.Errorf("%w (available: %s)", err, strings.Join(poem.Labels(), ", "))
	}
	corrections, err := st.CountCorrections(ctx, id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "#%d %s by %s\nScansion: %s  Corrections: %d\n\n", poem.ID, poem.Title, poem.Poet, label, corrections); err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, tui.Render(poem.Words, s, outputWidth()))
	return err
}

func outputWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultShowWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return defaultShowWidth
	}
	return width
}

