package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/preflop/internal/config"
	"github.com/verte-zerg/preflop/internal/hand"
	"github.com/verte-zerg/preflop/internal/model"
	"github.com/verte-zerg/preflop/internal/ranges"
	"github.com/verte-zerg/preflop/internal/store"
	"github.com/verte-zerg/preflop/internal/tui"
)

func newRangesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ranges",
		Short: "Inspect and edit range charts",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show where range data comes from",
		Args:  cobra.NoArgs,
		RunE:  withTable(runRangesStatus),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show KEY",
		Short: "Draw the hand matrix for a matchup (e.g. BU_vs_SB)",
		Args:  cobra.ExactArgs(1),
		RunE:  withTable(runRangesShow),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "export PATH",
		Short: "Write the effective charts to a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE:  withTable(runRangesExport),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "import PATH",
		Short: "Replace your charts with a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE:  withTable(runRangesImport),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Drop your charts and use the defaults",
		Args:  cobra.NoArgs,
		RunE:  withTable(runRangesReset),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set KEY HAND ACTION",
		Short: "Set one hand in a matchup (ACTION 'unassigned' removes it)",
		Args:  cobra.ExactArgs(3),
		RunE:  withTable(runRangesSet),
	})
	return cmd
}

type tableRunner func(ctx context.Context, cmd *cobra.Command, table *ranges.Table, args []string) error

func withTable(run tableRunner) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer closeStore(st)

		ctx := context.Background()
		table, err := ranges.Open(ctx, st, fileCfg.DefaultsPath(), logger)
		if err != nil {
			return fmt.Errorf("failed to load ranges: %w", err)
		}
		return run(ctx, cmd, table, args)
	}
}

func runRangesStatus(_ context.Context, cmd *cobra.Command, table *ranges.Table, _ []string) error {
	out := cmd.OutOrStdout()
	var line string
	switch table.Status() {
	case ranges.StatusNone:
		line = "No range data loaded. Import a file with: preflop ranges import PATH"
	case ranges.StatusDefault:
		line = fmt.Sprintf("Using default charts (%d matchups).", table.DefaultCount())
	default:
		line = fmt.Sprintf("Using custom charts (%d matchups edited, %d default).", len(table.User()), table.DefaultCount())
	}
	if _, err := fmt.Fprintln(out, line); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func runRangesShow(_ context.Context, cmd *cobra.Command, table *ranges.Table, args []string) error {
	key, err := normalizeMatchupKey(args[0])
	if err != nil {
		return err
	}
	r, ok := table.Range(key)
	if !ok {
		r = ranges.Range{}
	}
	hero, villain, _ := model.ParseMatchupKey(key)
	title := model.Matchup{Hero: hero, Villain: villain}.String()
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), tui.RenderMatrix(title, r)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func runRangesExport(_ context.Context, cmd *cobra.Command, table *ranges.Table, args []string) error {
	set := table.Effective()
	if len(set) == 0 {
		return fmt.Errorf("no range data to export")
	}
	if err := ranges.WriteFile(args[0], set, time.Now()); err != nil {
		return err
	}
	logger.Info("exported ranges", "path", args[0], "matchups", len(set))
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d matchups to %s\n", len(set), args[0]); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func runRangesImport(ctx context.Context, cmd *cobra.Command, table *ranges.Table, args []string) error {
	set, err := ranges.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	if err := table.Replace(ctx, set); err != nil {
		return fmt.Errorf("failed to save ranges: %w", err)
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Imported %d matchups from %s\n", len(set), args[0]); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func runRangesReset(ctx context.Context, cmd *cobra.Command, table *ranges.Table, _ []string) error {
	if err := table.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset ranges: %w", err)
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), "Custom charts cleared; using defaults."); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func runRangesSet(ctx context.Context, cmd *cobra.Command, table *ranges.Table, args []string) error {
	key, err := normalizeMatchupKey(args[0])
	if err != nil {
		return err
	}
	h, err := hand.Parse(args[1])
	if err != nil {
		return err
	}
	if strings.EqualFold(strings.TrimSpace(args[2]), "unassigned") {
		if err := table.Unassign(ctx, key, h); err != nil {
			return fmt.Errorf("failed to save ranges: %w", err)
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s: unassigned\n", key, h)
		return err
	}
	a, ok := model.ParseAction(args[2])
	if !ok {
		return fmt.Errorf("unknown action %q", args[2])
	}
	if err := table.Assign(ctx, key, h, a); err != nil {
		return fmt.Errorf("failed to save ranges: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", key, h, a.Label())
	return err
}

// normalizeMatchupKey accepts keys in any case, e.g. "bu_vs_sb".
func normalizeMatchupKey(raw string) (string, error) {
	upper := strings.ToUpper(strings.TrimSpace(raw))
	parts := strings.Split(upper, "_VS_")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid matchup key %q (want HERO_vs_VILLAIN)", raw)
	}
	hero, err := model.ParsePosition(parts[0])
	if err != nil {
		return "", err
	}
	villain, err := model.ParsePosition(parts[1])
	if err != nil {
		return "", err
	}
	key := model.MatchupKey(hero, villain)
	if _, _, err := model.ParseMatchupKey(key); err != nil {
		return "", err
	}
	return key, nil
}
