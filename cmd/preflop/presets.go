package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/preflop/internal/config"
	"github.com/verte-zerg/preflop/internal/hand"
	"github.com/verte-zerg/preflop/internal/model"
	"github.com/verte-zerg/preflop/internal/presets"
	"github.com/verte-zerg/preflop/internal/store"
)

var presetFromLast bool

func newPresetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Manage saved practice configurations",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved presets",
		Args:  cobra.NoArgs,
		RunE:  withPresets(runPresetsList),
	})

	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Save a preset from flags or the last practice configuration",
		Args:  cobra.ExactArgs(1),
		RunE:  withPresets(runPresetsAdd),
	}
	add.Flags().StringVar(&practiceHero, "hero", defaultHero, "hero position ("+positionChoices+")")
	add.Flags().StringVar(&practiceVillain, "villain", defaultVillain, "villain position ("+positionChoices+")")
	add.Flags().StringVar(&practiceGameType, "game-type", defaultGameType, "grading mode (full-mode or fold-no-fold)")
	add.Flags().StringVar(&practiceHandStart, "hand-start", defaultHandStart, "matchup direction (both, early-vs-late, late-vs-early)")
	add.Flags().StringVar(&practiceHands, "hands", defaultHands, "hands to practice (all, categories or hands, comma separated)")
	add.Flags().BoolVar(&practiceOnlyPlayable, "only-playable", defaultOnlyPlayable, "skip hands with no action in the chart")
	add.Flags().BoolVar(&presetFromLast, "last", false, "save the last practice configuration instead")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:     "rm REF",
		Aliases: []string{"remove"},
		Short:   "Remove a preset by id or name",
		Args:    cobra.ExactArgs(1),
		RunE:    withPresets(runPresetsRemove),
	})
	return cmd
}

type presetsRunner func(ctx context.Context, cmd *cobra.Command, saved *presets.Store, args []string) error

func withPresets(run presetsRunner) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer closeStore(st)
		return run(context.Background(), cmd, presets.New(st, logger), args)
	}
}

func runPresetsList(ctx context.Context, cmd *cobra.Command, saved *presets.Store, _ []string) error {
	list, err := saved.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load presets: %w", err)
	}
	out := cmd.OutOrStdout()
	for _, p := range list {
		line := fmt.Sprintf("%s  %s  %s · %s · %s · %s",
			runewidth.FillRight(p.ID, 16),
			runewidth.FillRight(p.Name, 20),
			p.Config.PositionLabel(),
			p.Config.GameType.Label(),
			p.Config.HandStart.Label(),
			handsLabel(p.Config),
		)
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func runPresetsAdd(ctx context.Context, cmd *cobra.Command, saved *presets.Store, args []string) error {
	var cfg model.PracticeConfig
	if presetFromLast {
		last, ok, err := saved.LoadLast(ctx)
		if err != nil {
			return fmt.Errorf("failed to load last config: %w", err)
		}
		if !ok {
			return fmt.Errorf("no previous practice configuration saved")
		}
		cfg = last
	} else {
		flagCfg, err := practiceConfigFromFlags()
		if err != nil {
			return err
		}
		if err := validatePositions(flagCfg); err != nil {
			return err
		}
		cfg = flagCfg
	}
	p, err := saved.Add(ctx, args[0], cfg)
	if err != nil {
		if errors.Is(err, presets.ErrFull) {
			return fmt.Errorf("%w; remove one with: preflop presets rm REF", err)
		}
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Saved preset %q (%s)\n", p.Name, p.ID)
	return err
}

func runPresetsRemove(ctx context.Context, cmd *cobra.Command, saved *presets.Store, args []string) error {
	if err := saved.Remove(ctx, args[0]); err != nil {
		return err
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "Removed preset %q\n", args[0])
	return err
}

func handsLabel(cfg model.PracticeConfig) string {
	n := len(cfg.SelectedHands)
	if n == hand.Count {
		return "all hands"
	}
	return fmt.Sprintf("%d hands", n)
}
