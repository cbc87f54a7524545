// Package main provides the CLI entrypoint for preflop.
package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/preflop/internal/coach"
	"github.com/verte-zerg/preflop/internal/config"
	"github.com/verte-zerg/preflop/internal/generator"
	"github.com/verte-zerg/preflop/internal/hand"
	"github.com/verte-zerg/preflop/internal/model"
	"github.com/verte-zerg/preflop/internal/practice"
	"github.com/verte-zerg/preflop/internal/presets"
	"github.com/verte-zerg/preflop/internal/ranges"
	"github.com/verte-zerg/preflop/internal/recorder"
	"github.com/verte-zerg/preflop/internal/stats"
	"github.com/verte-zerg/preflop/internal/statsui"
	"github.com/verte-zerg/preflop/internal/store"
	"github.com/verte-zerg/preflop/internal/tui"
)

const (
	defaultHero         = "any"
	defaultVillain      = "any"
	defaultGameType     = string(model.FullMode)
	defaultHandStart    = string(model.StartBoth)
	defaultHands        = "all"
	defaultOnlyPlayable = true
	defaultMaxHands     = practice.DefaultMaxHands
	defaultHistoryWidth = practice.DefaultHistoryWidth
	defaultDealDelayMs  = 1000
	defaultCoach        = true
	defaultCurveWindow  = 5
)

const positionChoices = "MP/CO/BU(BTN)/SB/BB or any"

var (
	logLevel string
	logger   *log.Logger

	practiceHero         string
	practiceVillain      string
	practiceGameType     string
	practiceHandStart    string
	practiceHands        string
	practiceOnlyPlayable bool
	practiceMaxHands     int
	practiceHistoryWidth int
	practiceDealDelayMs  int
	practiceCoach        bool
	practicePreset       string
	practiceLast         bool

	statsSince       string
	statsLast        int
	statsGameType    string
	statsCurveWindow int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "preflop",
		Short:             "TUI poker preflop range trainer",
		SilenceUsage:      true,
		SilenceErrors:     false,
		PersistentPreRunE: setupLogging,
		RunE:              runPracticeCmd,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.Flags().StringVar(&practiceHero, "hero", defaultHero, "hero position ("+positionChoices+")")
	rootCmd.Flags().StringVar(&practiceVillain, "villain", defaultVillain, "villain position ("+positionChoices+")")
	rootCmd.Flags().StringVar(&practiceGameType, "game-type", defaultGameType, "grading mode (full-mode or fold-no-fold)")
	rootCmd.Flags().StringVar(&practiceHandStart, "hand-start", defaultHandStart, "matchup direction (both, early-vs-late, late-vs-early)")
	rootCmd.Flags().StringVar(&practiceHands, "hands", defaultHands, "hands to practice (all, categories or hands, comma separated)")
	rootCmd.Flags().BoolVar(&practiceOnlyPlayable, "only-playable", defaultOnlyPlayable, "skip hands with no action in the chart")
	rootCmd.Flags().IntVar(&practiceMaxHands, "max-hands", defaultMaxHands, "hands shown in the history strip per session")
	rootCmd.Flags().IntVar(&practiceHistoryWidth, "history-width", defaultHistoryWidth, "number of history slots")
	rootCmd.Flags().IntVar(&practiceDealDelayMs, "deal-delay-ms", defaultDealDelayMs, "pause after an answer before the next deal")
	rootCmd.Flags().BoolVar(&practiceCoach, "coach", defaultCoach, "show coach feedback after each answer")
	rootCmd.Flags().StringVar(&practicePreset, "preset", "", "start from a saved preset (id or name)")
	rootCmd.Flags().BoolVar(&practiceLast, "last", false, "start from the last practice configuration")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newRangesCmd())
	rootCmd.AddCommand(newPresetsCmd())

	return rootCmd
}

func setupLogging(_ *cobra.Command, _ []string) error {
	if err := config.LoadEnv(".env"); err != nil {
		return err
	}
	l, err := config.NewLogger(os.Stderr, logLevel)
	if err != nil {
		return err
	}
	logger = l
	return nil
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "hero", &practiceHero, fileCfg.Practice.Hero)
	applyStringConfig(cmd, "villain", &practiceVillain, fileCfg.Practice.Villain)
	applyStringConfig(cmd, "game-type", &practiceGameType, fileCfg.Practice.GameType)
	applyStringConfig(cmd, "hand-start", &practiceHandStart, fileCfg.Practice.HandStart)
	applyStringConfig(cmd, "hands", &practiceHands, fileCfg.Practice.Hands)
	applyBoolConfig(cmd, "only-playable", &practiceOnlyPlayable, fileCfg.Practice.OnlyPlayable)
	applyIntConfig(cmd, "max-hands", &practiceMaxHands, fileCfg.Practice.MaxHands)
	applyIntConfig(cmd, "history-width", &practiceHistoryWidth, fileCfg.Practice.HistoryWidth)
	applyIntConfig(cmd, "deal-delay-ms", &practiceDealDelayMs, fileCfg.Practice.DealDelayMs)
	applyBoolConfig(cmd, "coach", &practiceCoach, fileCfg.Practice.Coach)

	if err := validateOptions(); err != nil {
		return err
	}
	flagCfg, err := practiceConfigFromFlags()
	if err != nil {
		return err
	}

	ctx := context.Background()
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	saved := presets.New(st, logger)
	cfg, err := resolvePracticeConfig(ctx, cmd, saved, flagCfg)
	if err != nil {
		return err
	}
	if err := validatePositions(cfg); err != nil {
		return err
	}

	table, err := ranges.Open(ctx, st, fileCfg.DefaultsPath(), logger)
	if err != nil {
		return fmt.Errorf("failed to load ranges: %w", err)
	}

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	opts := []practice.Option{
		practice.WithRecorder(recorder.New(st, logger)),
		practice.WithLogger(logger),
	}
	var tracker *coach.Tracker
	if practiceCoach {
		tracker = coach.NewTracker(rnd)
		opts = append(opts, practice.WithObserver(tracker))
	}
	session := practice.New(cfg, opts...)

	m, err := tui.NewModel(tui.Deps{
		Session:   session,
		Generator: generator.NewWithRand(rnd, logger),
		Source:    table,
		Tracker:   tracker,
		Logger:    logger,
		Rand:      rnd,
	}, tui.Options{
		HistoryWidth: practiceHistoryWidth,
		MaxHands:     practiceMaxHands,
		DealDelay:    time.Duration(practiceDealDelayMs) * time.Millisecond,
	})
	if err != nil {
		return emptyDeckHint(err)
	}
	if err := saved.SaveLast(ctx, cfg); err != nil {
		logger.Warn("failed to save last config", "err", err)
	}

	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func practiceConfigFromFlags() (model.PracticeConfig, error) {
	hero, err := model.ParsePosition(practiceHero)
	if err != nil {
		return model.PracticeConfig{}, fmt.Errorf("--hero: %w", err)
	}
	villain, err := model.ParsePosition(practiceVillain)
	if err != nil {
		return model.PracticeConfig{}, fmt.Errorf("--villain: %w", err)
	}
	gameType, err := model.ParseGameType(practiceGameType)
	if err != nil {
		return model.PracticeConfig{}, fmt.Errorf("--game-type: %w", err)
	}
	start, err := model.ParseHandStart(practiceHandStart)
	if err != nil {
		return model.PracticeConfig{}, fmt.Errorf("--hand-start: %w", err)
	}
	selected, err := hand.ParseSelection(practiceHands)
	if err != nil {
		return model.PracticeConfig{}, fmt.Errorf("--hands: %w", err)
	}
	return model.PracticeConfig{
		HeroPosition:      hero,
		VillainPosition:   villain,
		GameType:          gameType,
		HandStart:         start,
		SelectedHands:     selected,
		OnlyPlayableHands: practiceOnlyPlayable,
	}, nil
}

// resolvePracticeConfig starts from --preset or --last when given; flags set
// on the command line still override the stored values.
func resolvePracticeConfig(ctx context.Context, cmd *cobra.Command, saved *presets.Store, flagCfg model.PracticeConfig) (model.PracticeConfig, error) {
	if practicePreset != "" && practiceLast {
		return model.PracticeConfig{}, fmt.Errorf("--preset and --last cannot be combined")
	}
	var base model.PracticeConfig
	switch {
	case practicePreset != "":
		p, err := saved.Find(ctx, practicePreset)
		if err != nil {
			return model.PracticeConfig{}, fmt.Errorf("--preset: %w", err)
		}
		base = p.Config
	case practiceLast:
		last, ok, err := saved.LoadLast(ctx)
		if err != nil {
			return model.PracticeConfig{}, fmt.Errorf("failed to load last config: %w", err)
		}
		if !ok {
			return model.PracticeConfig{}, fmt.Errorf("no previous practice configuration saved")
		}
		base = last
	default:
		return flagCfg, nil
	}

	flags := cmd.Flags()
	if flags.Changed("hero") {
		base.HeroPosition = flagCfg.HeroPosition
	}
	if flags.Changed("villain") {
		base.VillainPosition = flagCfg.VillainPosition
	}
	if flags.Changed("game-type") {
		base.GameType = flagCfg.GameType
	}
	if flags.Changed("hand-start") {
		base.HandStart = flagCfg.HandStart
	}
	if flags.Changed("hands") {
		base.SelectedHands = flagCfg.SelectedHands
	}
	if flags.Changed("only-playable") {
		base.OnlyPlayableHands = flagCfg.OnlyPlayableHands
	}
	return base, nil
}

func emptyDeckHint(err error) error {
	var empty *generator.EmptyDeckError
	if !errors.As(err, &empty) {
		return fmt.Errorf("failed to start session: %w", err)
	}
	lines := []string{empty.Error()}
	switch empty.Cause {
	case generator.CauseNoRangeData:
		lines = append(lines, "Check: preflop ranges status", "Restore defaults: preflop ranges reset")
	case generator.CauseNoSelectedHands:
		lines = append(lines, "Pick hands with --hands (for example: --hands all)")
	case generator.CauseNoMatchupData:
		lines = append(lines, "Try: preflop --hero any --villain any")
	default:
		lines = append(lines, "Try: preflop --only-playable=false")
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		logger.Info("created config", "path", path)
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().StringVar(&statsGameType, "game-type", "", "grading mode filter (full-mode or fold-no-fold)")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	return cmd
}

func runStatsCmd(_ *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	if statsCurveWindow < 1 {
		return fmt.Errorf("--curve-window must be >= 1")
	}
	var gameType model.GameType
	if statsGameType != "" {
		parsed, err := model.ParseGameType(statsGameType)
		if err != nil {
			return fmt.Errorf("--game-type: %w", err)
		}
		gameType = parsed
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	m := statsui.NewModel(recorder.New(st, logger), stats.Filter{
		Since:       sinceTime,
		Last:        statsLast,
		GameType:    gameType,
		CurveWindow: statsCurveWindow,
	})
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
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

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
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

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# preflop configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# hero = %q             # MP, CO, BU (or BTN), SB, BB or any
# villain = %q          # MP, CO, BU (or BTN), SB, BB or any
# game-type = %q  # full-mode or fold-no-fold
# hand-start = %q      # both, early-vs-late or late-vs-early
# hands = %q            # all, categories (pairs, suited_ace, ...) or hands
# only-playable = %t     # Skip hands with no action in the chart
# max-hands = %d          # Hands shown in the history strip per session
# history-width = %d        # Number of history slots
# deal-delay-ms = %d     # Pause after an answer before the next deal
# coach = %t             # Show coach feedback after each answer

[ranges]
# defaults = "/path/to/ranges.json"  # Replace the built-in default charts (JSON or YAML)
`,
		defaultHero,
		defaultVillain,
		defaultGameType,
		defaultHandStart,
		defaultHands,
		defaultOnlyPlayable,
		defaultMaxHands,
		defaultHistoryWidth,
		defaultDealDelayMs,
		defaultCoach,
	)
}

func validateOptions() error {
	if practiceMaxHands <= 0 {
		return fmt.Errorf("--max-hands must be > 0")
	}
	if practiceHistoryWidth <= 0 {
		return fmt.Errorf("--history-width must be > 0")
	}
	if practiceDealDelayMs < 0 {
		return fmt.Errorf("--deal-delay-ms must be >= 0")
	}
	return nil
}

func validatePositions(cfg model.PracticeConfig) error {
	if cfg.HeroPosition != model.AnyPosition && cfg.HeroPosition == cfg.VillainPosition {
		return fmt.Errorf("hero and villain must be different positions (got %s)", cfg.HeroPosition)
	}
	return nil
}

func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		logger.Error("failed to close db", "err", err)
	}
}
