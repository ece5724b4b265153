package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-duel/internal/config"
	"github.com/vovakirdan/tui-duel/internal/platform/tui"
	"github.com/vovakirdan/tui-duel/internal/registry"
	"github.com/vovakirdan/tui-duel/internal/replay"
	"github.com/vovakirdan/tui-duel/internal/session"
)

var (
	flagDifficulty string
	flagRecord     string
)

var playCmd = &cobra.Command{
	Use:   "play <contest>",
	Short: "Play a single contest",
	Long: `Face one opponent in their contest.

Controls:
  Arrows/WASD/HJKL  - Move
  Space/Z/Enter     - A button (also dismisses overlays)
  X/C               - B button
  Esc               - Abandon the contest
  Q/Ctrl+C          - Quit

Difficulty:
  easy    - Level 0.0
  normal  - Level 0.5 (default)
  hard    - Level 0.85
  0..1    - Any level in between
A difficulty set for the contest in the config file wins over the preset.

Examples:
  duel play flapping
  duel play traffic --difficulty hard
  duel play levitation --difficulty 0.7 --seed 42
  duel play umbrella --record umbrella.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Preset (easy, normal, hard) or a level between 0 and 1")
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Save a replay to this file (.yaml or .msgpack)")
}

// parseDifficulty accepts a preset name or a number in [0, 1]. An empty
// string falls back to the normal preset.
func parseDifficulty(s string) (float64, error) {
	if s == "" {
		return config.InitialLevelForPreset(config.DifficultyNormal), nil
	}
	if p, ok := config.ParsePreset(s); ok {
		return config.InitialLevelForPreset(p), nil
	}
	d, err := strconv.ParseFloat(s, 64)
	if err != nil || d < 0 || d > 1 {
		return 0, fmt.Errorf("invalid difficulty %q: want easy, normal, hard or a number between 0 and 1", s)
	}
	return d, nil
}

func runPlay(_ *cobra.Command, args []string) error {
	id := args[0]
	if !registry.Exists(id) {
		return fmt.Errorf("unknown contest %q (run 'duel list' to see available contests)", id)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	difficulty, err := parseDifficulty(flagDifficulty)
	if err != nil {
		return err
	}
	if d, ok := cfg.ContestDifficulty(id); ok && flagDifficulty == "" {
		difficulty = d
	}
	if flagRecord != "" {
		if _, err := replay.FormatFor(flagRecord); err != nil {
			return err
		}
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := openStore()
	if err != nil {
		return err
	}
	var sink session.ResultSink
	if store != nil {
		defer store.Close()
		sink = store.Sink("local")
	}

	opts := tui.GameOptions{
		Contest:    id,
		Difficulty: difficulty,
		Sink:       sink,
		Logger:     logger,
		Clock:      cfg.Clock,
		Hold:       time.Duration(cfg.Input.HoldMs) * time.Millisecond,
	}
	var rec *replay.Recorder
	if flagRecord != "" {
		opts.Factory = replay.Factory(registry.Create, func(r *replay.Recorder) { rec = r })
	}

	rc := runtimeConfig(cfg)
	res, err := tui.Run(rc, opts)
	if err != nil {
		return err
	}

	if rec != nil {
		if err := replay.Save(flagRecord, rec.Recording()); err != nil {
			return fmt.Errorf("save replay: %w", err)
		}
		fmt.Printf("Replay saved to %s\n", flagRecord)
	}
	printOutcomes(res.Outcomes)
	printClock(res.Clock)
	if len(res.Outcomes) == 0 {
		fmt.Printf("Contest abandoned. Seed was %d.\n", rc.Seed)
	}
	return nil
}

func printOutcomes(outcomes []session.Outcome) {
	for _, o := range outcomes {
		verdict := "LOST"
		if o.Victory {
			verdict = "WON"
		}
		fmt.Printf("%-4s %-12s level %.2f  %6.1fs  seed %d\n",
			verdict, o.Contest, o.Difficulty, o.DurationMs/1000, o.Seed)
	}
}

func printClock(s session.ClockStats) {
	if s.Frames == 0 {
		return
	}
	fmt.Printf("%d frames, %d clamped, %s contest time over %s\n",
		s.Frames, s.Faults, s.Reported.Round(time.Millisecond), s.Real.Round(time.Millisecond))
}
