// duel is a terminal minigame contest: eleven opponents, each with their own
// challenge, played one encounter at a time.
//
// Usage:
//
//	duel list                - List available contests
//	duel play <contest>      - Play a single contest
//	duel campaign            - Play the campaign against every opponent
//	duel menu                - Pick contests interactively
//	duel results [contest]   - Show recent results and statistics
//	duel replay <file>       - Re-run a recorded contest headlessly
//	duel serve               - Start the SSH server and the stats API
//	duel config              - Print the default configuration
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: from config, 60)
//	--seed <value>   - Set RNG seed for reproducible gameplay
//	--db <path>      - Set database path (default: ~/.duel/results.db)
//	--config <path>  - Load configuration from a YAML file
//	--log <path>     - Write logs to a file while the TUI is up
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-duel/internal/config"
	"github.com/vovakirdan/tui-duel/internal/core"
	_ "github.com/vovakirdan/tui-duel/internal/games/all"
	"github.com/vovakirdan/tui-duel/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogPath  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "duel",
	Short: "Duel - Minigame contests in your terminal",
	Long: `Duel pits you against eleven opponents, each with a contest of their own:
flapping, stirring, rope jumping, parachuting and more.

Available commands:
  list      - Show all contests
  play      - Play a single contest
  campaign  - Play the campaign
  menu      - Interactive contest picker
  results   - View recorded results
  replay    - Verify a recorded contest
  serve     - Start SSH server and stats API
  config    - Print the default configuration

Examples:
  duel list
  duel play flapping
  duel campaign --difficulty hard
  duel serve --ssh :2222 --http :8080`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (frames per second, 0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.duel/results.db", "Path to results database (empty disables history)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Log file for interactive commands")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(campaignCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig reads the configuration named by --config, falling back to
// ~/.duel/duel.yaml and the built-in defaults.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if flagFPS > 0 {
		cfg.Clock.TickRate = flagFPS
	}
	return cfg, nil
}

// runtimeConfig sizes the screen to the terminal.
func runtimeConfig(cfg config.Config) core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	rc.TickRate = cfg.Clock.TickRate
	rc.Seed = flagSeed
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}
	return rc
}

// newLogger returns a logger for a command. Interactive commands own the
// terminal, so they log to --log or nowhere.
func newLogger(interactive bool) (*log.Logger, func(), error) {
	var (
		w       io.Writer = os.Stderr
		cleanup           = func() {}
	)
	if interactive {
		w = io.Discard
		if flagLogPath != "" {
			f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err != nil {
				return nil, nil, fmt.Errorf("open log file: %w", err)
			}
			w = f
			cleanup = func() { _ = f.Close() }
		}
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "duel",
		Level:           level,
	})
	return logger, cleanup, nil
}

// openStore opens the results database, or returns nil when --db is empty.
func openStore() (*storage.Store, error) {
	if flagDBPath == "" {
		return nil, nil
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, fmt.Errorf("open results database: %w", err)
	}
	return store, nil
}
