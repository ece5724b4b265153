package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-duel/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Interactive contest picker",
	Long: `Pick the campaign or a single contest from a menu.

Menu controls:
  Up/Down     - Move
  Left/Right  - Change difficulty
  Enter       - Play
  Tab         - Results board
  Q           - Quit

The campaign keeps its standing while you visit single contests.`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
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
	opts := tui.SessionOptions{
		ID:     "local",
		Config: cfg,
		Logger: logger,
	}
	if store != nil {
		defer store.Close()
		opts.Sink = store.Sink("local")
		opts.Board = store
	}

	campaign, err := tui.RunSession(opts, runtimeConfig(cfg))
	if err != nil {
		return err
	}
	if campaign.Encounters > 0 || campaign.GameOvers > 0 {
		printStanding(campaign)
	}
	return nil
}
