package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-duel/internal/config"
	"github.com/vovakirdan/tui-duel/internal/platform/tui"
	"github.com/vovakirdan/tui-duel/internal/session"
)

var flagPreset string

var campaignCmd = &cobra.Command{
	Use:   "campaign",
	Short: "Play the campaign",
	Long: `Face every opponent in turn. Victories earn gold, defeats cost health and
gold, and the contests get harder as the campaign goes on. When your health
runs out the campaign starts over.

Press A at the prompt to begin each encounter.

Difficulty options:
  easy    - Start at the lowest level, progress to max
  normal  - Start halfway, progress to max
  hard    - Start near the top, progress to max
  fixed   - No progression, stay at the config's initial level

Examples:
  duel campaign
  duel campaign --difficulty hard
  duel campaign --config ./stingy.yaml`,
	Args: cobra.NoArgs,
	RunE: runCampaign,
}

func init() {
	campaignCmd.Flags().StringVar(&flagPreset, "difficulty", "", "Preset: easy, normal, hard, fixed")
}

func runCampaign(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	campaign := session.NewCampaign(cfg.Campaign)
	if flagPreset != "" {
		preset, ok := config.ParsePreset(flagPreset)
		if !ok {
			return fmt.Errorf("invalid difficulty %q: want easy, normal, hard or fixed", flagPreset)
		}
		campaign.Difficulty().ApplyPreset(preset)
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

	res, err := tui.Run(runtimeConfig(cfg), tui.GameOptions{
		Campaign: campaign,
		Sink:     sink,
		Logger:   logger,
		Clock:    cfg.Clock,
		Hold:     time.Duration(cfg.Input.HoldMs) * time.Millisecond,
	})
	if err != nil {
		return err
	}

	printOutcomes(res.Outcomes)
	printStanding(campaign)
	return nil
}

func printStanding(c *session.Campaign) {
	fmt.Printf("HP %d/%d  gold %d/%d  won %d  lost %d  game overs %d\n",
		c.HP, c.MaxHP, c.Gold, c.GoldCap, c.Wins, c.Losses, c.GameOvers)
}
