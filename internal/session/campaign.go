package session

import (
	"github.com/vovakirdan/tui-duel/internal/config"
	"github.com/vovakirdan/tui-duel/internal/contest"
)

// Consequences are the relative changes an outcome made, after clamping.
type Consequences struct {
	HP   int
	Gold int
}

// Campaign holds the player's standing across encounters.
type Campaign struct {
	HP, MaxHP     int
	Gold, GoldCap int
	Encounters    int // completed since the last restart
	Wins, Losses  int
	GameOvers     int

	cfg        config.CampaignConfig
	difficulty *config.DifficultyManager
}

// NewCampaign starts a campaign from its configuration.
func NewCampaign(cfg config.CampaignConfig) *Campaign {
	c := &Campaign{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
	}
	c.Restart()
	return c
}

// Difficulty exposes the progression so callers can apply a preset.
func (c *Campaign) Difficulty() *config.DifficultyManager {
	return c.difficulty
}

// Restart returns to the starting stakes. Win and loss tallies survive.
func (c *Campaign) Restart() {
	c.MaxHP = max(c.cfg.MaxHP, 1)
	c.HP = min(max(c.cfg.HP, 1), c.MaxHP)
	c.GoldCap = max(c.cfg.GoldCap, 0)
	c.Gold = min(max(c.cfg.Gold, 0), c.GoldCap)
	c.Encounters = 0
}

// Next returns the contest and difficulty of the upcoming encounter. The
// contests come round in campaign order.
func (c *Campaign) Next() (string, float64) {
	kinds := contest.Kinds()
	kind := kinds[c.Encounters%len(kinds)]
	return kind.String(), c.difficulty.Level(c.Encounters)
}

// Apply settles an encounter and returns what actually changed.
func (c *Campaign) Apply(victory bool) Consequences {
	var d Consequences
	if victory {
		d.Gold = c.cfg.RewardGold
		c.Wins++
	} else {
		d.HP = -c.cfg.PenaltyHP
		d.Gold = -c.cfg.PenaltyGold
		c.Losses++
	}

	hp := min(max(c.HP+d.HP, 0), c.MaxHP)
	gold := min(max(c.Gold+d.Gold, 0), c.GoldCap)
	d.HP, d.Gold = hp-c.HP, gold-c.Gold
	c.HP, c.Gold = hp, gold
	c.Encounters++
	return d
}

// Over reports whether the player has no health left.
func (c *Campaign) Over() bool {
	return c.HP == 0
}
