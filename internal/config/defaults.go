package config

import (
	_ "embed"
)

//go:embed defaults/duel.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Clock: ClockConfig{
			MinIntervalMs: 5,
			MaxIntervalMs: 40,
			TickRate:      60,
		},
		Campaign: CampaignConfig{
			HP:          3,
			MaxHP:       3,
			Gold:        0,
			GoldCap:     9999,
			RewardGold:  1,
			PenaltyHP:   1,
			PenaltyGold: 5,
			Difficulty: DifficultyConfig{
				InitialLevel: 0.0,
				Progression: ProgressionConfig{
					Type:  "encounters",
					MaxAt: 11,
				},
			},
		},
		Contests: map[string]ContestConfig{},
		Input: InputConfig{
			HoldMs: 120,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
