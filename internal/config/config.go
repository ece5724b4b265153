// Package config provides YAML-based configuration loading and difficulty
// management for duels and campaigns.
package config

// Config is the complete duel configuration.
type Config struct {
	Clock    ClockConfig              `yaml:"clock"`
	Campaign CampaignConfig           `yaml:"campaign"`
	Contests map[string]ContestConfig `yaml:"contests"`
	Input    InputConfig              `yaml:"input"`
}

// ClockConfig bounds the frame interval handed to contests.
type ClockConfig struct {
	MinIntervalMs float64 `yaml:"min_interval_ms"`
	MaxIntervalMs float64 `yaml:"max_interval_ms"`
	TickRate      int     `yaml:"tick_rate"`
}

// CampaignConfig defines the stakes of a campaign.
type CampaignConfig struct {
	HP          int              `yaml:"hp"`
	MaxHP       int              `yaml:"max_hp"`
	Gold        int              `yaml:"gold"`
	GoldCap     int              `yaml:"gold_cap"`
	RewardGold  int              `yaml:"reward_gold"`
	PenaltyHP   int              `yaml:"penalty_hp"`
	PenaltyGold int              `yaml:"penalty_gold"`
	Difficulty  DifficultyConfig `yaml:"difficulty"`
}

// ContestConfig holds per-contest overrides.
type ContestConfig struct {
	Difficulty *float64 `yaml:"difficulty"`
}

// InputConfig tunes the terminal key mapper.
type InputConfig struct {
	HoldMs int `yaml:"hold_ms"` // how long a key counts as held after its last repeat
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
}

// ProgressionConfig defines how difficulty increases over a campaign.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "encounters" or "none"
	MaxAt int    `yaml:"max_at"` // Encounter count at which max difficulty is reached
}

// ContestDifficulty returns the configured difficulty for a contest, if any.
func (c Config) ContestDifficulty(id string) (float64, bool) {
	cc, ok := c.Contests[id]
	if !ok || cc.Difficulty == nil {
		return 0, false
	}
	return clampF(*cc.Difficulty, 0, 1), true
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string is not a preset.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	}
	return "", false
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.5
	case DifficultyHard:
		return 0.85
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
