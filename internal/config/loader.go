package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the duel configuration.
// Search order: customPath -> ~/.duel/duel.yaml -> ./configs/duel.yaml -> embedded default
//
// Files are decoded over Default(), so a partial file only overrides the
// keys it names.
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Default(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Default(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("duel.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "duel.yaml")); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over the built-in defaults and repairs values that
// would break the clock or the campaign.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), err
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	if c.Clock.MinIntervalMs <= 0 {
		c.Clock.MinIntervalMs = 5
	}
	if c.Clock.MaxIntervalMs < c.Clock.MinIntervalMs {
		c.Clock.MaxIntervalMs = c.Clock.MinIntervalMs
	}
	if c.Clock.TickRate <= 0 {
		c.Clock.TickRate = 60
	}
	if c.Campaign.MaxHP <= 0 {
		c.Campaign.MaxHP = 1
	}
	c.Campaign.HP = min(max(c.Campaign.HP, 1), c.Campaign.MaxHP)
	c.Campaign.GoldCap = max(c.Campaign.GoldCap, 0)
	c.Campaign.Gold = min(max(c.Campaign.Gold, 0), c.Campaign.GoldCap)
	if c.Contests == nil {
		c.Contests = map[string]ContestConfig{}
	}
	if c.Input.HoldMs <= 0 {
		c.Input.HoldMs = 120
	}
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".duel", filename)
}
