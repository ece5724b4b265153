package config

import "math"

// DifficultyManager picks the difficulty of each campaign encounter.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
	enabled      bool
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
		enabled:      true,
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.enabled && d.cfg.Progression.Type == "encounters"
}

// Level returns the difficulty (0.0 to 1.0) for the encounter after
// `encounters` have been played.
func (d *DifficultyManager) Level(encounters int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	progress := clampF(float64(encounters)/maxAt, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// ApplyPreset configures the manager for a named preset.
func (d *DifficultyManager) ApplyPreset(preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		d.enabled = false
		return
	}
	d.enabled = true
	d.initialLevel = InitialLevelForPreset(preset)
}

// clampF restricts a float64 to [min, max]. NaN becomes min.
func clampF(val, min, max float64) float64 {
	if math.IsNaN(val) {
		return min
	}
	return math.Max(min, math.Min(max, val))
}
