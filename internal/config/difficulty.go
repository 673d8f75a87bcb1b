package config

import "math"

// DifficultyManager calculates generator parameters based on level/score.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the difficulty (0.0 to 1.0) for a map level and score.
func (d *DifficultyManager) Level(mapLevel int, score int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "level":
		progress = float64(mapLevel-1) / maxAt
	case "score":
		progress = float64(score) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// HazardChance returns the chance that a ground segment carries a death box.
func (d *DifficultyManager) HazardChance(base float64, mapLevel, score int) float64 {
	level := d.Level(mapLevel, score)
	return clampF(base+level*d.cfg.Scaling.HazardChance, 0.0, 0.9)
}

// GapWidth returns the widest pit (in tiles) the generator may carve.
func (d *DifficultyManager) GapWidth(base int, mapLevel, score int) int {
	level := d.Level(mapLevel, score)
	result := base + int(level*float64(d.cfg.Scaling.GapWidth))
	if result > 3 { // Widest pit a full-speed jump clears
		result = 3
	}
	return max(result, 1)
}

// ItemChance returns the chance that a column carries a collectible.
func (d *DifficultyManager) ItemChance(base float64, mapLevel, score int) float64 {
	level := d.Level(mapLevel, score)
	return clampF(base-level*d.cfg.Scaling.ItemChance, 0.05, 1.0)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
