// Package config provides YAML-based game configuration loading and
// difficulty management for the platformer.
package config

// PlatformerConfig contains all configuration for the platformer.
type PlatformerConfig struct {
	Physics    PlatformerPhysics `yaml:"physics"`
	Player     PlatformerPlayer  `yaml:"player"`
	Map        PlatformerMap     `yaml:"map"`
	Render     PlatformerRender  `yaml:"render"`
	Audio      AudioConfig       `yaml:"audio"`
	Difficulty DifficultyConfig  `yaml:"difficulty"`
}

// PlatformerPhysics defines the platformer physics constants, in world
// units per tick.
type PlatformerPhysics struct {
	Gravity     float64 `yaml:"gravity"`
	PlayerSpeed float64 `yaml:"player_speed"`
	JumpSpeed   float64 `yaml:"jump_speed"`
}

// PlatformerPlayer defines the spawn point and hit box of the player.
// StartX/StartY is the centre of the sprite.
type PlatformerPlayer struct {
	StartX float64 `yaml:"start_x"`
	StartY float64 `yaml:"start_y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlatformerMap defines tile map geometry.
type PlatformerMap struct {
	TileSize      float64 `yaml:"tile_size"`
	FallThreshold float64 `yaml:"fall_threshold"` // Player is respawned below this y
}

// PlatformerRender defines how world units map to terminal cells.
type PlatformerRender struct {
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
}

// AudioConfig controls sound cue playback.
type AudioConfig struct {
	Enabled    bool              `yaml:"enabled"`
	Volume     float64           `yaml:"volume"`      // Log2 gain, 0 = unchanged, -1 = half
	SampleRate int               `yaml:"sample_rate"` // Speaker sample rate in Hz
	Files      map[string]string `yaml:"files"`       // Optional WAV override per cue name
}

// DifficultyConfig defines the difficulty progression used by the level generator.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "level", "score", or "none"
	MaxAt int    `yaml:"max_at"` // Level/score at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	HazardChance float64 `yaml:"hazard_chance"` // Added to the base hazard chance at max difficulty
	GapWidth     int     `yaml:"gap_width"`     // Extra pit width (tiles) at max difficulty
	ItemChance   float64 `yaml:"item_chance"`   // Subtracted from the base item chance at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ParsePreset validates a preset name given on the command line.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(name); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	}
	return "", false
}
