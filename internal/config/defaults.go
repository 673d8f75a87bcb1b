package config

import (
	_ "embed"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultPlatformerConfig returns the default platformer configuration.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		Physics: PlatformerPhysics{
			Gravity:     1,
			PlayerSpeed: 5,
			JumpSpeed:   20,
		},
		Player: PlatformerPlayer{
			StartX: 64,
			StartY: 128,
			Width:  48,
			Height: 96,
		},
		Map: PlatformerMap{
			TileSize:      64,
			FallThreshold: -100,
		},
		Render: PlatformerRender{
			CellWidth:  16,
			CellHeight: 32,
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     -1,
			SampleRate: 44100,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 20,
			},
			Scaling: ScalingConfig{
				HazardChance: 0.25,
				GapWidth:     2,
				ItemChance:   0.15,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "platformer", "platformer_endless":
		return defaultPlatformerYAML
	default:
		return nil
	}
}
