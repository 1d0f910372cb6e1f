package config

import (
	_ "embed"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultPlatformerConfig returns the default platformer configuration.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		World: PlatformerWorld{
			TileSize: 16,
		},
		Physics: PlatformerPhysics{
			Gravity:       0.5,
			JumpImpulse:   -10,
			MaxFallSpeed:  8,
			PlayerSpeed:   2,
			EnemySpeed:    1,
			ItemSpeed:     1,
			StompRebound:  -5,
			TickRate:      60,
			MaxFrameScale: 3,
		},
		Player: PlatformerPlayer{
			Lives:     3,
			StartSize: "small",
		},
		Scoring: PlatformerScoring{
			Coin:    200,
			Stomp:   100,
			PowerUp: 1000,
			Brick:   50,
		},
		Input: PlatformerInput{
			HoldTicks: 8,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  ProgressionNone,
				MaxAt: 0,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "platformer":
		return defaultPlatformerYAML
	default:
		return nil
	}
}
