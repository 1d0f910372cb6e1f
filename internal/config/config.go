// Package config provides YAML-based game configuration loading and
// difficulty management for the platformer.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Validate for values the simulation cannot run with.
var ErrInvalidConfig = errors.New("invalid config")

// PlatformerConfig contains all configuration for the platformer.
type PlatformerConfig struct {
	World      PlatformerWorld   `yaml:"world"`
	Physics    PlatformerPhysics `yaml:"physics"`
	Player     PlatformerPlayer  `yaml:"player"`
	Scoring    PlatformerScoring `yaml:"scoring"`
	Input      PlatformerInput   `yaml:"input"`
	Difficulty DifficultyConfig  `yaml:"difficulty"`
}

// PlatformerWorld defines the tile grid.
type PlatformerWorld struct {
	TileSize int `yaml:"tile_size"` // Pixels per tile side
}

// PlatformerPhysics defines movement parameters. Velocities are in pixels
// per reference tick; TickRate is the number of reference ticks per second.
type PlatformerPhysics struct {
	Gravity       float64 `yaml:"gravity"`
	JumpImpulse   float64 `yaml:"jump_impulse"`
	MaxFallSpeed  float64 `yaml:"max_fall_speed"`
	PlayerSpeed   float64 `yaml:"player_speed"`
	EnemySpeed    float64 `yaml:"enemy_speed"`
	ItemSpeed     float64 `yaml:"item_speed"`
	StompRebound  float64 `yaml:"stomp_rebound"`
	TickRate      int     `yaml:"tick_rate"`
	MaxFrameScale float64 `yaml:"max_frame_scale"` // Upper bound on ticks simulated per step
}

// PlatformerPlayer defines player parameters.
type PlatformerPlayer struct {
	Lives     int    `yaml:"lives"`
	StartSize string `yaml:"start_size"` // "small" or "big"
}

// PlatformerScoring defines points per event.
type PlatformerScoring struct {
	Coin    int `yaml:"coin"`
	Stomp   int `yaml:"stomp"`
	PowerUp int `yaml:"powerup"`
	Brick   int `yaml:"brick"`
}

// PlatformerInput defines how terminal key presses become held intents.
type PlatformerInput struct {
	HoldTicks int `yaml:"hold_ticks"` // Ticks a direction stays held after a key press
}

// Validate reports the first value that would break the simulation.
func (c PlatformerConfig) Validate() error {
	switch {
	case c.World.TileSize <= 0:
		return fmt.Errorf("%w: world.tile_size must be positive, got %d", ErrInvalidConfig, c.World.TileSize)
	case c.Physics.Gravity <= 0:
		return fmt.Errorf("%w: physics.gravity must be positive, got %v", ErrInvalidConfig, c.Physics.Gravity)
	case c.Physics.JumpImpulse >= 0:
		return fmt.Errorf("%w: physics.jump_impulse must be negative (upward), got %v", ErrInvalidConfig, c.Physics.JumpImpulse)
	case c.Physics.StompRebound >= 0:
		return fmt.Errorf("%w: physics.stomp_rebound must be negative (upward), got %v", ErrInvalidConfig, c.Physics.StompRebound)
	case c.Physics.MaxFallSpeed <= 0:
		return fmt.Errorf("%w: physics.max_fall_speed must be positive, got %v", ErrInvalidConfig, c.Physics.MaxFallSpeed)
	case c.Physics.TickRate <= 0:
		return fmt.Errorf("%w: physics.tick_rate must be positive, got %d", ErrInvalidConfig, c.Physics.TickRate)
	case c.Physics.MaxFrameScale <= 0:
		return fmt.Errorf("%w: physics.max_frame_scale must be positive, got %v", ErrInvalidConfig, c.Physics.MaxFrameScale)
	case c.Player.Lives < 1:
		return fmt.Errorf("%w: player.lives must be at least 1, got %d", ErrInvalidConfig, c.Player.Lives)
	case c.Player.StartSize != "small" && c.Player.StartSize != "big":
		return fmt.Errorf("%w: player.start_size must be small or big, got %q", ErrInvalidConfig, c.Player.StartSize)
	}
	return nil
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // ProgressionScore, ProgressionTime or ProgressionNone
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to enemy speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

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
