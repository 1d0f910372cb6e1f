package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parsePlatformer(GetDefaultYAML("platformer"))
	if err != nil {
		t.Fatalf("embedded defaults should parse: %v", err)
	}
	if cfg != DefaultPlatformerConfig() {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, DefaultPlatformerConfig())
	}
}

func TestLoadPlatformerCustomPathOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("physics:\n  gravity: 0.75\nplayer:\n  lives: 7\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadPlatformer(path)
	if err != nil {
		t.Fatalf("LoadPlatformer() error = %v", err)
	}
	if cfg.Physics.Gravity != 0.75 {
		t.Errorf("Gravity = %v, expected 0.75", cfg.Physics.Gravity)
	}
	if cfg.Player.Lives != 7 {
		t.Errorf("Lives = %d, expected 7", cfg.Player.Lives)
	}
	if cfg.Physics.JumpImpulse != -10 {
		t.Errorf("JumpImpulse = %v, expected default -10", cfg.Physics.JumpImpulse)
	}
	if cfg.Scoring.Coin != 200 {
		t.Errorf("Coin = %d, expected default 200", cfg.Scoring.Coin)
	}
}

func TestLoadPlatformerErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadPlatformer(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("physics: [oops"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPlatformer(bad); err == nil {
		t.Error("malformed YAML should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("physics:\n  jump_impulse: 4\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := LoadPlatformer(invalid)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("downward jump impulse should fail validation, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PlatformerConfig)
	}{
		{"zero tile", func(c *PlatformerConfig) { c.World.TileSize = 0 }},
		{"no gravity", func(c *PlatformerConfig) { c.Physics.Gravity = 0 }},
		{"downward jump", func(c *PlatformerConfig) { c.Physics.JumpImpulse = 1 }},
		{"downward rebound", func(c *PlatformerConfig) { c.Physics.StompRebound = 0 }},
		{"no fall cap", func(c *PlatformerConfig) { c.Physics.MaxFallSpeed = -1 }},
		{"no tick rate", func(c *PlatformerConfig) { c.Physics.TickRate = 0 }},
		{"no frame scale", func(c *PlatformerConfig) { c.Physics.MaxFrameScale = 0 }},
		{"no lives", func(c *PlatformerConfig) { c.Player.Lives = 0 }},
		{"bad size", func(c *PlatformerConfig) { c.Player.StartSize = "huge" }},
	}

	if err := DefaultPlatformerConfig().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultPlatformerConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestApplyPlatformerPreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		lives   int
		enabled bool
		level   float64
	}{
		{DifficultyEasy, 5, true, 0.0},
		{DifficultyNormal, 3, true, 0.3},
		{DifficultyHard, 2, true, 0.7},
		{DifficultyFixed, 3, false, 0.0},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultPlatformerConfig()
			ApplyPlatformerPreset(&cfg, tc.preset)
			if cfg.Player.Lives != tc.lives {
				t.Errorf("Lives = %d, expected %d", cfg.Player.Lives, tc.lives)
			}
			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
			if cfg.Difficulty.InitialLevel != tc.level {
				t.Errorf("InitialLevel = %v, expected %v", cfg.Difficulty.InitialLevel, tc.level)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %q, %v; expected normal", p, err)
	}
	if p, err := ParsePreset("hard"); err != nil || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %q, %v", p, err)
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("unknown preset should fail")
	}
}

func TestDifficultyManagerEnemySpeed(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.0,
		Progression:  ProgressionConfig{Type: ProgressionScore, MaxAt: 1000},
		Scaling:      ScalingConfig{SpeedMultiplier: 1.0},
	}

	tests := []struct {
		name     string
		cfg      func(DifficultyConfig) DifficultyConfig
		score    int
		ticks    uint64
		expected float64
	}{
		{"score start", nil, 0, 0, 1},
		{"score half", nil, 500, 0, 1.5},
		{"score past max_at", nil, 5000, 0, 2},
		{"ticks ignored for score", nil, 0, 5000, 1},
		{"time half", func(c DifficultyConfig) DifficultyConfig {
			c.Progression.Type = ProgressionTime
			return c
		}, 5000, 500, 1.5},
		{"disabled holds initial", func(c DifficultyConfig) DifficultyConfig {
			c.Enabled = false
			c.InitialLevel = 0.5
			return c
		}, 5000, 5000, 1.5},
		{"none holds initial", func(c DifficultyConfig) DifficultyConfig {
			c.Progression.Type = ProgressionNone
			return c
		}, 5000, 5000, 1},
		{"initial level clamped", func(c DifficultyConfig) DifficultyConfig {
			c.Enabled = false
			c.InitialLevel = 4
			return c
		}, 0, 0, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := cfg
			if tc.cfg != nil {
				c = tc.cfg(c)
			}
			dm := NewDifficultyManager(c)
			if got := dm.EnemySpeed(1, tc.score, tc.ticks); got != tc.expected {
				t.Errorf("EnemySpeed(1, %d, %d) = %v, expected %v", tc.score, tc.ticks, got, tc.expected)
			}
		})
	}
}
