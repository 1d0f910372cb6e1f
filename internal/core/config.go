package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use it to check that their level fits the terminal.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Platform ticks per second (default 60)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// Frame returns the interval between platform ticks.
// Non-positive tick rates fall back to the default.
func (c RuntimeConfig) Frame() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = DefaultConfig().TickRate
	}
	return time.Second / time.Duration(rate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	Lives    int  // Remaining lives
	GameOver bool // Whether the run has ended, by losing or by clearing
	Cleared  bool // Whether the level goal was reached
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation step.
type StepResult struct {
	State GameState
}
