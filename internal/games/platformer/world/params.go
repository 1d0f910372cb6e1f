// Package world is the platformer simulation: tile blocks, patrolling enemies,
// power-up items and the player, advanced one step at a time against the
// collision resolver. It performs no I/O; callers feed it a time delta and
// input intents and read back events and snapshots.
package world

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidLevel is returned by New for layouts the simulation cannot run.
var ErrInvalidLevel = errors.New("invalid level")

// Physics holds movement constants in pixels per reference tick.
type Physics struct {
	Gravity      float64
	MaxFallSpeed float64
	JumpImpulse  float64 // negative: up
	StompRebound float64 // negative: up
	PlayerSpeed  float64
	EnemySpeed   float64
	ItemSpeed    float64
}

// Scoring holds points granted per event.
type Scoring struct {
	Coin    int
	Stomp   int
	PowerUp int
	Brick   int
}

// Params configures a World.
type Params struct {
	Tile          float64
	Physics       Physics
	Scoring       Scoring
	Lives         int
	StartSize     Size
	TickRate      int     // reference ticks per second
	MaxFrameScale float64 // upper bound on ticks advanced by one Step
}

// DefaultParams returns the classic constants: 16px tiles, gravity 0.5,
// jump -10 and three lives at 60 ticks per second.
func DefaultParams() Params {
	return Params{
		Tile: 16,
		Physics: Physics{
			Gravity:      0.5,
			MaxFallSpeed: 8,
			JumpImpulse:  -10,
			StompRebound: -5,
			PlayerSpeed:  2,
			EnemySpeed:   1,
			ItemSpeed:    1,
		},
		Scoring: Scoring{
			Coin:    200,
			Stomp:   100,
			PowerUp: 1000,
			Brick:   50,
		},
		Lives:         3,
		StartSize:     SizeSmall,
		TickRate:      60,
		MaxFrameScale: 3,
	}
}

// Frame returns the duration of one reference tick.
func (p Params) Frame() time.Duration {
	return time.Second / time.Duration(p.TickRate)
}

// Cell is a tile coordinate.
type Cell struct {
	Col, Row int
}

// BlockSpec places one block in a Layout.
type BlockSpec struct {
	Cell
	Type    BlockType
	Content Content
}

// Layout is the level description a World is built from.
type Layout struct {
	Cols, Rows int
	Blocks     []BlockSpec
	Enemies    []Cell
	Spawn      Cell
	Flag       *Cell // nil: the level never clears
}

// Validate checks that every entity lies inside the grid and that the
// spawn and enemy cells are free of blocks.
func (l Layout) Validate() error {
	if l.Cols <= 0 || l.Rows <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidLevel, l.Cols, l.Rows)
	}
	if !l.contains(l.Spawn) {
		return fmt.Errorf("%w: spawn %v outside %dx%d grid", ErrInvalidLevel, l.Spawn, l.Cols, l.Rows)
	}
	occupied := make(map[Cell]bool, len(l.Blocks))
	for i, b := range l.Blocks {
		occupied[b.Cell] = occupied[b.Cell] || b.Type != BlockEmpty
		if !l.contains(b.Cell) {
			return fmt.Errorf("%w: block %d at %v outside grid", ErrInvalidLevel, i, b.Cell)
		}
		if b.Type < BlockSolid || b.Type > BlockPipeBottom {
			return fmt.Errorf("%w: block %d has unknown type %d", ErrInvalidLevel, i, b.Type)
		}
		if b.Cell == l.Spawn && b.Type != BlockEmpty {
			return fmt.Errorf("%w: spawn %v is inside a block", ErrInvalidLevel, l.Spawn)
		}
	}
	for i, e := range l.Enemies {
		if !l.contains(e) {
			return fmt.Errorf("%w: enemy %d at %v outside grid", ErrInvalidLevel, i, e)
		}
		if occupied[e] {
			return fmt.Errorf("%w: enemy %d at %v is inside a block", ErrInvalidLevel, i, e)
		}
	}
	if l.Flag != nil && !l.contains(*l.Flag) {
		return fmt.Errorf("%w: flag %v outside grid", ErrInvalidLevel, *l.Flag)
	}
	return nil
}

func (l Layout) contains(c Cell) bool {
	return c.Col >= 0 && c.Col < l.Cols && c.Row >= 0 && c.Row < l.Rows
}

func (p Params) validate() error {
	switch {
	case p.Tile <= 0:
		return fmt.Errorf("%w: tile size %v", ErrInvalidLevel, p.Tile)
	case p.TickRate <= 0:
		return fmt.Errorf("%w: tick rate %d", ErrInvalidLevel, p.TickRate)
	case p.MaxFrameScale <= 0:
		return fmt.Errorf("%w: max frame scale %v", ErrInvalidLevel, p.MaxFrameScale)
	case p.Physics.Gravity <= 0:
		return fmt.Errorf("%w: gravity %v", ErrInvalidLevel, p.Physics.Gravity)
	case p.Physics.MaxFallSpeed <= 0:
		return fmt.Errorf("%w: max fall speed %v", ErrInvalidLevel, p.Physics.MaxFallSpeed)
	case p.Physics.JumpImpulse >= 0:
		return fmt.Errorf("%w: jump impulse %v is not upward", ErrInvalidLevel, p.Physics.JumpImpulse)
	case p.Physics.StompRebound >= 0:
		return fmt.Errorf("%w: stomp rebound %v is not upward", ErrInvalidLevel, p.Physics.StompRebound)
	case p.Lives < 1:
		return fmt.Errorf("%w: %d lives", ErrInvalidLevel, p.Lives)
	}
	return nil
}
