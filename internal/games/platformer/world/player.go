package world

import (
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/physics"
)

// Size is the player's size state.
type Size int

const (
	SizeSmall Size = iota
	SizeBig
)

func (s Size) String() string {
	if s == SizeBig {
		return "big"
	}
	return "small"
}

// ParseSize converts "small" or "big"; anything else is small.
func ParseSize(s string) Size {
	if s == "big" {
		return SizeBig
	}
	return SizeSmall
}

// Intent is the held horizontal input sampled each step.
type Intent struct {
	Left, Right bool
}

// Player is the controllable character. Its bottom edge is the anchor for
// size changes and respawns, so growing keeps the feet in place.
type Player struct {
	X, Y     float64
	VX, VY   float64
	W, H     float64
	Grounded bool
	Jumping  bool
	Size     Size
	Alive    bool

	tile        float64
	spawnX      float64
	spawnBottom float64
	growPending bool
}

func newPlayer(spawnX, spawnBottom, tile float64, size Size) Player {
	p := Player{
		W:           tile,
		Alive:       true,
		tile:        tile,
		spawnX:      spawnX,
		spawnBottom: spawnBottom,
	}
	p.respawn(size)
	return p
}

// Box returns the player's bounds.
func (p *Player) Box() core.Box {
	return core.NewBox(p.X, p.Y, p.W, p.H)
}

// GrowPending reports whether a collected power-up is waiting for the
// player to be grounded with headroom.
func (p *Player) GrowPending() bool {
	return p.growPending
}

// Jump starts a jump. It only works while grounded; there is no air jump.
func (p *Player) Jump(impulse float64) bool {
	if !p.Alive || !p.Grounded {
		return false
	}
	p.VY = impulse
	p.Jumping = true
	p.Grounded = false
	return true
}

// motion records what contact classification needs from a player update.
type motion struct {
	physics.Result
	prevBottom float64
	falling    bool
}

// move applies input and gravity and resolves the player against solids.
func (p *Player) move(in Intent, ph Physics, scale float64, solids physics.Obstacles) motion {
	prevBottom := p.Y + p.H

	switch {
	case in.Left && !in.Right:
		p.VX = -ph.PlayerSpeed
	case in.Right && !in.Left:
		p.VX = ph.PlayerSpeed
	default:
		p.VX = 0
	}
	p.VY = fall(p.VY, ph, scale)
	falling := p.VY > 0

	res := physics.Resolve(physics.Body{Box: p.Box(), VX: p.VX, VY: p.VY}, solids, scale)
	p.X, p.Y = res.Box.X, res.Box.Y
	p.VX, p.VY = res.VX, res.VY

	p.Grounded = res.Landed
	if res.Landed {
		p.Jumping = false
	}

	return motion{Result: res, prevBottom: prevBottom, falling: falling}
}

// stomps reports whether the player's bottom edge crossed enemy's top edge
// downward during the step described by m. Side and underside contacts fail
// the crossing test even when the boxes overlap.
func (p *Player) stomps(enemy core.Box, m motion) bool {
	return m.falling && m.prevBottom <= enemy.Y && p.Y+p.H > enemy.Y
}

// clampX keeps the player inside [0, width]; it reports whether it clamped.
func (p *Player) clampX(width float64) bool {
	switch {
	case p.X < 0:
		p.X = 0
	case p.X+p.W > width:
		p.X = width - p.W
	default:
		return false
	}
	p.VX = 0
	return true
}

// respawn puts the player back at the spawn point, standing and at rest.
func (p *Player) respawn(size Size) {
	p.setSize(size)
	p.X = p.spawnX
	p.Y = p.spawnBottom - p.H
	p.VX, p.VY = 0, 0
	p.Jumping = false
	p.Grounded = true
	p.growPending = false
}

// setSize changes the height keeping the bottom edge fixed.
func (p *Player) setSize(size Size) {
	bottom := p.Y + p.H
	p.Size = size
	p.H = p.tile
	if size == SizeBig {
		p.H = 2 * p.tile
	}
	p.Y = bottom - p.H
}

// tryGrow applies a pending grow if the player is grounded and the taller
// box fits. Airborne resizes are never attempted.
func (p *Player) tryGrow(solids physics.Obstacles) bool {
	if !p.growPending || !p.Alive || !p.Grounded {
		return false
	}
	if p.Size == SizeBig {
		p.growPending = false
		return false
	}
	grown := core.NewBox(p.X, p.Y+p.H-2*p.tile, p.W, 2*p.tile)
	for i := range solids.Len() {
		if solids.Solid(i) && grown.Intersects(solids.Box(i)) {
			return false
		}
	}
	p.setSize(SizeBig)
	p.growPending = false
	return true
}
