package world

import (
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/physics"
)

// walker is the patrol movement shared by enemies and items: constant
// horizontal speed, gravity, and a direction flip on every wall contact.
// There is no ledge detection; walkers fall off platforms.
type walker struct {
	X, Y   float64
	VX, VY float64
	W, H   float64
	dir    float64 // -1 or +1
}

// Box returns the walker's bounds.
func (w *walker) Box() core.Box {
	return core.NewBox(w.X, w.Y, w.W, w.H)
}

// Facing returns -1 when moving left and +1 when moving right.
func (w *walker) Facing() int {
	if w.dir < 0 {
		return -1
	}
	return 1
}

func (w *walker) patrol(speed float64, ph Physics, scale float64, solids physics.Obstacles) {
	w.VX = w.dir * speed
	w.VY = fall(w.VY, ph, scale)

	res := physics.Resolve(physics.Body{Box: w.Box(), VX: w.VX, VY: w.VY}, solids, scale)
	w.X, w.Y = res.Box.X, res.Box.Y
	w.VY = res.VY
	if res.HitWall {
		w.dir = -w.dir
	}
	w.VX = w.dir * speed
}

// fall applies gravity to vy, capped at the max fall speed.
func fall(vy float64, ph Physics, scale float64) float64 {
	vy += ph.Gravity * scale
	if vy > ph.MaxFallSpeed {
		vy = ph.MaxFallSpeed
	}
	return vy
}

// EnemyState is the enemy lifecycle.
type EnemyState int

const (
	EnemyAlive EnemyState = iota
	EnemySquashed
)

func (s EnemyState) String() string {
	if s == EnemySquashed {
		return "squashed"
	}
	return "alive"
}

// Enemy is a patrolling walker defeated by a stomp.
type Enemy struct {
	walker
	State EnemyState
}

// NewEnemy creates an alive enemy of one tile, walking left.
func NewEnemy(x, y, size float64) Enemy {
	return Enemy{
		walker: walker{X: x, Y: y, W: size, H: size, dir: -1},
		State:  EnemyAlive,
	}
}

// Update advances an alive enemy by one step. Squashed enemies do not move.
func (e *Enemy) Update(speed float64, ph Physics, scale float64, solids physics.Obstacles) {
	if e.State != EnemyAlive {
		return
	}
	e.patrol(speed, ph, scale, solids)
}

// Squash defeats the enemy. It reports whether this call changed the state;
// repeated calls are no-ops.
func (e *Enemy) Squash() bool {
	if e.State == EnemySquashed {
		return false
	}
	e.State = EnemySquashed
	e.VX, e.VY = 0, 0
	return true
}
