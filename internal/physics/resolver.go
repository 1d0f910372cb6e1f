// Package physics resolves moving bodies against static tile obstacles.
//
// Resolution is axis-separated: the body first moves along X and is pushed
// out of anything it entered, then moves along Y and is pushed out again.
// Each axis pass picks the obstacle needing the smallest correction, with
// ties going to the lowest obstacle index, and repeats until the body is
// clear so that stacked or adjacent obstacles never leave it embedded.
package physics

import "github.com/vovakirdan/tui-platformer/internal/core"

// NoObstacle marks an unset obstacle index in a Result.
const NoObstacle = -1

// Obstacles is the static collision set a body is resolved against.
// Indices are stable for the duration of one Resolve call.
type Obstacles interface {
	Len() int
	Box(i int) core.Box
	Solid(i int) bool
}

// Boxes is an Obstacles set in which every box is solid.
type Boxes []core.Box

func (b Boxes) Len() int           { return len(b) }
func (b Boxes) Box(i int) core.Box { return b[i] }
func (b Boxes) Solid(int) bool     { return true }

// Body is a moving box with a velocity in pixels per reference frame.
type Body struct {
	Box    core.Box
	VX, VY float64
}

// Flags reports which contacts a resolution produced.
type Flags struct {
	Landed     bool // moving down, stopped by the top of an obstacle
	HitCeiling bool // moving up, stopped by the bottom of an obstacle
	HitWall    bool // moving sideways, stopped by an obstacle side
}

// Result is the resolved body plus contact information.
type Result struct {
	Body
	Flags

	// Indices of the obstacles that stopped the body, NoObstacle if none.
	Wall    int
	Floor   int
	Ceiling int
}

// Resolve moves body by its velocity scaled by scale and resolves every
// penetration into solid obstacles. Velocity on an axis that hit something
// is zeroed. A zero displacement on an axis skips that axis entirely.
func Resolve(body Body, obstacles Obstacles, scale float64) Result {
	res := Result{
		Body:    body,
		Wall:    NoObstacle,
		Floor:   NoObstacle,
		Ceiling: NoObstacle,
	}

	if dx := body.VX * scale; dx != 0 {
		res.Box.X += dx
		if idx := settle(&res.Box, obstacles, axisX, dx > 0); idx != NoObstacle {
			res.VX = 0
			res.HitWall = true
			res.Wall = idx
		}
	}

	if dy := body.VY * scale; dy != 0 {
		res.Box.Y += dy
		if idx := settle(&res.Box, obstacles, axisY, dy > 0); idx != NoObstacle {
			res.VY = 0
			if dy > 0 {
				res.Landed = true
				res.Floor = idx
			} else {
				res.HitCeiling = true
				res.Ceiling = idx
			}
		}
	}

	return res
}

type axis int

const (
	axisX axis = iota
	axisY
)

// settle pushes box back against the direction of motion until it overlaps
// no solid obstacle. It returns the index of the obstacle the box finally
// rests against, or NoObstacle if it never overlapped anything.
//
// Every correction moves the box in the same direction and leaves it flush
// with the chosen obstacle, so each obstacle is selected at most once.
//
// Obstacles the box already overlapped before moving are settled the same
// way: the box is pushed back against its motion, up to a full obstacle
// width. Worlds never place bodies inside solids, so this only happens for
// bodies a caller embeds directly.
func settle(box *core.Box, obstacles Obstacles, ax axis, positive bool) int {
	last := NoObstacle
	for range obstacles.Len() {
		best := NoObstacle
		bestCorr := 0.0
		for i := range obstacles.Len() {
			if !obstacles.Solid(i) {
				continue
			}
			o := obstacles.Box(i)
			if !box.Intersects(o) {
				continue
			}
			corr := correction(*box, o, ax, positive)
			if best == NoObstacle || corr < bestCorr {
				best = i
				bestCorr = corr
			}
		}
		if best == NoObstacle {
			break
		}
		// Snap flush to the obstacle edge.
		o := obstacles.Box(best)
		switch {
		case ax == axisX && positive:
			box.X = o.X - box.W
		case ax == axisX:
			box.X = o.Right()
		case positive:
			box.Y = o.Y - box.H
		default:
			box.Y = o.Bottom()
		}
		last = best
	}
	return last
}

// correction is the distance box must move against its motion to clear o.
func correction(box, o core.Box, ax axis, positive bool) float64 {
	switch {
	case ax == axisX && positive:
		return box.Right() - o.X
	case ax == axisX:
		return o.Right() - box.X
	case positive:
		return box.Bottom() - o.Y
	default:
		return o.Bottom() - box.Y
	}
}
