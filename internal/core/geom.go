// Package core provides fundamental types and utilities for the platformer.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Box is an axis-aligned bounding box in world pixels.
// Y grows downward; (X, Y) is the top-left corner.
type Box struct {
	X, Y float64
	W, H float64
}

// NewBox creates a box with the given position and dimensions.
func NewBox(x, y, w, h float64) Box {
	return Box{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// Intersects reports whether the two boxes overlap with positive area.
// Edges are open: boxes that only touch do not intersect.
func (b Box) Intersects(other Box) bool {
	if b.X >= other.Right() || other.X >= b.Right() {
		return false
	}
	if b.Y >= other.Bottom() || other.Y >= b.Bottom() {
		return false
	}
	return true
}

// Penetration returns the signed per-axis translation that moves a out of b.
// Each component is the smaller of the two pushes along that axis; the sign
// points away from b. Equal pushes resolve toward positive. Both components
// are zero when the boxes do not intersect.
func Penetration(a, b Box) (dx, dy float64) {
	if !a.Intersects(b) {
		return 0, 0
	}

	left := a.Right() - b.X
	right := b.Right() - a.X
	if left < right {
		dx = -left
	} else {
		dx = right
	}

	up := a.Bottom() - b.Y
	down := b.Bottom() - a.Y
	if up < down {
		dy = -up
	} else {
		dy = down
	}
	return dx, dy
}

// Rect represents an axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}
