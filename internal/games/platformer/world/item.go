package world

import "github.com/vovakirdan/tui-platformer/internal/physics"

// ItemState is the item lifecycle.
type ItemState int

const (
	ItemActive ItemState = iota
	ItemCollected
)

// Item is a mushroom released by a question block. It walks like an enemy,
// starting to the right, and grows the player on contact.
type Item struct {
	walker
	State ItemState
}

// NewItem creates an active mushroom at the given position.
func NewItem(x, y, size float64) Item {
	return Item{
		walker: walker{X: x, Y: y, W: size, H: size, dir: 1},
		State:  ItemActive,
	}
}

// Update advances an active item by one step.
func (it *Item) Update(speed float64, ph Physics, scale float64, solids physics.Obstacles) {
	if it.State != ItemActive {
		return
	}
	it.patrol(speed, ph, scale, solids)
}

// Collect retires the item. It reports whether this call changed the state.
func (it *Item) Collect() bool {
	if it.State == ItemCollected {
		return false
	}
	it.State = ItemCollected
	return true
}
