package platformer

import (
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/world"
)

// hold turns discrete key presses into held directions. Terminals report
// presses and auto-repeats but never releases, so a direction stays held
// for a window of ticks after its last press. Pressing the opposite
// direction releases it at once.
type hold struct {
	window int
	left   int
	right  int
}

func newHold(window int) hold {
	if window < 1 {
		window = 1
	}
	return hold{window: window}
}

func (h *hold) apply(in core.InputFrame) {
	left, right := in.Has(core.ActionLeft), in.Has(core.ActionRight)
	switch {
	case left && right:
		h.left, h.right = 0, 0
	case left:
		h.left, h.right = h.window, 0
	case right:
		h.left, h.right = 0, h.window
	}
}

func (h *hold) intent() world.Intent {
	return world.Intent{Left: h.left > 0, Right: h.right > 0}
}

// tick expires one step of the hold window.
func (h *hold) tick() {
	if h.left > 0 {
		h.left--
	}
	if h.right > 0 {
		h.right--
	}
}
