package platformer

import (
	"math"
	"strconv"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer/world"
)

// Presentation timings, in seconds.
const (
	bumpRise    = 0.08
	bumpFall    = 0.12
	bumpHeight  = 1 // rows
	popupRise   = 0.6
	popupTravel = 2 // rows

	splatTTL = 300 * time.Millisecond
)

// bump lifts a struck block for a moment: a rise tween then a fall tween.
type bump struct {
	block  int
	up     *gween.Tween
	down   *gween.Tween
	rising bool
	offset float32 // rows, negative is up
	done   bool
}

func newBump(block int) bump {
	return bump{
		block:  block,
		up:     gween.New(0, -bumpHeight, bumpRise, ease.OutQuad),
		down:   gween.New(-bumpHeight, 0, bumpFall, ease.InQuad),
		rising: true,
	}
}

func (b *bump) update(secs float32) {
	if b.rising {
		v, finished := b.up.Update(secs)
		b.offset = v
		b.rising = !finished
		return
	}
	v, finished := b.down.Update(secs)
	b.offset = v
	b.done = finished
}

// splat keeps a squashed enemy on screen after the world drops it.
type splat struct {
	x, y float64
	left time.Duration
}

// popup floats the points of a score event upward.
type popup struct {
	x, y   float64
	text   string
	rise   *gween.Tween
	offset float32
	done   bool
}

type effects struct {
	bumps  []bump
	splats []splat
	popups []popup
}

// observe starts the effects for one world event.
func (fx *effects) observe(ev world.Event, tile float64) {
	switch ev.Kind {
	case world.EventBlockBump:
		fx.bumps = append(fx.removeBump(ev.Index), newBump(ev.Index))
	case world.EventStomp:
		fx.splats = append(fx.splats, splat{x: ev.X, y: ev.Y + tile - 1, left: splatTTL})
	}
	if ev.Points > 0 {
		fx.popups = append(fx.popups, popup{
			x:    ev.X,
			y:    ev.Y,
			text: "+" + strconv.Itoa(ev.Points),
			rise: gween.New(0, -popupTravel, popupRise, ease.OutCubic),
		})
	}
}

func (fx *effects) removeBump(block int) []bump {
	kept := fx.bumps[:0]
	for _, b := range fx.bumps {
		if b.block != block {
			kept = append(kept, b)
		}
	}
	return kept
}

// update advances every effect by dt and drops finished ones.
func (fx *effects) update(dt time.Duration) {
	secs := float32(dt.Seconds())

	bumps := fx.bumps[:0]
	for _, b := range fx.bumps {
		b.update(secs)
		if !b.done {
			bumps = append(bumps, b)
		}
	}
	fx.bumps = bumps

	splats := fx.splats[:0]
	for _, s := range fx.splats {
		s.left -= dt
		if s.left > 0 {
			splats = append(splats, s)
		}
	}
	fx.splats = splats

	popups := fx.popups[:0]
	for _, p := range fx.popups {
		p.offset, p.done = p.rise.Update(secs)
		if !p.done {
			popups = append(popups, p)
		}
	}
	fx.popups = popups
}

// bumpOffset returns the row offset of block i.
func (fx *effects) bumpOffset(block int) int {
	for _, b := range fx.bumps {
		if b.block == block {
			return int(math.Round(float64(b.offset)))
		}
	}
	return 0
}
