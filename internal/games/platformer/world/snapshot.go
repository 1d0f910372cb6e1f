package world

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// PlayerView is the read-only player state for presentation.
type PlayerView struct {
	Box         core.Box
	VX, VY      float64
	Size        Size
	Grounded    bool
	Jumping     bool
	Alive       bool
	GrowPending bool
}

// BlockView is the read-only state of one block.
type BlockView struct {
	Box      core.Box
	Type     BlockType
	Content  Content
	HitCount int
	Solid    bool
}

// EnemyView is the read-only state of one enemy.
type EnemyView struct {
	Box    core.Box
	VX, VY float64
	State  EnemyState
}

// ItemView is the read-only state of one item.
type ItemView struct {
	Box    core.Box
	VX, VY float64
	State  ItemState
}

// Snapshot captures the complete world state after a step for rendering
// and determinism checks. It shares no memory with the World.
type Snapshot struct {
	Tick     uint64
	Score    int
	Lives    int
	GameOver bool
	Cleared  bool
	Width    float64
	Height   float64

	Player  PlayerView
	Blocks  []BlockView
	Enemies []EnemyView
	Items   []ItemView
	Flag    *core.Box
}

// Snapshot returns the current world state.
func (w *World) Snapshot() Snapshot {
	p := &w.player
	snap := Snapshot{
		Tick:     w.tick,
		Score:    w.state.Score(),
		Lives:    w.state.Lives(),
		GameOver: w.gameOver,
		Cleared:  w.cleared,
		Width:    w.width,
		Height:   w.height,
		Player: PlayerView{
			Box:         p.Box(),
			VX:          p.VX,
			VY:          p.VY,
			Size:        p.Size,
			Grounded:    p.Grounded,
			Jumping:     p.Jumping,
			Alive:       p.Alive,
			GrowPending: p.growPending,
		},
		Blocks:  make([]BlockView, len(w.blocks)),
		Enemies: make([]EnemyView, len(w.enemies)),
		Items:   make([]ItemView, len(w.items)),
	}

	for i := range w.blocks {
		b := &w.blocks[i]
		snap.Blocks[i] = BlockView{Box: b.Box(), Type: b.Type, Content: b.Content, HitCount: b.HitCount, Solid: b.IsSolid()}
	}
	for i := range w.enemies {
		e := &w.enemies[i]
		snap.Enemies[i] = EnemyView{Box: e.Box(), VX: e.VX, VY: e.VY, State: e.State}
	}
	for i := range w.items {
		it := &w.items[i]
		snap.Items[i] = ItemView{Box: it.Box(), VX: it.VX, VY: it.VY, State: it.State}
	}
	if w.hasFlag {
		flag := w.flag
		snap.Flag = &flag
	}

	return snap
}

// Hash returns an FNV-1a digest of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	u := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}
	f := func(v float64) { u(math.Float64bits(v)) }
	i := func(v int) { u(uint64(int64(v))) } //#nosec G115 -- hash computation
	b := func(v bool) {
		if v {
			u(1)
		} else {
			u(0)
		}
	}
	box := func(bx core.Box) {
		f(bx.X)
		f(bx.Y)
		f(bx.W)
		f(bx.H)
	}

	u(snap.Tick)
	i(snap.Score)
	i(snap.Lives)
	b(snap.GameOver)
	b(snap.Cleared)

	box(snap.Player.Box)
	f(snap.Player.VX)
	f(snap.Player.VY)
	i(int(snap.Player.Size))
	b(snap.Player.Grounded)
	b(snap.Player.Jumping)
	b(snap.Player.Alive)
	b(snap.Player.GrowPending)

	i(len(snap.Blocks))
	for _, bl := range snap.Blocks {
		box(bl.Box)
		i(int(bl.Type))
		i(int(bl.Content))
		i(bl.HitCount)
	}
	i(len(snap.Enemies))
	for _, e := range snap.Enemies {
		box(e.Box)
		f(e.VX)
		f(e.VY)
		i(int(e.State))
	}
	i(len(snap.Items))
	for _, it := range snap.Items {
		box(it.Box)
		f(it.VX)
		f(it.VY)
		i(int(it.State))
	}

	return h.Sum64()
}
