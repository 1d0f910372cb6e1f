package world

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// World owns every entity of a running level and the session counters.
// It is single-threaded: callers must not use it from several goroutines.
type World struct {
	params Params
	width  float64
	height float64

	blocks  blockSet
	enemies []Enemy
	items   []Item
	player  Player
	flag    core.Box
	hasFlag bool

	state      GameState
	enemySpeed float64
	tick       uint64
	gameOver   bool
	cleared    bool

	events []Event
	awards []Event // score grants queued during the player phase
	spawns []Spawn // item requests queued during the player phase
}

// New builds a world from a layout. It is the only fallible entry point:
// once constructed, every step is total.
func New(layout Layout, p Params) (*World, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	t := p.Tile
	w := &World{
		params:     p,
		width:      float64(layout.Cols) * t,
		height:     float64(layout.Rows) * t,
		state:      NewGameState(p.Lives),
		enemySpeed: p.Physics.EnemySpeed,
	}

	w.blocks = make(blockSet, 0, len(layout.Blocks))
	for _, b := range layout.Blocks {
		w.blocks = append(w.blocks, NewBlock(float64(b.Col)*t, float64(b.Row)*t, t, b.Type, b.Content))
	}
	w.enemies = make([]Enemy, 0, len(layout.Enemies))
	for _, c := range layout.Enemies {
		w.enemies = append(w.enemies, NewEnemy(float64(c.Col)*t, float64(c.Row)*t, t))
	}
	w.player = newPlayer(float64(layout.Spawn.Col)*t, float64(layout.Spawn.Row+1)*t, t, p.StartSize)
	// Respawns reuse this box and blocks only ever lose solidity, so one
	// check covers every respawn.
	if i := w.blocks.overlapping(w.player.Box()); i >= 0 {
		return nil, fmt.Errorf("%w: %s player at spawn %v overlaps block %d", ErrInvalidLevel, p.StartSize, layout.Spawn, i)
	}
	if layout.Flag != nil {
		w.flag = core.NewBox(float64(layout.Flag.Col)*t, float64(layout.Flag.Row)*t, t, t)
		w.hasFlag = true
	}

	return w, nil
}

// Width returns the world width in pixels.
func (w *World) Width() float64 { return w.width }

// Height returns the world height in pixels.
func (w *World) Height() float64 { return w.height }

// Params returns the parameters the world was built with.
func (w *World) Params() Params { return w.params }

// State returns a copy of the session counters.
func (w *World) State() GameState { return w.state }

// Tick returns the number of non-empty steps taken.
func (w *World) Tick() uint64 { return w.tick }

// GameOver reports whether the player ran out of lives.
func (w *World) GameOver() bool { return w.gameOver }

// Cleared reports whether the player reached the flag.
func (w *World) Cleared() bool { return w.cleared }

// SetEnemySpeed changes the patrol speed used from the next step on.
func (w *World) SetEnemySpeed(speed float64) {
	if speed > 0 {
		w.enemySpeed = speed
	}
}

// Jump makes the player jump if grounded.
func (w *World) Jump() bool {
	if w.gameOver || w.cleared {
		return false
	}
	return w.player.Jump(w.params.Physics.JumpImpulse)
}

// Fire is reserved for a future projectile action and does nothing.
func (w *World) Fire() {}

// Step advances the simulation by dt. A zero or negative dt changes
// nothing. Long frames are capped at MaxFrameScale reference ticks.
//
// Phases run in a fixed order and each sees the previous phase's changes:
// compaction of squashed enemies and collected items, enemy movement, item
// movement, the player (movement, block hits, enemy contacts, bounds, items,
// flag), queued score and spawn descriptors, and finally a pending grow.
func (w *World) Step(dt time.Duration, in Intent) StepReport {
	w.events = w.events[:0]
	if w.gameOver || w.cleared {
		return w.report()
	}
	scale := w.frameScale(dt)
	if scale == 0 {
		return w.report()
	}
	w.tick++

	w.compact()
	w.updateEnemies(scale)
	w.updateItems(scale)
	w.updatePlayer(scale, in)
	w.applyDescriptors()

	if !w.gameOver && w.player.tryGrow(w.blocks) {
		w.emit(EventGrow, w.player.X, w.player.Y, -1, 0)
	}

	return w.report()
}

func (w *World) frameScale(dt time.Duration) float64 {
	if dt <= 0 {
		return 0
	}
	scale := float64(dt) / float64(w.params.Frame())
	if scale > w.params.MaxFrameScale {
		scale = w.params.MaxFrameScale
	}
	return scale
}

// compact drops tombstoned enemies and items left by the previous step.
func (w *World) compact() {
	enemies := w.enemies[:0]
	for _, e := range w.enemies {
		if e.State == EnemyAlive {
			enemies = append(enemies, e)
		}
	}
	w.enemies = enemies

	items := w.items[:0]
	for _, it := range w.items {
		if it.State == ItemActive {
			items = append(items, it)
		}
	}
	w.items = items
}

func (w *World) updateEnemies(scale float64) {
	for i := range w.enemies {
		e := &w.enemies[i]
		e.Update(w.enemySpeed, w.params.Physics, scale, w.blocks)
		// Enemies that fall out of the world retire without score.
		if e.State == EnemyAlive && e.Y >= w.height {
			e.Squash()
		}
	}
}

func (w *World) updateItems(scale float64) {
	for i := range w.items {
		it := &w.items[i]
		it.Update(w.params.Physics.ItemSpeed, w.params.Physics, scale, w.blocks)
		if it.State == ItemActive && it.Y >= w.height {
			it.Collect()
		}
	}
}

func (w *World) updatePlayer(scale float64, in Intent) {
	p := &w.player
	if !p.Alive {
		return
	}

	m := p.move(in, w.params.Physics, scale, w.blocks)
	if m.HitCeiling {
		w.hitBlock(m.Ceiling)
	}

	if w.classifyEnemies(m) {
		return
	}

	p.clampX(w.width)
	if p.Y >= w.height {
		w.damage(EventPitFall, -1)
		return
	}

	w.collectItems()

	if w.hasFlag && p.Box().Intersects(w.flag) {
		w.cleared = true
		w.emit(EventLevelClear, w.flag.X, w.flag.Y, -1, 0)
	}
}

// hitBlock strikes block i from below and queues what it releases.
func (w *World) hitBlock(i int) {
	b := &w.blocks[i]
	before := b.Type
	spawn, ok := b.Hit(w.player.Size)

	switch {
	case ok && spawn.Kind == SpawnCoin:
		w.emit(EventBlockBump, b.X, b.Y, i, 0)
		w.award(EventCoin, b.X, b.Y, i, w.params.Scoring.Coin)
	case ok:
		w.emit(EventBlockBump, b.X, b.Y, i, 0)
		w.spawns = append(w.spawns, spawn)
	case before == BlockBrick && b.Type == BlockEmpty:
		w.award(EventBrickBreak, b.X, b.Y, i, w.params.Scoring.Brick)
	case before == BlockBrick:
		w.emit(EventBlockBump, b.X, b.Y, i, 0)
	}
}

// classifyEnemies resolves player contact with every alive enemy. A contact
// is a stomp only if the player's feet crossed the enemy's top this step;
// every other contact is damage. Classification stops at the first damage.
// It reports whether the player was damaged.
func (w *World) classifyEnemies(m motion) bool {
	p := &w.player
	for i := range w.enemies {
		e := &w.enemies[i]
		if e.State != EnemyAlive || !p.Box().Intersects(e.Box()) {
			continue
		}
		if p.stomps(e.Box(), m) {
			e.Squash()
			p.VY = w.params.Physics.StompRebound
			p.Grounded = false
			w.award(EventStomp, e.X, e.Y, i, w.params.Scoring.Stomp)
			continue
		}
		w.damage(EventDamage, i)
		return true
	}
	return false
}

func (w *World) collectItems() {
	p := &w.player
	for i := range w.items {
		it := &w.items[i]
		if it.State != ItemActive || !p.Box().Intersects(it.Box()) {
			continue
		}
		it.Collect()
		if p.Size == SizeSmall {
			p.growPending = true
		}
		w.award(EventPowerUp, it.X, it.Y, i, w.params.Scoring.PowerUp)
	}
}

// damage costs a life, then respawns the player or ends the game.
func (w *World) damage(kind EventKind, index int) {
	p := &w.player
	w.emit(kind, p.X, p.Y, index, 0)

	if w.state.LoseLife() > 0 {
		p.respawn(w.params.StartSize)
		w.emit(EventRespawn, p.X, p.Y, -1, 0)
		return
	}

	p.Alive = false
	p.VX, p.VY = 0, 0
	w.gameOver = true
	w.emit(EventGameOver, p.X, p.Y, -1, 0)
}

// applyDescriptors grants queued score and creates queued items. A
// mushroom whose cell is taken by a solid block is dropped.
func (w *World) applyDescriptors() {
	for _, a := range w.awards {
		w.state.AddScore(a.Points)
		w.events = append(w.events, a)
	}
	w.awards = w.awards[:0]

	for _, s := range w.spawns {
		if s.Kind != SpawnMushroom {
			continue
		}
		it := NewItem(s.X, s.Y, w.params.Tile)
		if w.blocks.overlapping(it.Box()) >= 0 {
			continue
		}
		w.items = append(w.items, it)
		w.emit(EventItemSpawn, s.X, s.Y, len(w.items)-1, 0)
	}
	w.spawns = w.spawns[:0]
}

func (w *World) award(kind EventKind, x, y float64, index, points int) {
	w.awards = append(w.awards, Event{Kind: kind, X: x, Y: y, Index: index, Points: points})
}

func (w *World) emit(kind EventKind, x, y float64, index, points int) {
	w.events = append(w.events, Event{Kind: kind, X: x, Y: y, Index: index, Points: points})
}

func (w *World) report() StepReport {
	return StepReport{
		Tick:     w.tick,
		Events:   w.events,
		GameOver: w.gameOver,
		Cleared:  w.cleared,
	}
}
