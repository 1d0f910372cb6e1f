// Package platformer adapts the platformer simulation to the arcade
// platform: it turns key presses into held intents, feeds the world its
// time delta and draws snapshots into the screen buffer.
package platformer

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/world"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

// IDPrefix starts the registry ID of every platformer level.
const IDPrefix = "platformer:"

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// eventLog receives gameplay events; discarded unless the CLI sets a log file.
var eventLog = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetEventLog routes gameplay events to l.
func SetEventLog(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	eventLog = l
}

// ParamsFromConfig converts the YAML configuration to simulation parameters.
func ParamsFromConfig(cfg config.PlatformerConfig) world.Params {
	return world.Params{
		Tile: float64(cfg.World.TileSize),
		Physics: world.Physics{
			Gravity:      cfg.Physics.Gravity,
			MaxFallSpeed: cfg.Physics.MaxFallSpeed,
			JumpImpulse:  cfg.Physics.JumpImpulse,
			StompRebound: cfg.Physics.StompRebound,
			PlayerSpeed:  cfg.Physics.PlayerSpeed,
			EnemySpeed:   cfg.Physics.EnemySpeed,
			ItemSpeed:    cfg.Physics.ItemSpeed,
		},
		Scoring: world.Scoring{
			Coin:    cfg.Scoring.Coin,
			Stomp:   cfg.Scoring.Stomp,
			PowerUp: cfg.Scoring.PowerUp,
			Brick:   cfg.Scoring.Brick,
		},
		Lives:         cfg.Player.Lives,
		StartSize:     world.ParseSize(cfg.Player.StartSize),
		TickRate:      cfg.Physics.TickRate,
		MaxFrameScale: cfg.Physics.MaxFrameScale,
	}
}

// Game runs one platformer level.
type Game struct {
	level levels.Level

	cfg        config.PlatformerConfig
	params     world.Params
	world      *world.World
	difficulty *config.DifficultyManager
	runtime    core.RuntimeConfig

	hold   hold
	fx     effects
	snap   world.Snapshot
	paused bool
	err    error // level could not be built

	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// New creates a game for the given level.
func New(lvl levels.Level) *Game {
	return &Game{level: lvl}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return IDPrefix + g.level.ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Platformer " + g.level.ID + ": " + g.level.Name
}

// Level returns the level being played.
func (g *Game) Level() levels.Level {
	return g.level
}

// LevelID returns the level ID without the registry prefix.
func (g *Game) LevelID() string {
	return g.level.ID
}

// Ticks returns the reference ticks simulated since the last reset.
func (g *Game) Ticks() uint64 {
	if g.world == nil {
		return 0
	}
	return g.world.Tick()
}

// Reset loads the configuration and rebuilds the world from the level.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadPlatformer(configPath)
	if err != nil {
		cfg = config.DefaultPlatformerConfig()
	}
	if difficultyPreset != "" {
		config.ApplyPlatformerPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg
	g.params = ParamsFromConfig(cfg)
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.minScreenW, g.minScreenH = ScreenSize(g.level)
	g.Resize(runtime)

	g.hold = newHold(cfg.Input.HoldTicks)
	g.fx = effects{}
	g.paused = false

	g.world, g.err = g.level.NewWorld(g.params)
	if g.err != nil {
		eventLog.Error("level rejected", "level", g.level.ID, "err", g.err)
		return
	}
	g.snap = g.world.Snapshot()
	eventLog.Info("level start", "level", g.level.ID, "lives", g.params.Lives)
}

// Resize records new screen dimensions. The world does not depend on the
// screen, so the run in progress continues; a screen below the level size
// freezes it until the terminal grows again.
func (g *Game) Resize(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.screenTooSmall = runtime.ScreenW < g.minScreenW || runtime.ScreenH < g.minScreenH
}

// Step advances the game by dt.
func (g *Game) Step(dt time.Duration, in core.InputFrame) core.StepResult {
	if g.world == nil || g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	over := g.world.GameOver() || g.world.Cleared()
	if in.Has(core.ActionRestart) && over {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !over {
		g.paused = !g.paused
	}
	if g.paused || over {
		return core.StepResult{State: g.State()}
	}

	g.hold.apply(in)
	if in.Has(core.ActionJump) {
		g.world.Jump()
	}
	if in.Has(core.ActionFire) {
		g.world.Fire()
	}

	base := g.params.Physics.EnemySpeed
	g.world.SetEnemySpeed(g.difficulty.EnemySpeed(base, g.world.State().Score(), g.world.Tick()))

	report := g.world.Step(dt, g.hold.intent())
	g.hold.tick()
	g.fx.update(dt)
	g.snap = g.world.Snapshot()

	for _, ev := range report.Events {
		g.fx.observe(ev, g.params.Tile)
		logEvent(g.level.ID, report.Tick, ev)
	}

	return core.StepResult{State: g.State()}
}

// Err returns why the level could not be built, if it could not.
func (g *Game) Err() error {
	return g.err
}

// Snapshot returns the world state after the latest step.
func (g *Game) Snapshot() world.Snapshot {
	return g.snap
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{GameOver: true}
	}
	s := g.world.State()
	return core.GameState{
		Score:    s.Score(),
		Lives:    s.Lives(),
		GameOver: g.world.GameOver() || g.world.Cleared(),
		Cleared:  g.world.Cleared(),
		Paused:   g.paused,
	}
}

func logEvent(level string, tick uint64, ev world.Event) {
	switch ev.Kind {
	case world.EventBlockBump, world.EventItemSpawn:
		eventLog.Debug(ev.Kind.String(), "level", level, "tick", tick, "x", ev.X, "y", ev.Y, "index", ev.Index)
	case world.EventGameOver:
		eventLog.Warn(ev.Kind.String(), "level", level, "tick", tick)
	default:
		eventLog.Info(ev.Kind.String(), "level", level, "tick", tick, "x", ev.X, "y", ev.Y, "points", ev.Points)
	}
}

// RegisterLevels makes every level in dir playable, replacing built-ins
// that share an ID. It returns the number of file levels registered.
func RegisterLevels(dir string) (int, error) {
	loader := levels.NewLoader(dir)
	loaded, err := loader.LoadAll()
	if err != nil {
		return 0, err
	}
	for _, s := range loader.Skipped {
		eventLog.Warn("level skipped", "path", s.Path, "err", s.Err)
	}
	for _, lvl := range loaded {
		registry.Replace(IDPrefix+lvl.ID, func() registry.Game {
			return New(lvl)
		})
	}
	return len(loaded), nil
}

// Register the built-in levels with the registry
func init() {
	for _, lvl := range levels.BuiltinLevels() {
		registry.Register(IDPrefix+lvl.ID, func() registry.Game {
			return New(lvl)
		})
	}
}
