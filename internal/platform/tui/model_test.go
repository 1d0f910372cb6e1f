package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// scriptedGame records what the runner feeds it and ends after overAt steps.
type scriptedGame struct {
	overAt  int
	score   int
	cleared bool
	resets  int
	steps   []time.Duration
	inputs  []core.InputFrame
}

func (g *scriptedGame) ID() string      { return "platformer:1-1" }
func (g *scriptedGame) Title() string   { return "Scripted" }
func (g *scriptedGame) LevelID() string { return "1-1" }
func (g *scriptedGame) Ticks() uint64   { return uint64(len(g.steps)) }

func (g *scriptedGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.steps = nil
	g.inputs = nil
}

func (g *scriptedGame) Step(dt time.Duration, in core.InputFrame) core.StepResult {
	g.steps = append(g.steps, dt)
	g.inputs = append(g.inputs, in)
	return core.StepResult{State: g.State()}
}

func (g *scriptedGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "scripted")
}

func (g *scriptedGame) State() core.GameState {
	over := g.overAt > 0 && len(g.steps) >= g.overAt
	return core.GameState{Score: g.score, Lives: 2, GameOver: over, Cleared: over && g.cleared}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return model
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60}
}

func TestModelTickDelta(t *testing.T) {
	g := &scriptedGame{}
	m := NewModel(g, nil, testConfig())

	t0 := time.Unix(1000, 0)
	m = update(t, m, TickMsg(t0))
	m = update(t, m, TickMsg(t0.Add(50*time.Millisecond)))
	m = update(t, m, TickMsg(t0.Add(60*time.Millisecond)))

	want := []time.Duration{time.Second / 60, 50 * time.Millisecond, 10 * time.Millisecond}
	if len(g.steps) != len(want) {
		t.Fatalf("steps = %v, expected %v", g.steps, want)
	}
	for i := range want {
		if g.steps[i] != want[i] {
			t.Errorf("steps[%d] = %v, expected %v", i, g.steps[i], want[i])
		}
	}
}

func TestModelInputClearedAfterTick(t *testing.T) {
	g := &scriptedGame{}
	m := NewModel(g, nil, testConfig())

	t0 := time.Unix(1000, 0)
	m = update(t, m, runeKey('a'))
	m = update(t, m, runeKey('x'))
	m = update(t, m, TickMsg(t0))
	update(t, m, TickMsg(t0.Add(time.Second/60)))

	if !g.inputs[0].Has(core.ActionLeft) || !g.inputs[0].Has(core.ActionFire) {
		t.Errorf("first step input = %s, expected Left and Fire", g.inputs[0])
	}
	if !g.inputs[1].Empty() {
		t.Errorf("second step input = %s, expected empty", g.inputs[1])
	}
}

func TestModelRecordsOncePerRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	g := &scriptedGame{overAt: 3, score: 500, cleared: true}
	m := NewModel(g, store, testConfig())

	t0 := time.Unix(1000, 0)
	for i := range 6 {
		m = update(t, m, TickMsg(t0.Add(time.Duration(i)*time.Second/60)))
	}
	if !m.State().GameOver {
		t.Fatal("expected game over after 3 steps")
	}

	scores, _ := store.TopScores("platformer:1-1", 10)
	if len(scores) != 1 || scores[0].Score != 500 {
		t.Fatalf("scores = %+v, expected a single 500", scores)
	}
	runs, _ := store.RecentRuns("1-1", 10)
	if len(runs) != 1 {
		t.Fatalf("runs = %+v, expected one", runs)
	}
	if runs[0].Ticks != 3 || !runs[0].Cleared || runs[0].LivesLeft != 2 {
		t.Errorf("run = %+v", runs[0])
	}

	// Restart and finish again
	m = update(t, m, runeKey('r'))
	m = update(t, m, TickMsg(t0.Add(time.Second)))
	if g.resets != 1 {
		t.Fatalf("resets = %d, expected 1", g.resets)
	}
	for i := range 3 {
		m = update(t, m, TickMsg(t0.Add(time.Second+time.Duration(i+1)*time.Second/60)))
	}

	scores, _ = store.TopScores("platformer:1-1", 10)
	if len(scores) != 2 {
		t.Errorf("scores after restart = %d, expected 2", len(scores))
	}
}

func TestModelSkipsZeroScore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	g := &scriptedGame{overAt: 1}
	m := NewModel(g, store, testConfig())
	update(t, m, TickMsg(time.Unix(1000, 0)))

	scores, _ := store.TopScores("platformer:1-1", 10)
	if len(scores) != 0 {
		t.Errorf("zero score was saved: %+v", scores)
	}
	runs, _ := store.RecentRuns("1-1", 10)
	if len(runs) != 1 || runs[0].Cleared {
		t.Errorf("runs = %+v, expected one lost run", runs)
	}
}

func TestModelBackToMenu(t *testing.T) {
	g := &scriptedGame{overAt: 1}
	m := NewModel(g, nil, testConfig())

	m = update(t, m, runeKey('b'))
	if m.BackToMenu() {
		t.Error("B during play should not leave the game")
	}

	m = update(t, m, TickMsg(time.Unix(1000, 0)))
	next, cmd := m.Update(runeKey('b'))
	m = next.(Model)
	if !m.BackToMenu() {
		t.Error("B after game over should return to menu")
	}
	if cmd == nil {
		t.Error("expected a quit command when leaving the game")
	}
	if m.View() != "" {
		t.Error("View() should be empty after leaving")
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(&scriptedGame{}, nil, testConfig())

	m = update(t, m, runeKey('q'))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
}

func TestModelDefaultsTickRate(t *testing.T) {
	g := &scriptedGame{}
	m := NewModel(g, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10})
	update(t, m, TickMsg(time.Unix(1000, 0)))

	if len(g.steps) != 1 || g.steps[0] != time.Second/60 {
		t.Errorf("steps = %v, expected one 60Hz frame", g.steps)
	}
}

// resizableGame keeps its run across terminal resizes.
type resizableGame struct {
	*scriptedGame
	sizes []core.RuntimeConfig
}

func (g *resizableGame) Resize(cfg core.RuntimeConfig) {
	g.sizes = append(g.sizes, cfg)
}

func TestModelResizeKeepsRun(t *testing.T) {
	g := &resizableGame{scriptedGame: &scriptedGame{}}
	m := NewModel(g, nil, testConfig())

	t0 := time.Unix(1000, 0)
	for i := range 5 {
		m = update(t, m, TickMsg(t0.Add(time.Duration(i)*time.Second/60)))
	}
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if g.resets != 0 {
		t.Errorf("resets = %d, expected 0", g.resets)
	}
	if len(g.steps) != 5 {
		t.Errorf("steps = %d, expected the run to continue from 5", len(g.steps))
	}
	if len(g.sizes) != 1 || g.sizes[0].ScreenW != 100 || g.sizes[0].ScreenH != 30 {
		t.Errorf("sizes = %+v, expected one 100x30 resize", g.sizes)
	}

	m = update(t, m, TickMsg(t0.Add(6*time.Second/60)))
	if len(g.steps) != 6 || g.steps[5] != time.Second/60 {
		t.Errorf("steps = %v, expected the clock to keep running", g.steps)
	}
}

func TestModelResizeResetsFixedLayoutGames(t *testing.T) {
	g := &scriptedGame{}
	m := NewModel(g, nil, testConfig())

	m = update(t, m, TickMsg(time.Unix(1000, 0)))
	update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if g.resets != 1 {
		t.Errorf("resets = %d, expected 1", g.resets)
	}
}

func TestSanitizeID(t *testing.T) {
	if got := sanitizeID("platformer:a/b"); got != "platformer_a_b" {
		t.Errorf("sanitizeID() = %q", got)
	}
}
