// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Game is the core interface that all games must implement.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "platformer:1-1").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display (e.g., "Platformer 1-1").
	Title() string

	// Reset initializes or resets the game state.
	// Called once at start, on restart, and on terminal resize for games
	// that do not implement Resizer. The RuntimeConfig provides screen
	// dimensions and the tick rate.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by the wall-clock time elapsed since the
	// previous step. Input is abstracted to platform-level actions
	// (Jump, Pause, etc.). Returns the current game state.
	Step(dt time.Duration, in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state (score, game over, paused).
	State() core.GameState
}

// Resizer is implemented by games whose state does not depend on the
// screen size. The platform calls Resize instead of Reset when the
// terminal changes size, so a run in progress survives it.
type Resizer interface {
	Resize(cfg core.RuntimeConfig)
}

// ErrUnknownGame is returned by Create for IDs nobody registered.
var ErrUnknownGame = errors.New("registry: unknown game")

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

// entry caches the title so listing never builds games.
type entry struct {
	factory Factory
	title   string
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a game factory, typically from an init function.
// It panics if id is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{factory: f, title: f().Title()}
}

// Replace registers f under id, overwriting any existing factory.
// Levels loaded from disk use it to shadow a built-in of the same ID.
func Replace(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	entries[id] = entry{factory: f, title: f().Title()}
}

// List returns every registered game, sorted by ID.
func List() []GameInfo {
	return ListPrefix("")
}

// ListPrefix returns the registered games whose ID starts with prefix, sorted by ID.
func ListPrefix(prefix string) []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	var result []GameInfo
	for id, e := range entries {
		if strings.HasPrefix(id, prefix) {
			result = append(result, GameInfo{ID: id, Title: e.title})
		}
	}
	slices.SortFunc(result, func(a, b GameInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return result
}

// Create instantiates a new game by its ID. Unknown IDs wrap ErrUnknownGame.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return e.factory(), nil
}

// Exists reports whether a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
