package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing the given level (default 1-1).

Controls:
  Left/Right, A/D   - Walk (held for a few ticks per key press)
  Space/W/Up        - Jump
  X                 - Fire (reserved)
  P/Esc             - Pause
  R                 - Restart (after game over or course clear)
  B                 - Back (after game over or while paused)
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - 5 lives, enemies start slow
  normal - 3 lives
  hard   - 2 lives, enemies start fast
  fixed  - No enemy speed progression

Examples:
  platformer play
  platformer play 1-2 --difficulty hard
  platformer play castle --levels-dir ./levels
  platformer play --config ./my-platformer.yaml --log-file events.log`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	addGameFlags(playCmd)
}

// gameIDFor accepts a bare level ID or a full registry ID.
func gameIDFor(arg string) string {
	if strings.HasPrefix(arg, platformer.IDPrefix) {
		return arg
	}
	return platformer.IDPrefix + arg
}

func runPlay(_ *cobra.Command, args []string) {
	if err := applyGameFlags(); err != nil {
		fail("%v", err)
	}

	level := levels.DefaultID
	if len(args) > 0 {
		level = args[0]
	}
	gameID := gameIDFor(level)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", level)
		fmt.Fprintln(os.Stderr, "Run 'platformer levels' to see available levels.")
		os.Exit(1)
	}

	closeLog, err := openEventLog()
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, runtimeConfig())

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		closeLog()
		fail("running game: %v", runErr)
	}
}
