// platformer is a terminal platformer: run, jump and stomp through
// tile levels in your terminal or over SSH.
//
// Usage:
//
//	platformer list              - List registered games
//	platformer levels            - List available levels
//	platformer play [level]      - Play a level
//	platformer menu              - Pick levels interactively
//	platformer serve             - Start SSH server for remote play
//	platformer scores [level]    - Show high scores
//	platformer sim               - Run a level headless from an input script
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--db <path>          - Set database path (default: ~/.arcade/platformer.db)
//	--log-file <path>    - Write gameplay events to a file
//	--levels-dir <path>  - Load extra levels from a directory
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
)

var (
	// Global flags
	flagFPS       int
	flagDBPath    string
	flagLogFile   string
	flagLevelsDir string

	// Game flags shared by play, menu and sim
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "platformer",
	Short: "Terminal platformer - run, jump and stomp in your terminal",
	Long: `A tile-based platformer for the terminal.

Available commands:
  list     - Show all registered games
  levels   - Show available levels
  play     - Play a level directly
  menu     - Interactive level picker
  serve    - Start SSH server for remote play
  scores   - View high scores and recent runs
  sim      - Run a level headless from an input script

Examples:
  platformer play
  platformer play 1-2 --difficulty hard
  platformer menu --levels-dir ./levels
  platformer serve --ssh :2222
  platformer sim --level 1-1 --script "R*60,RJ*20,R*120"`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/platformer.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write gameplay events to this file")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels-dir", "", "Directory with extra level files (.yaml, .txt, .tmx)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

// addGameFlags registers the flags that tune the simulation.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom platformer config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// fail prints an error and exits with status 1.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// applyGameFlags pushes --config, --difficulty and --levels-dir into the
// platformer package before any game is created.
func applyGameFlags() error {
	if flagDifficulty != "" {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			return err
		}
	}
	platformer.SetConfigPath(flagConfig)
	platformer.SetDifficultyPreset(flagDifficulty)

	if flagLevelsDir != "" {
		if _, err := platformer.RegisterLevels(flagLevelsDir); err != nil {
			return fmt.Errorf("loading levels: %w", err)
		}
	}
	return nil
}

// openEventLog routes gameplay events to --log-file. The returned func
// closes the file.
func openEventLog() (func(), error) {
	if flagLogFile == "" {
		return func() {}, nil
	}

	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	platformer.SetEventLog(log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "platformer",
	}))

	return func() {
		platformer.SetEventLog(nil)
		f.Close()
	}, nil
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	return cfg
}
