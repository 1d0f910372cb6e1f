package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show high scores",
	Long: `Without a level, summarizes every level that has scores on record.
With a level, shows its top 10 scores and most recent runs.

Examples:
  platformer scores
  platformer scores 1-1
  platformer scores 1-1 --all
  platformer scores 1-1 --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

var (
	flagAllScores   bool
	flagClearScores bool
)

func init() {
	scoresCmd.Flags().BoolVar(&flagAllScores, "all", false, "List every score of the level instead of the top 10")
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete the level's scores (runs are kept)")
}

func runScores(_ *cobra.Command, args []string) {
	if err := applyGameFlags(); err != nil {
		fail("%v", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	if len(args) == 0 {
		if flagClearScores {
			store.Close()
			fail("--clear needs a level")
		}
		if err := printSummary(store); err != nil {
			store.Close()
			fail("%v", err)
		}
		return
	}

	if flagClearScores {
		gameID := gameIDFor(args[0])
		if err := store.ClearScores(gameID); err != nil {
			store.Close()
			fail("%v", err)
		}
		fmt.Printf("Cleared scores for %s\n", gameID)
		return
	}

	if err := printLevelScores(store, args[0]); err != nil {
		store.Close()
		fail("%v", err)
	}
}

func printSummary(store *storage.Store) error {
	ids, err := store.GamesWithScores()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'platformer play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-20s  %-6s  %-8s  %-8s  %s\n", "Game", "Plays", "Best", "Average", "Last played")
	fmt.Printf("  %-20s  %-6s  %-8s  %-8s  %s\n", "----", "-----", "----", "-------", "-----------")
	for _, id := range ids {
		stats, err := store.GetGameStats(id)
		if err != nil {
			return err
		}
		fmt.Printf("  %-20s  %-6d  %-8d  %-8.0f  %s\n",
			id, stats.GamesCount, stats.HighScore, stats.AvgScore, stats.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func printLevelScores(store *storage.Store, level string) error {
	gameID := gameIDFor(level)

	title := gameID
	if game, err := registry.Create(gameID); err == nil {
		title = game.Title()
	}

	var scores []storage.ScoreEntry
	var err error
	if flagAllScores {
		scores, err = store.AllScores(gameID)
	} else {
		scores, err = store.TopScores(gameID, 10)
	}
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'platformer play %s' to set the first high score!\n", level)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	runs, err := store.RecentRuns(strings.TrimPrefix(gameID, platformer.IDPrefix), 5)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}
	if len(runs) > 0 {
		fmt.Println()
		fmt.Println("Recent runs:")
		for _, r := range runs {
			result := "lost"
			if r.Cleared {
				result = "clear"
			}
			fmt.Printf("  %s  %-6d  %d lives  %5d ticks  %s\n",
				r.CreatedAt.Format("2006-01-02 15:04"), r.Score, r.LivesLeft, r.Ticks, result)
		}
	}

	fmt.Println()
	fmt.Printf("Best: %d\n", scores[0].Score)
	return nil
}
