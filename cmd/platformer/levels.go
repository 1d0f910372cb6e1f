package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List available levels",
	Long: `Shows the built-in levels plus any level files found under --levels-dir.
A file level with the same ID as a built-in replaces it.

Examples:
  platformer levels
  platformer levels --levels-dir ./levels`,
	Run: runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	available := levels.BuiltinLevels()
	var skipped []levels.SkippedFile
	if flagLevelsDir != "" {
		loader := levels.NewLoader(flagLevelsDir)
		custom, err := loader.LoadAll()
		if err != nil {
			fail("%v", err)
		}
		available = levels.Merge(available, custom)
		skipped = loader.Skipped
	}

	maxIDLen := 2
	for _, lvl := range available {
		maxIDLen = max(maxIDLen, len(lvl.ID))
	}

	fmt.Printf("  %-*s  %-7s  %-16s  %s\n", maxIDLen, "ID", "Size", "Name", "Source")
	fmt.Printf("  %-*s  %-7s  %-16s  %s\n", maxIDLen, "--", "----", "----", "------")
	for _, lvl := range available {
		source := lvl.FilePath
		if lvl.Builtin() {
			source = "built-in"
		}
		size := fmt.Sprintf("%dx%d", lvl.Layout.Cols, lvl.Layout.Rows)
		fmt.Printf("  %-*s  %-7s  %-16s  %s\n", maxIDLen, lvl.ID, size, lvl.Name, source)
	}

	if len(skipped) > 0 {
		fmt.Println()
		fmt.Printf("Skipped %d file(s):\n", len(skipped))
		for _, sk := range skipped {
			fmt.Printf("  %v\n", sk.Err)
		}
	}
}
