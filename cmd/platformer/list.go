package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list [prefix]",
	Short: "List all registered games",
	Long: `Shows every game registered with the platform, one per level.
An optional prefix narrows the list to matching IDs.

Examples:
  platformer list
  platformer list platformer:1-`,
	Args: cobra.MaximumNArgs(1),
	Run:  runList,
}

func runList(_ *cobra.Command, args []string) {
	if err := applyGameFlags(); err != nil {
		fail("%v", err)
	}

	prefix := ""
	if len(args) > 0 {
		prefix = args[0]
	}

	games := registry.ListPrefix(prefix)
	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'platformer play <level>' to play.")
}
