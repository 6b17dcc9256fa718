package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/threetile/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List levels and rule presets",
	Long:  `Shows every level found in the level directory and every registered rule preset.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	loader := levelLoader()
	lvls, err := loader.LoadAll()
	if err != nil {
		exitf("loading levels from %s: %v", loader.Root, err)
	}

	if len(lvls) == 0 {
		fmt.Printf("No levels found in %s.\n", loader.Root)
	} else {
		fmt.Println("Available levels:")
		fmt.Println()

		// Calculate column widths
		maxIDLen := 2 // "ID" header
		for _, l := range lvls {
			if len(l.ID) > maxIDLen {
				maxIDLen = len(l.ID)
			}
		}

		fmt.Printf("  %-*s  %-5s  %-6s  %-6s  %s\n", maxIDLen, "ID", "Tiles", "Colors", "Layers", "Name")
		fmt.Printf("  %-*s  %-5s  %-6s  %-6s  %s\n", maxIDLen, "--", "-----", "------", "------", "----")
		for _, l := range lvls {
			fmt.Printf("  %-*s  %-5d  %-6d  %-6d  %s\n", maxIDLen, l.ID,
				len(l.Tiles), len(l.Colors()), l.Layers(), l.Name)
		}
	}

	fmt.Println()
	fmt.Println("Rule presets:")
	fmt.Println()
	fmt.Printf("  %-8s  %-8s  %-5s  %s\n", "ID", "Capacity", "Match", "Title")
	fmt.Printf("  %-8s  %-8s  %-5s  %s\n", "--", "--------", "-----", "-----")
	for _, p := range registry.List() {
		fmt.Printf("  %-8s  %-8d  %-5d  %s\n", p.ID, p.Capacity, p.MatchCount, p.Title)
	}

	fmt.Println()
	fmt.Println("Run 'threetile shell <id>' to play a level.")
}
