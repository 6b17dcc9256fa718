package main

import (
	"github.com/spf13/cobra"
)

var (
	movesScript   string
	movesCapacity int
)

var movesCmd = &cobra.Command{
	Use:   "moves <level>",
	Short: "List the legal clearing behaviours",
	Long: `List every easy clear, hard clear and flip reachable from the current
position. Entries are numbered so they can be played as bN tokens.

--capacity overrides the number of free staging slots the search assumes.

Examples:
  threetile moves tower
  threetile moves tower --moves "b0"
  threetile moves tower --capacity 2`,
	Args: cobra.ExactArgs(1),
	Run:  runMoves,
}

func init() {
	movesCmd.Flags().StringVar(&movesScript, "moves", "", "Move tokens to play before listing")
	movesCmd.Flags().IntVar(&movesCapacity, "capacity", 0, "Free staging slots to assume (0 = actual)")
}

func runMoves(cmd *cobra.Command, args []string) {
	g := openGame(args[0], cmd.Flags().Changed("rules"))
	if err := playScript(g, movesScript); err != nil {
		exitf("%v", err)
	}
	if cmd.Flags().Changed("capacity") {
		if movesCapacity < 0 {
			exitf("capacity must not be negative")
		}
		printBehaviours(g.Level().BehavioursWithCapacity(movesCapacity))
		return
	}
	printBehaviours(g.Behaviours())
}
