package main

import (
	"github.com/spf13/cobra"
)

var showMoves string

var showCmd = &cobra.Command{
	Use:   "show <level>",
	Short: "Print a level's layers and zones",
	Long: `Print every layer of a level together with the staging bar and the
session status. With --moves the script is played first.

Examples:
  threetile show tower
  threetile show tower --moves "2 4"`,
	Args: cobra.ExactArgs(1),
	Run:  runShow,
}

func init() {
	showCmd.Flags().StringVar(&showMoves, "moves", "", "Move tokens to play before printing")
}

func runShow(cmd *cobra.Command, args []string) {
	g := openGame(args[0], cmd.Flags().Changed("rules"))
	if err := playScript(g, showMoves); err != nil {
		exitf("%v", err)
	}
	printGame(g)
}
