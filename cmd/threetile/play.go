package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	playMoves string
	playUndo  int
	playSave  bool
)

var playCmd = &cobra.Command{
	Use:   "play <level>",
	Short: "Run a move script and report the outcome",
	Long: `Play a whitespace-separated list of move tokens on a level:

  N        select tile N into the staging bar
  bN       apply behaviour N from 'threetile moves'
  tI,J,K   tint: select the listed tiles as one move

--undo takes back the last moves after the script, --save records the
session in the database.

Examples:
  threetile play tower --moves "b0 b0"
  threetile play tower --moves "2 4 5" --undo 1
  threetile play intro --moves "t0,1,2" --save`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&playMoves, "moves", "", "Move tokens to play")
	playCmd.Flags().IntVar(&playUndo, "undo", 0, "Number of moves to undo after the script")
	playCmd.Flags().BoolVar(&playSave, "save", false, "Record the session")
}

func runPlay(cmd *cobra.Command, args []string) {
	g := openGame(args[0], cmd.Flags().Changed("rules"))
	if err := playScript(g, playMoves); err != nil {
		exitf("%v", err)
	}
	for i := 0; i < playUndo; i++ {
		if err := g.Undo(); err != nil {
			exitf("undo %d: %v", i+1, err)
		}
	}

	printGame(g)
	fmt.Println()
	fmt.Printf("%s %s\n", theme.Label.Render("Journal"), strings.Join(g.Journal(), " "))

	if st := g.State(); !st.GameOver {
		fmt.Printf("%d legal behaviours remain.\n", len(g.Behaviours()))
	}

	if !playSave {
		return
	}
	id, err := saveGame(g)
	if err != nil {
		exitf("saving session: %v", err)
	}
	fmt.Printf("Session saved (#%d).\n", id)
}
