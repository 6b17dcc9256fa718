package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/threetile/internal/games/threetile"
)

var shellCmd = &cobra.Command{
	Use:   "shell <level>",
	Short: "Play a level interactively",
	Long: `Start an interactive session on a level. Type 'help' for commands.

Examples:
  threetile shell tower
  threetile shell vita-pair --rules vita`,
	Args: cobra.ExactArgs(1),
	Run:  runShell,
}

const shellHelp = `Commands:
  select <n>...   select tiles by index
  apply <n>       apply behaviour n from 'moves'
  play <tokens>   run move tokens (N, bN, tI,J,K)
  moves           list legal behaviours
  undo [n]        take back the last n moves
  show            print the board
  status          print the session status
  journal         print the moves played so far
  save            record the session
  quit            leave the shell`

var errQuit = errors.New("quit")

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	dir := filepath.Join(home, ".threetile")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ""
	}
	return filepath.Join(dir, "history")
}

func runShell(cmd *cobra.Command, args []string) {
	g := openGame(args[0], cmd.Flags().Changed("rules"))

	completer := readline.NewPrefixCompleter(
		readline.PcItem("select"),
		readline.PcItem("apply"),
		readline.PcItem("play"),
		readline.PcItem("moves"),
		readline.PcItem("undo"),
		readline.PcItem("show"),
		readline.PcItem("status"),
		readline.PcItem("journal"),
		readline.PcItem("save"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
	l, err := readline.NewEx(&readline.Config{
		Prompt:          g.LevelID() + "> ",
		HistoryFile:     historyFile(),
		AutoComplete:    completer,
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		exitf("starting shell: %v", err)
	}
	defer l.Close()

	printGame(g)
	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}

		words, err := shellquote.Split(line)
		if err != nil {
			fmt.Fprintln(l.Stderr(), err)
			continue
		}
		if len(words) == 0 {
			continue
		}
		if err := shellCommand(g, words[0], words[1:]); err != nil {
			if errors.Is(err, errQuit) {
				break
			}
			fmt.Fprintf(l.Stderr(), "Error: %v\n", err)
		}
	}
	logger.Debug("leaving shell", "level", g.LevelID(), "moves", g.State().Moves)
}

func shellCommand(g *threetile.Game, name string, args []string) error {
	switch name {
	case "select", "s":
		if len(args) == 0 {
			return errors.New("select needs a tile index")
		}
		for _, a := range args {
			n, err := strconv.Atoi(a)
			if err != nil {
				return fmt.Errorf("bad tile index %q", a)
			}
			if err := g.Select(n); err != nil {
				return err
			}
		}
		afterMove(g)
	case "apply", "a":
		if len(args) != 1 {
			return errors.New("apply needs one behaviour number")
		}
		n, err := strconv.Atoi(strings.TrimPrefix(args[0], "b"))
		if err != nil {
			return fmt.Errorf("bad behaviour number %q", args[0])
		}
		if err := g.ApplyNth(n); err != nil {
			return err
		}
		afterMove(g)
	case "play", "p":
		for _, tok := range args {
			if err := g.Play(tok); err != nil {
				return fmt.Errorf("%s: %w", tok, err)
			}
		}
		afterMove(g)
	case "moves", "m":
		printBehaviours(g.Behaviours())
	case "undo", "u":
		n := 1
		if len(args) > 0 {
			v, err := strconv.Atoi(args[0])
			if err != nil || v < 1 {
				return fmt.Errorf("bad undo count %q", args[0])
			}
			n = v
		}
		for i := 0; i < n; i++ {
			if err := g.Undo(); err != nil {
				return err
			}
		}
		printGame(g)
	case "show":
		printGame(g)
	case "status":
		printStaging(g.Level())
		printState(g)
	case "journal":
		fmt.Println(strings.Join(g.Journal(), " "))
	case "save":
		id, err := saveGame(g)
		if err != nil {
			return err
		}
		fmt.Printf("Session saved (#%d).\n", id)
	case "help", "?":
		fmt.Println(shellHelp)
	case "quit", "exit", "q":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q, type 'help'", name)
	}
	return nil
}

func afterMove(g *threetile.Game) {
	printGame(g)
	if st := g.State(); st.GameOver {
		if st.Won {
			fmt.Println(theme.Cleared.Render("Level cleared!"))
		} else {
			fmt.Println(theme.Stuck.Render("No moves left."))
		}
		fmt.Println("Type 'undo' to step back, 'save' to record or 'quit' to leave.")
	}
}
