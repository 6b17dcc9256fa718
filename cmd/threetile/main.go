// threetile is a command-line driver for the ThreeTile stacking puzzle.
//
// Usage:
//
//	threetile list                    - List levels and rule presets
//	threetile show <level>            - Print a level's layers and zones
//	threetile moves <level>           - List the legal clearing behaviours
//	threetile play <level> --moves .. - Run a move script and report the outcome
//	threetile shell <level>           - Play interactively
//	threetile stats                   - Analyse every level concurrently
//	threetile sessions <level>        - Show recorded sessions
//
// Global flags:
//
//	--config <path>     - Config file (default search: ~/.threetile, ./configs)
//	--levels <dir>      - Level directory
//	--db <path>         - Session database path
//	--rules <preset>    - Rule preset: classic, vita
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/threetile/internal/config"
	"github.com/vovakirdan/threetile/internal/registry"

	// Import the game to register rule presets
	_ "github.com/vovakirdan/threetile/internal/games/threetile"
)

var (
	// Global flags
	flagConfig   string
	flagLevels   string
	flagDBPath   string
	flagRules    string
	flagLogLevel string

	// Resolved in PersistentPreRunE
	cfg    config.Config
	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "threetile",
	Short: "ThreeTile - a 3D tile-matching puzzle engine",
	Long: `ThreeTile drives the tile-matching rule engine from the terminal.
Tiles sit on a layered board; selecting an unlocked tile moves it into
the staging bar, and matching tiles of one color there completes them.

Available commands:
  list      - Show levels and rule presets
  show      - Print a level's layers and zones
  moves     - List the legal clearing behaviours
  play      - Run a move script
  shell     - Interactive play
  stats     - Per-level analysis
  sessions  - Recorded sessions

Examples:
  threetile list
  threetile show tower --moves "2 4"
  threetile moves tower
  threetile play tower --moves "b0 b0" --save
  threetile shell tower --rules vita`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("levels") {
			loaded.Levels.Dir = flagLevels
		}
		if cmd.Flags().Changed("db") {
			loaded.Storage.Path = flagDBPath
		}
		if cmd.Flags().Changed("rules") {
			if !registry.Exists(flagRules) {
				return fmt.Errorf("unknown rule preset %q, run 'threetile list' to see presets", flagRules)
			}
			loaded.Rules.Preset = flagRules
		}
		if cmd.Flags().Changed("log-level") {
			loaded.Log.Level = flagLogLevel
		}
		cfg = loaded
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "threetile",
			Level:           cfg.LogLevel(),
		})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "levels", "Directory of level files")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.threetile/sessions.db", "Path to sessions database")
	rootCmd.PersistentFlags().StringVar(&flagRules, "rules", "classic", "Rule preset (overrides the level file)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(movesCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(sessionsCmd)
}
