package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/threetile/internal/storage"
)

var (
	sessionsLimit int
	sessionsClear bool
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions <level>",
	Short: "Show recorded sessions for a level",
	Long: `Display the most recent sessions saved for a level, with the best
cleared run and aggregated statistics.

Examples:
  threetile sessions tower
  threetile sessions tower --limit 20
  threetile sessions tower --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runSessions,
}

func init() {
	sessionsCmd.Flags().IntVar(&sessionsLimit, "limit", 10, "Number of sessions to show")
	sessionsCmd.Flags().BoolVar(&sessionsClear, "clear", false, "Delete recorded sessions for the level")
}

func runSessions(cmd *cobra.Command, args []string) {
	levelID := args[0]

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		exitf("opening sessions database: %v", err)
	}
	defer store.Close()

	if sessionsClear {
		if err := store.ClearSessions(levelID); err != nil {
			exitf("clearing sessions: %v", err)
		}
		fmt.Printf("Sessions for %s cleared.\n", levelID)
		return
	}

	sessions, err := store.RecentSessions(levelID, sessionsLimit)
	if err != nil {
		exitf("retrieving sessions: %v", err)
	}

	fmt.Println(theme.Title.Render(fmt.Sprintf("Sessions - %s", levelID)))
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'threetile play %s --moves ... --save' to record one.\n", levelID)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-11s  %-5s  %-9s  %-8s  %s\n", "#", "Session", "Outcome", "Moves", "Completed", "Rules", "Date")
	fmt.Printf("  %-4s  %-8s  %-11s  %-5s  %-9s  %-8s  %s\n", "-", "-------", "-------", "-----", "---------", "-----", "----")
	for _, s := range sessions {
		fmt.Printf("  %-4d  %-8s  %-11s  %-5d  %-9d  %-8s  %s\n",
			s.ID, shortID(s.SessionID), s.Outcome, s.Moves, s.Completed,
			s.Rules, s.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	best, err := store.BestSession(levelID)
	if err == nil && best != nil {
		fmt.Printf("Best: %d moves (#%d)\n", best.Moves, best.ID)
	}
	stats, err := store.LevelStats(levelID)
	if err == nil {
		fmt.Printf("Played %d, cleared %d, average completed %.1f\n",
			stats.Sessions, stats.Cleared, stats.AvgCompleted)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
