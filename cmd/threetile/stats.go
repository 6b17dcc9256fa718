package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/threetile/internal/games/threetile/core"
	"github.com/vovakirdan/threetile/internal/storage"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Analyse every level concurrently",
	Long: `Build every level and count the clearing behaviours available at the
start. Levels are analysed in parallel, up to stats.workers at a time.
Recorded session totals are shown when the database is available.`,
	Run: runStats,
}

type levelReport struct {
	id       string
	tiles    int
	layers   int
	unlocked int
	easy     int
	hard     int
	flip     int
	err      error
}

func runStats(cmd *cobra.Command, args []string) {
	loader := levelLoader()
	lvls, err := loader.LoadAll()
	if err != nil {
		exitf("loading levels from %s: %v", loader.Root, err)
	}
	if len(lvls) == 0 {
		fmt.Printf("No levels found in %s.\n", loader.Root)
		return
	}

	reports := make([]levelReport, len(lvls))
	g, ctx := errgroup.WithContext(context.Background())
	if cfg.Stats.Workers > 0 {
		g.SetLimit(cfg.Stats.Workers)
	}
	for i, lvl := range lvls {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r := levelReport{id: lvl.ID, tiles: len(lvl.Tiles), layers: lvl.Layers()}
			rules, _, err := levelRules(lvl, cmd.Flags().Changed("rules"))
			if err == nil {
				var state *core.Level
				if state, err = lvl.Build(rules); err == nil {
					r.unlocked = len(state.Unlocked())
					for _, b := range state.Behaviours() {
						switch b.Kind {
						case core.EasyClear:
							r.easy++
						case core.HardClear:
							r.hard++
						case core.Flip:
							r.flip++
						}
					}
				}
			}
			r.err = err
			reports[i] = r
			logger.Debug("analysed level", "level", lvl.ID, "err", err)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		exitf("%v", err)
	}

	var played map[string]*storage.LevelStats
	if store, err := storage.Open(cfg.Storage.Path); err == nil {
		played, err = store.AllLevelStats()
		if err != nil {
			logger.Warn("reading session stats", "err", err)
		}
		store.Close()
	} else {
		logger.Warn("opening sessions database", "err", err)
	}

	fmt.Println(theme.Title.Render("Level analysis"))
	fmt.Println()
	fmt.Printf("  %-12s  %-5s  %-6s  %-8s  %-4s  %-4s  %-4s  %s\n",
		"Level", "Tiles", "Layers", "Unlocked", "Easy", "Hard", "Flip", "Played")
	fmt.Printf("  %-12s  %-5s  %-6s  %-8s  %-4s  %-4s  %-4s  %s\n",
		"-----", "-----", "------", "--------", "----", "----", "----", "------")
	for _, r := range reports {
		if r.err != nil {
			fmt.Printf("  %-12s  %s\n", r.id, theme.Stuck.Render(r.err.Error()))
			continue
		}
		playedCol := "-"
		if s, ok := played[r.id]; ok && s.Sessions > 0 {
			playedCol = fmt.Sprintf("%d (%d cleared)", s.Sessions, s.Cleared)
		}
		fmt.Printf("  %-12s  %-5d  %-6d  %-8d  %-4d  %-4d  %-4d  %s\n",
			r.id, r.tiles, r.layers, r.unlocked, r.easy, r.hard, r.flip, playedCol)
	}
}
