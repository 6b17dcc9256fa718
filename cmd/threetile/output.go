package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/vovakirdan/threetile/internal/games/threetile"
	"github.com/vovakirdan/threetile/internal/games/threetile/core"
)

// printLayers draws every layer in a box, side by side when the terminal
// is wide enough.
func printLayers(l *core.Level) {
	_, _, layers := l.Board().Dims()
	boxes := make([]string, layers)
	for z := 0; z < layers; z++ {
		title := theme.Label.Render(fmt.Sprintf("z=%d", z))
		grid := strings.TrimRight(core.RenderColorLayer(l, z), "\n")
		boxes[z] = theme.Box.Render(title + "\n" + grid)
	}

	parts := make([]string, 0, 2*len(boxes))
	for i, b := range boxes {
		if i > 0 {
			parts = append(parts, " ")
		}
		parts = append(parts, b)
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if lipgloss.Width(row) <= termWidth() {
		fmt.Println(row)
		return
	}
	for _, b := range boxes {
		fmt.Println(b)
	}
}

func printStaging(l *core.Level) {
	snap := l.Staging().Snapshot()
	slots := make([]string, snap.Capacity)
	for i := range slots {
		slots[i] = theme.Dim.Render("__")
	}
	for i, idx := range snap.Tiles {
		t, _ := l.Tile(idx)
		slots[i] = fmt.Sprintf("%d:%d", idx, t.Color)
	}
	fmt.Printf("%s [%s]  %s %d\n",
		theme.Label.Render("Staging"), strings.Join(slots, " "),
		theme.Label.Render("Completed"), l.Archive().Total())
}

func printState(g *threetile.Game) {
	st := g.State()
	fmt.Printf("%s %s  %s %d  %s %d  %s %d\n",
		theme.Label.Render("Outcome"), theme.outcome(st.Outcome),
		theme.Label.Render("Moves"), st.Moves,
		theme.Label.Render("Score"), st.Score,
		theme.Label.Render("Remaining"), st.Remaining)
}

func printBehaviours(bs []core.Behaviour) {
	if len(bs) == 0 {
		fmt.Println("No legal behaviours.")
		return
	}
	counts := lo.CountValuesBy(bs, func(b core.Behaviour) core.BehaviourKind { return b.Kind })
	fmt.Printf("%s (%d easy, %d hard, %d flip)\n", theme.Title.Render("Behaviours"),
		counts[core.EasyClear], counts[core.HardClear], counts[core.Flip])
	for i, b := range bs {
		tiles := strings.Join(lo.Map(b.Tiles, func(t int, _ int) string { return fmt.Sprint(t) }), " ")
		fmt.Printf("  b%-3d %s color=%-2d tiles=[%s]\n", i,
			theme.kind(b.Kind).Render(fmt.Sprintf("%-10s", b.Kind)), b.Color, tiles)
	}
}

func printGame(g *threetile.Game) {
	l := g.Level()
	fmt.Println(theme.Title.Render(fmt.Sprintf("Level %s", g.LevelID())))
	fmt.Print(core.RenderASCII(l))
	fmt.Println()
	printLayers(l)
	printStaging(l)
	printState(g)
}
