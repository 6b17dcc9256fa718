package core_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/threetile/internal/games/threetile/core"
)

type tileSpec struct {
	x, y, z int
	color   int
}

func at(x, y, z, color int) tileSpec {
	return tileSpec{x: x, y: y, z: z, color: color}
}

func buildLevel(t *testing.T, rules core.Rules, specs ...tileSpec) *core.Level {
	t.Helper()
	positions := make([]core.Pos, len(specs))
	colors := make([]int, len(specs))
	for i, s := range specs {
		positions[i] = core.P(s.x, s.y, s.z)
		colors[i] = s.color
	}
	lvl, err := core.NewLevel(positions, colors, rules)
	require.NoError(t, err)
	return lvl
}

func tileOf(t *testing.T, lvl *core.Level, index int) *core.Tile {
	t.Helper()
	tile, ok := lvl.Tile(index)
	require.True(t, ok, "tile %d not found", index)
	return tile
}

func indices(tiles []*core.Tile) []int {
	out := make([]int, len(tiles))
	for i, tile := range tiles {
		out[i] = tile.Index
	}
	return out
}

// requirePanicsWith runs fn and checks it panics with an error wrapping target.
func requirePanicsWith(t *testing.T, target error, fn func()) {
	t.Helper()
	var recovered any
	func() {
		defer func() { recovered = recover() }()
		fn()
	}()
	require.NotNil(t, recovered, "expected panic wrapping %v", target)
	err, ok := recovered.(error)
	require.True(t, ok, "panic value %v is not an error", recovered)
	require.True(t, errors.Is(err, target), fmt.Sprintf("panic %v does not wrap %v", err, target))
}
