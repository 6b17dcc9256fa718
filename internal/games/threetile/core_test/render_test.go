package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/threetile/internal/games/threetile/core"
)

func TestRenderASCIISingleTile(t *testing.T) {
	lvl := buildLevel(t, core.ClassicRules(), at(0, 0, 0, 1))

	want := "Tiles: 1 | Unlocked: 1 | Visible: 1 | Board: 2x2x1\n" +
		"Staging 0/7: (empty)\n" +
		"Completed: 0\n" +
		"Layer Z=0:\n" +
		"##\n" +
		"##\n"
	assert.Equal(t, want, core.RenderASCII(lvl))
}

func TestRenderASCIIStack(t *testing.T) {
	lvl := buildLevel(t, core.ClassicRules(), at(0, 0, 0, 1), at(1, 0, 1, 10))

	want := "Tiles: 2 | Unlocked: 1 | Visible: 2 | Board: 3x2x2\n" +
		"Staging 0/7: (empty)\n" +
		"Completed: 0\n" +
		"Layer Z=0:\n##.\n##.\n" +
		"Layer Z=1:\n.##\n.##\n"
	assert.Equal(t, want, core.RenderASCII(lvl))

	require.NoError(t, lvl.DoMove(core.Select(1)))
	want = "Tiles: 1 | Unlocked: 1 | Visible: 1 | Board: 3x2x2\n" +
		"Staging 1/7: 1:10\n" +
		"Completed: 0\n" +
		"Layer Z=0:\n##.\n##.\n" +
		"Layer Z=1:\n...\n...\n"
	assert.Equal(t, want, core.RenderASCII(lvl))
}

func TestRenderColors(t *testing.T) {
	lvl := buildLevel(t, core.ClassicRules(),
		at(0, 0, 0, 1), at(1, 0, 1, 10), at(3, 0, 0, core.ColorUnspecified))

	want := "Layer Z=0:\n**.??\n**.??\n" +
		"Layer Z=1:\n.aa..\n.aa..\n"
	assert.Equal(t, want, core.RenderColors(lvl))

	require.NoError(t, lvl.DoMove(core.Select(1)))
	want = "Layer Z=0:\n11.??\n11.??\n" +
		"Layer Z=1:\n.....\n.....\n"
	assert.Equal(t, want, core.RenderColors(lvl))
}

func TestSnapshotTracksZones(t *testing.T) {
	lvl := buildLevel(t, core.ClassicRules(), flatThree()...)
	before := lvl.Snapshot()
	require.Len(t, before.Tiles, 3)
	for _, ts := range before.Tiles {
		assert.Equal(t, core.ZoneBoard, ts.Zone)
	}

	require.NoError(t, lvl.DoMove(core.Select(2)))
	require.NoError(t, lvl.DoMove(core.Select(0)))
	mid := lvl.Snapshot()
	assert.Equal(t, []int{2, 0}, mid.Staging.Tiles)
	assert.Equal(t, map[int]int{5: 2}, mid.Staging.Counts)
	assert.Equal(t, core.ZoneStaging, mid.Tiles[2].Zone)
	assert.Equal(t, 2, mid.Moves)

	require.NoError(t, lvl.DoMove(core.Select(1)))
	after := lvl.Snapshot()
	assert.Equal(t, 3, after.Archive.Total)
	assert.Equal(t, core.ZoneCompleted, after.Tiles[1].Zone)
	assert.Empty(t, after.Staging.Tiles)

	for range 3 {
		_, err := lvl.UndoMove()
		require.NoError(t, err)
	}
	assert.Equal(t, before, lvl.Snapshot())
}

func TestTintCanDoLeavesLevelUntouched(t *testing.T) {
	lvl := buildLevel(t, core.ClassicRules(), at(0, 0, 0, 1), at(0, 0, 1, 1), at(4, 0, 0, 1))
	before := lvl.Snapshot()

	assert.True(t, core.Tint(1, 0).CanDo(lvl), "selecting the cover first reveals the tile below")
	assert.False(t, core.Tint(0, 1).CanDo(lvl))
	assert.False(t, core.Tint().CanDo(lvl))
	assert.Equal(t, before, lvl.Snapshot())
}
