package levels_test

import (
	"errors"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/threetile/internal/games/threetile/core"
	"github.com/vovakirdan/threetile/internal/games/threetile/levels"
	"github.com/vovakirdan/threetile/internal/games/threetile/levels/formats"
)

// getTestdataPath returns path to testdata/levels.
func getTestdataPath() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)
	return filepath.Join(dir, "..", "testdata", "levels")
}

func TestLoaderLoadAll(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath())

	lvls, err := loader.LoadAll()
	require.NoError(t, err)

	ids := make([]string, len(lvls))
	for i, l := range lvls {
		ids[i] = l.ID
	}
	assert.Equal(t, []string{"intro", "tower", "vita-pair"}, ids, "sorted, nested files found, broken file skipped")
}

func TestLoaderLoadIntro(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath())

	lvl, err := loader.LoadByID("intro")
	require.NoError(t, err)

	assert.Equal(t, "Intro", lvl.Name)
	assert.Empty(t, lvl.Preset)
	assert.Len(t, lvl.Tiles, 3)
	assert.Equal(t, []int{5}, lvl.Colors())
	assert.Equal(t, 1, lvl.Layers())
	assert.Equal(t, "threetile", lvl.Metadata["author"])
	assert.Equal(t, "intro.yaml", filepath.Base(lvl.FilePath))

	positions, colors := lvl.Layout()
	assert.Equal(t, []core.Pos{core.P(0, 0, 0), core.P(2, 0, 0), core.P(4, 0, 0)}, positions)
	assert.Equal(t, []int{5, 5, 5}, colors)
}

func TestLoaderLoadByIDMissing(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath())

	_, err := loader.LoadByID("nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, levels.ErrLevelNotFound))
}

func TestLoaderListIDs(t *testing.T) {
	ids, err := levels.NewLoader(getTestdataPath()).ListIDs()
	require.NoError(t, err)
	assert.Len(t, ids, 3)
}

func TestLoaderMissingRoot(t *testing.T) {
	_, err := levels.NewLoader(filepath.Join(t.TempDir(), "absent")).LoadAll()
	assert.Error(t, err)
}

func TestLevelRulesOverrides(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath())
	tower, err := loader.LoadByID("tower")
	require.NoError(t, err)

	assert.Equal(t, "classic", tower.Preset)
	assert.Equal(t, 3, tower.Layers())

	rules, err := tower.Rules(core.ClassicRules())
	require.NoError(t, err)
	assert.Equal(t, core.PropagationCascade, rules.Propagation)
	assert.Equal(t, 7, rules.Capacity)

	bad := levels.Level{ID: "bad", Match: 9}
	_, err = bad.Rules(core.ClassicRules())
	assert.True(t, errors.Is(err, core.ErrInvalidRules))
}

func TestLevelBuild(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath())
	tower, err := loader.LoadByID("tower")
	require.NoError(t, err)

	rules, err := tower.Rules(core.ClassicRules())
	require.NoError(t, err)
	lvl, err := tower.Build(rules)
	require.NoError(t, err)

	assert.Equal(t, 6, lvl.TileCount())
	assert.Equal(t, []int{1, 2}, lvl.Colors())
	cols, rows, layers := lvl.Board().Dims()
	assert.Equal(t, [3]int{10, 2, 3}, [3]int{cols, rows, layers})

	clash := levels.Level{ID: "clash", Tiles: []formats.Tile{tower.Tiles[0], tower.Tiles[0]}}
	_, err = clash.Build(rules)
	assert.True(t, errors.Is(err, core.ErrCellOccupied))
}
