package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/threetile/internal/games/threetile/core"
)

func TestPackedPosition(t *testing.T) {
	testCases := []struct {
		x, y, z int
		packed  core.Pos
	}{
		{0, 0, 0, 0},
		{1, 0, 0, 0x000001},
		{0, 1, 0, 0x000100},
		{0, 0, 1, 0x010000},
		{255, 255, 255, 0xFFFFFF},
		{3, 7, 2, 0x020703},
	}

	for _, tc := range testCases {
		p := core.P(tc.x, tc.y, tc.z)
		assert.Equal(t, tc.packed, p)
		x, y, z := p.Unpack()
		assert.Equal(t, [3]int{tc.x, tc.y, tc.z}, [3]int{x, y, z})
	}

	assert.Equal(t, core.P(2, 2, 1), core.DefaultVolume.Pack())
	assert.Equal(t, core.DefaultVolume, core.VolumeOf(core.P(2, 2, 1)))
}

func TestVolumeCells(t *testing.T) {
	vol := core.Volume{DX: 2, DY: 2, DZ: 2}
	p := core.P(4, 5, 1)

	assert.Len(t, vol.Cells(p), 8)
	assert.Equal(t, 2, vol.TopZ(p))
	assert.Equal(t, []core.Pos{core.P(4, 5, 2), core.P(4, 6, 2), core.P(5, 5, 2), core.P(5, 6, 2)}, vol.TopCells(p))
	assert.Equal(t, []core.Pos{core.P(4, 5, 0), core.P(4, 6, 0), core.P(5, 5, 0), core.P(5, 6, 0)}, vol.DownCells(p))
	assert.Equal(t, []core.Pos{core.P(4, 5, 3), core.P(4, 6, 3), core.P(5, 5, 3), core.P(5, 6, 3)}, vol.UpCells(p))

	assert.Nil(t, core.DefaultVolume.DownCells(core.P(0, 0, 0)))
	assert.False(t, core.Volume{}.Valid())
	assert.True(t, core.DefaultVolume.Valid())
}

func cells(ps ...[2]int) []core.Pos {
	out := make([]core.Pos, len(ps))
	for i, p := range ps {
		out[i] = core.P(p[0], p[1], 0)
	}
	return out
}

func TestRebuildDirectOnly(t *testing.T) {
	m := core.NewShadowManager(core.PropagationDirectOnly, 4, 4, 3)
	m.AddSelf(2, cells([2]int{0, 0}))
	m.AddSelf(1, cells([2]int{1, 1}))
	m.Rebuild()

	assert.True(t, m.Incoming(2).Empty(), "top layer is never blocked")
	assert.True(t, m.Incoming(1).Equal(m.Self(2)))
	assert.True(t, m.Incoming(0).Equal(m.Self(1)))
	assert.True(t, m.Covered(core.P(1, 1, 0)))
	assert.False(t, m.Covered(core.P(0, 0, 0)))
}

func TestRebuildCascade(t *testing.T) {
	m := core.NewShadowManager(core.PropagationCascade, 4, 4, 3)
	m.AddSelf(2, cells([2]int{0, 0}))
	m.AddSelf(1, cells([2]int{1, 1}))
	m.Rebuild()

	assert.True(t, m.Incoming(2).Empty())
	assert.True(t, m.Incoming(1).Equal(m.Self(2)))
	assert.Equal(t, 2, m.Incoming(0).Count())
	assert.True(t, m.Covered(core.P(0, 0, 0)))
	assert.True(t, m.Covered(core.P(1, 1, 0)))

	m.RemoveSelf(2, cells([2]int{0, 0}))
	m.Rebuild()
	assert.False(t, m.Covered(core.P(0, 0, 0)))
	assert.False(t, m.Covered(core.P(0, 0, 1)))
}

func TestCascadeIsSupersetOfDirect(t *testing.T) {
	const cols, rows, layers = 6, 5, 5
	footprints := [][][2]int{
		{{0, 0}, {1, 0}},
		{{2, 2}},
		{{0, 0}, {5, 4}, {3, 3}},
		{},
		{{4, 1}, {1, 4}},
	}

	direct := core.NewShadowManager(core.PropagationDirectOnly, cols, rows, layers)
	cascade := core.NewShadowManager(core.PropagationCascade, cols, rows, layers)
	for z, fp := range footprints {
		direct.AddSelf(z, cells(fp...))
		cascade.AddSelf(z, cells(fp...))
	}
	direct.Rebuild()
	cascade.Rebuild()

	for z := 0; z < layers; z++ {
		assert.True(t, cascade.Incoming(z).Contains(direct.Incoming(z)), "layer %d", z)
	}
	assert.Greater(t, cascade.Incoming(0).Count(), direct.Incoming(0).Count())
}

func TestShadowManagerRegionQueries(t *testing.T) {
	m := core.NewShadowManager(core.PropagationDirectOnly, 4, 4, 2)
	m.AddSelf(1, cells([2]int{0, 0}, [2]int{1, 0}))
	m.Rebuild()

	region := core.NewShadow(4, 4)
	region.Set(1, 0)
	region.Set(2, 0)
	assert.True(t, m.IntersectsIncoming(0, region))
	assert.Equal(t, 1, m.IncomingIntersectCount(0, region))
	assert.False(t, m.IntersectsIncoming(1, region))

	requirePanicsWith(t, core.ErrOutOfRange, func() { m.Incoming(2) })
	requirePanicsWith(t, core.ErrOutOfRange, func() { m.AddSelf(-1, nil) })
}

func TestParsePropagation(t *testing.T) {
	p, err := core.ParsePropagation("cascade")
	require.NoError(t, err)
	assert.Equal(t, core.PropagationCascade, p)

	p, err = core.ParsePropagation("")
	require.NoError(t, err)
	assert.Equal(t, core.PropagationDirectOnly, p)
	assert.Equal(t, "direct", p.String())

	_, err = core.ParsePropagation("sideways")
	assert.ErrorIs(t, err, core.ErrInvalidRules)
}
