package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/threetile/internal/games/threetile/core"
)

func looseTiles(colors ...int) []*core.Tile {
	out := make([]*core.Tile, len(colors))
	for i, c := range colors {
		out[i] = core.NewTile(i, c, core.P(2*i, 0, 0), core.DefaultVolume)
	}
	return out
}

func TestNewStagingValidation(t *testing.T) {
	testCases := []struct {
		capacity, match int
		ok              bool
	}{
		{7, 3, true},
		{4, 2, true},
		{3, 3, true},
		{0, 1, false},
		{3, 0, false},
		{2, 3, false},
		{-1, -1, false},
	}

	for _, tc := range testCases {
		_, err := core.NewStaging(tc.capacity, tc.match, core.ResolveAll)
		if tc.ok {
			assert.NoError(t, err, "capacity %d match %d", tc.capacity, tc.match)
		} else {
			assert.ErrorIs(t, err, core.ErrInvalidRules, "capacity %d match %d", tc.capacity, tc.match)
		}
	}
}

func TestStagingMatchResolvesExactGroup(t *testing.T) {
	s, err := core.NewStaging(7, 3, core.ResolveAll)
	require.NoError(t, err)
	tiles := looseTiles(5, 2, 5, 5)

	for _, tile := range tiles[:3] {
		require.True(t, s.TryAdd(tile))
	}
	_, ok := s.TryResolve(5)
	assert.False(t, ok, "two of color 5 is not a match")

	require.True(t, s.TryAdd(tiles[3]))
	group, ok := s.TryResolve(5)
	require.True(t, ok)
	assert.Equal(t, []int{0, 2, 3}, indices(group))

	s.Remove(group)
	assert.Equal(t, 1, s.Used())
	assert.Equal(t, 0, s.Count(5))
	assert.Equal(t, map[int]int{2: 1}, s.Counts())

	s.Restore(group)
	assert.Equal(t, 3, s.Count(5))
	assert.Equal(t, core.ZoneStaging, group[0].Zone())
}

func TestStagingResolvePolicies(t *testing.T) {
	testCases := []struct {
		policy core.ResolvePolicy
		want   []int
	}{
		{core.ResolveAll, []int{0, 1, 2, 3}},
		{core.ResolveExact, []int{0, 1, 2}},
	}

	for _, tc := range testCases {
		t.Run(tc.policy.String(), func(t *testing.T) {
			s, err := core.NewStaging(7, 3, tc.policy)
			require.NoError(t, err)
			for _, tile := range looseTiles(5, 5, 5, 5) {
				require.True(t, s.TryAdd(tile))
			}

			group, ok := s.TryResolve(5)
			require.True(t, ok)
			assert.Equal(t, tc.want, indices(group))

			s.Remove(group)
			assert.Equal(t, 4-len(tc.want), s.Count(5))
		})
	}
}

func TestStagingCapacity(t *testing.T) {
	s, err := core.NewStaging(2, 2, core.ResolveAll)
	require.NoError(t, err)
	tiles := looseTiles(1, 2, 3)

	slot, err := s.Stage(tiles[0])
	require.NoError(t, err)
	assert.Equal(t, 0, slot)
	assert.True(t, s.TryAdd(tiles[1]))
	assert.True(t, s.Full())
	assert.Equal(t, 0, s.Available())

	assert.False(t, s.TryAdd(tiles[2]))
	_, err = s.Stage(tiles[2])
	assert.ErrorIs(t, err, core.ErrStagingFull)

	requirePanicsWith(t, core.ErrOutOfRange, func() { s.Restore(tiles[2:]) })
}

func TestStagingUnstage(t *testing.T) {
	s, err := core.NewStaging(7, 3, core.ResolveAll)
	require.NoError(t, err)
	tiles := looseTiles(1, 2, 1)
	for _, tile := range tiles {
		require.True(t, s.TryAdd(tile))
	}

	got, err := s.Unstage(1)
	require.NoError(t, err)
	assert.Same(t, tiles[1], got)
	assert.Equal(t, core.ZoneUnassigned, got.Zone())
	assert.Equal(t, []int{0, 2}, s.Snapshot().Tiles)
	assert.False(t, s.Contains(1))

	_, err = s.Unstage(1)
	assert.ErrorIs(t, err, core.ErrTileNotStaged)
	requirePanicsWith(t, core.ErrTileNotStaged, func() { s.Remove(tiles[1:2]) })
}

func TestArchiveRetrieveIsLIFO(t *testing.T) {
	a := core.NewArchive()
	tiles := looseTiles(3, 3, 3, 4, 4)

	a.Accept(tiles[:3])
	a.Accept(tiles[3:])
	assert.Equal(t, 5, a.Total())
	assert.Equal(t, map[int]int{3: 3, 4: 2}, a.Counts())
	assert.Equal(t, core.ZoneCompleted, tiles[4].Zone())

	got := a.Retrieve(2)
	assert.Equal(t, []int{4, 3}, indices(got))
	assert.Equal(t, 0, a.Count(4))
	assert.Equal(t, a.Snapshot(), core.ArchiveSnapshot{Total: 3, Counts: map[int]int{3: 3}})

	assert.Empty(t, a.Retrieve(0))
	requirePanicsWith(t, core.ErrOverdraw, func() { a.Retrieve(4) })
}
