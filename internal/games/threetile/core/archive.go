package core

import "slices"

// Archive holds completed tiles in completion order.
type Archive struct {
	tiles  []*Tile
	counts map[int]int
}

// NewArchive creates an empty archive.
func NewArchive() *Archive {
	return &Archive{counts: make(map[int]int)}
}

// Accept appends a resolved group.
func (a *Archive) Accept(group []*Tile) {
	for _, t := range group {
		a.Add(t)
	}
}

// Add appends one tile.
func (a *Archive) Add(t *Tile) {
	a.tiles = append(a.tiles, t)
	a.counts[t.Color]++
	t.zone = ZoneCompleted
}

// Retrieve pops the n most recently appended tiles, newest first.
func (a *Archive) Retrieve(n int) []*Tile {
	if n < 0 || n > len(a.tiles) {
		fatalf(ErrOverdraw, "retrieve %d of %d", n, len(a.tiles))
	}
	start := len(a.tiles) - n
	out := make([]*Tile, 0, n)
	for i := len(a.tiles) - 1; i >= start; i-- {
		t := a.tiles[i]
		a.counts[t.Color]--
		if a.counts[t.Color] == 0 {
			delete(a.counts, t.Color)
		}
		t.zone = ZoneUnassigned
		out = append(out, t)
	}
	a.tiles = a.tiles[:start]
	return out
}

// Total returns the number of completed tiles.
func (a *Archive) Total() int { return len(a.tiles) }

// Count returns how many completed tiles have the color.
func (a *Archive) Count(color int) int { return a.counts[color] }

// Counts returns a copy of the per-color counts.
func (a *Archive) Counts() map[int]int {
	out := make(map[int]int, len(a.counts))
	for c, n := range a.counts {
		out[c] = n
	}
	return out
}

// Tiles returns the archived tiles in completion order.
func (a *Archive) Tiles() []*Tile { return slices.Clone(a.tiles) }

func (a *Archive) rebind(arena map[int]*Tile) *Archive {
	c := &Archive{tiles: make([]*Tile, len(a.tiles)), counts: a.Counts()}
	for i, t := range a.tiles {
		c.tiles[i] = arena[t.Index]
	}
	return c
}
