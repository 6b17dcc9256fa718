package core

import (
	"fmt"
	"slices"
)

// Board is the spatial zone. It owns every tile of a level (the arena),
// indexes the ones currently placed, and keeps their locked and visible
// flags in sync with the shadow manager.
type Board struct {
	cols, rows, layers int

	shadows *ShadowManager

	arena      map[int]*Tile // every registered tile, whatever its zone
	order      []int         // indices on the board, ascending
	cells      map[Pos]int
	byTopZ     map[int]map[int]struct{}
	tileShadow map[int]*Shadow

	unlocked []int
	visible  []int
}

// NewBoard creates an empty board of cols x rows cells on layers layers.
func NewBoard(cols, rows, layers int, policy Propagation) *Board {
	return &Board{
		cols:       cols,
		rows:       rows,
		layers:     layers,
		shadows:    NewShadowManager(policy, cols, rows, layers),
		arena:      make(map[int]*Tile),
		cells:      make(map[Pos]int),
		byTopZ:     make(map[int]map[int]struct{}),
		tileShadow: make(map[int]*Shadow),
	}
}

// Dims returns the board size in cells.
func (b *Board) Dims() (cols, rows, layers int) { return b.cols, b.rows, b.layers }

// Shadows exposes the shadow manager for inspection.
func (b *Board) Shadows() *ShadowManager { return b.shadows }

// Len returns the number of tiles on the board.
func (b *Board) Len() int { return len(b.order) }

// Empty reports whether no tile is on the board.
func (b *Board) Empty() bool { return len(b.order) == 0 }

// Tile returns a registered tile by index, regardless of its zone.
func (b *Board) Tile(index int) (*Tile, bool) {
	t, ok := b.arena[index]
	return t, ok
}

func (b *Board) mustTile(index int) *Tile {
	t, ok := b.arena[index]
	if !ok {
		fatalf(ErrUnknownTile, "index %d", index)
	}
	return t
}

// Contains reports whether the tile is currently on the board.
func (b *Board) Contains(index int) bool {
	_, ok := b.tileShadow[index]
	return ok
}

// At returns the tile occupying cell p, if any.
func (b *Board) At(p Pos) (*Tile, bool) {
	idx, ok := b.cells[p]
	if !ok {
		return nil, false
	}
	return b.arena[idx], true
}

// Tiles returns the tiles on the board in index order.
func (b *Board) Tiles() []*Tile { return b.resolve(b.order) }

// AllTiles returns every registered tile in index order.
func (b *Board) AllTiles() []*Tile {
	idx := make([]int, 0, len(b.arena))
	for i := range b.arena {
		idx = append(idx, i)
	}
	slices.Sort(idx)
	return b.resolve(idx)
}

// Unlocked returns the selectable tiles in index order.
func (b *Board) Unlocked() []*Tile { return b.resolve(b.unlocked) }

// Visible returns the tiles with some uncovered top cell, in index order.
func (b *Board) Visible() []*Tile { return b.resolve(b.visible) }

// OnLayer returns the indices of board tiles whose top face is on layer z.
func (b *Board) OnLayer(z int) []int {
	set := b.byTopZ[z]
	out := make([]int, 0, len(set))
	for i := range set {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

func (b *Board) resolve(indices []int) []*Tile {
	out := make([]*Tile, len(indices))
	for i, idx := range indices {
		out[i] = b.arena[idx]
	}
	return out
}

// Add places a tile and recomputes every tile's flags.
func (b *Board) Add(t *Tile) error {
	if err := b.place(t); err != nil {
		return err
	}
	b.refresh()
	return nil
}

// AddAll places tiles in order and recomputes flags once. On error the
// tiles placed before the failing one stay on the board.
func (b *Board) AddAll(tiles []*Tile) error {
	defer b.refresh()
	for _, t := range tiles {
		if err := b.place(t); err != nil {
			return err
		}
	}
	return nil
}

func (b *Board) place(t *Tile) error {
	if other, ok := b.arena[t.Index]; ok && other != t {
		return fmt.Errorf("%w: duplicate tile index %d", ErrInvalidLevel, t.Index)
	}
	for _, c := range t.cells {
		if c.X() >= b.cols || c.Y() >= b.rows || c.Z() >= b.layers {
			return fmt.Errorf("%w: tile %d cell %s, board %dx%dx%d",
				ErrOutOfBounds, t.Index, c, b.cols, b.rows, b.layers)
		}
		if occ, ok := b.cells[c]; ok {
			return fmt.Errorf("%w: tile %d cell %s held by tile %d",
				ErrCellOccupied, t.Index, c, occ)
		}
	}

	b.arena[t.Index] = t
	t.zone = ZoneBoard

	pos, _ := slices.BinarySearch(b.order, t.Index)
	b.order = slices.Insert(b.order, pos, t.Index)

	for _, c := range t.cells {
		b.cells[c] = t.Index
	}
	set, ok := b.byTopZ[t.topZ]
	if !ok {
		set = make(map[int]struct{})
		b.byTopZ[t.topZ] = set
	}
	set[t.Index] = struct{}{}

	ts := NewShadow(b.cols, b.rows)
	for _, c := range t.topCells {
		ts.Add(c)
	}
	b.tileShadow[t.Index] = ts

	b.shadows.AddSelf(t.topZ, t.topCells)
	return nil
}

// Remove takes a tile off the board. It stays in the arena.
func (b *Board) Remove(index int) error {
	if !b.Contains(index) {
		return fmt.Errorf("%w: tile %d", ErrNotOnBoard, index)
	}
	t := b.arena[index]

	pos, _ := slices.BinarySearch(b.order, index)
	b.order = slices.Delete(b.order, pos, pos+1)

	for _, c := range t.cells {
		delete(b.cells, c)
	}
	if set, ok := b.byTopZ[t.topZ]; ok {
		delete(set, index)
		if len(set) == 0 {
			delete(b.byTopZ, t.topZ)
		}
	}
	delete(b.tileShadow, index)

	b.shadows.RemoveSelf(t.topZ, t.topCells)
	t.zone = ZoneUnassigned
	b.refresh()
	return nil
}

// Extract removes a tile from the board and returns it.
func (b *Board) Extract(index int) (*Tile, error) {
	if err := b.Remove(index); err != nil {
		return nil, err
	}
	return b.arena[index], nil
}

// CanSelect reports whether the tile is on the board and unlocked.
func (b *Board) CanSelect(index int) bool {
	_, found := slices.BinarySearch(b.unlocked, index)
	return found
}

func (b *Board) refresh() {
	b.shadows.Rebuild()
	b.unlocked = b.unlocked[:0]
	b.visible = b.visible[:0]
	for _, idx := range b.order {
		t := b.arena[idx]
		ts := b.tileShadow[idx]
		t.locked = b.shadows.IntersectsIncoming(t.topZ, ts)
		t.visible = b.shadows.IncomingIntersectCount(t.topZ, ts) < ts.Count()
		if !t.locked {
			b.unlocked = append(b.unlocked, idx)
		}
		if t.visible {
			b.visible = append(b.visible, idx)
		}
	}
}

// Expand returns the indices of tiles sitting directly beneath a tile.
func (b *Board) Expand(index int) []int {
	t := b.mustTile(index)
	var out []int
	for _, c := range t.Volume.DownCells(t.Pos) {
		if occ, ok := b.cells[c]; ok && !slices.Contains(out, occ) {
			out = append(out, occ)
		}
	}
	slices.Sort(out)
	return out
}

// LockersOf returns the tiles directly above a locked tile. Under cascade
// propagation any higher tile over the footprint counts. With transitive
// set it also walks up through each blocker's own blockers. An unlocked
// tile has no lockers.
func (b *Board) LockersOf(index int, transitive bool) []int {
	root := b.mustTile(index)
	if !root.locked {
		return nil
	}
	seen := make(map[int]struct{})
	var out []int
	stack := []int{index}
	for len(stack) > 0 {
		cur := b.arena[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]
		if !cur.locked {
			continue
		}
		for _, c := range b.cellsAbove(cur) {
			occ, ok := b.cells[c]
			if !ok {
				continue
			}
			if _, dup := seen[occ]; dup {
				continue
			}
			seen[occ] = struct{}{}
			out = append(out, occ)
			if transitive {
				stack = append(stack, occ)
			}
		}
	}
	slices.Sort(out)
	return out
}

func (b *Board) cellsAbove(t *Tile) []Pos {
	up := t.Volume.UpCells(t.Pos)
	if b.shadows.Policy() != PropagationCascade {
		return up
	}
	out := make([]Pos, 0, len(up)*(b.layers-t.topZ))
	for _, c := range up {
		for z := c.Z(); z < b.layers; z++ {
			out = append(out, P(c.X(), c.Y(), z))
		}
	}
	return out
}

// Clone returns a deep copy with its own arena and shadows.
func (b *Board) Clone() *Board {
	c := &Board{
		cols:       b.cols,
		rows:       b.rows,
		layers:     b.layers,
		shadows:    b.shadows.Clone(),
		arena:      make(map[int]*Tile, len(b.arena)),
		order:      slices.Clone(b.order),
		cells:      make(map[Pos]int, len(b.cells)),
		byTopZ:     make(map[int]map[int]struct{}, len(b.byTopZ)),
		tileShadow: make(map[int]*Shadow, len(b.tileShadow)),
		unlocked:   slices.Clone(b.unlocked),
		visible:    slices.Clone(b.visible),
	}
	for i, t := range b.arena {
		c.arena[i] = t.Clone()
	}
	for p, i := range b.cells {
		c.cells[p] = i
	}
	for z, set := range b.byTopZ {
		cs := make(map[int]struct{}, len(set))
		for i := range set {
			cs[i] = struct{}{}
		}
		c.byTopZ[z] = cs
	}
	for i, s := range b.tileShadow {
		c.tileShadow[i] = s.Clone()
	}
	return c
}
