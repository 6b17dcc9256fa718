// Package core provides the rule engine for the ThreeTile stacking puzzle:
// layered occlusion, the board, staging and completed zones, reversible
// moves and the enumeration of legal clearing actions.
// This package is UI-agnostic and deterministic.
package core

// Color indices used by level data.
const (
	ColorUnspecified = -1
	MaxColorIndex    = 61
)

// Zone is where a tile currently lives.
type Zone uint8

const (
	ZoneUnassigned Zone = iota
	ZoneBoard
	ZoneStaging
	ZoneCompleted
)

// String returns the name of a zone.
func (z Zone) String() string {
	switch z {
	case ZoneBoard:
		return "board"
	case ZoneStaging:
		return "staging"
	case ZoneCompleted:
		return "completed"
	default:
		return "unassigned"
	}
}

// Tile is a single piece. Its geometry is fixed; flags and zone change as
// it moves through the level.
type Tile struct {
	Index  int
	Color  int
	Pos    Pos
	Volume Volume

	cells    []Pos
	topCells []Pos
	topZ     int

	locked  bool
	visible bool
	zone    Zone
}

// NewTile creates a tile and precomputes its cell sets.
func NewTile(index, color int, pos Pos, vol Volume) *Tile {
	return &Tile{
		Index:    index,
		Color:    color,
		Pos:      pos,
		Volume:   vol,
		cells:    vol.Cells(pos),
		topCells: vol.TopCells(pos),
		topZ:     vol.TopZ(pos),
		visible:  true,
	}
}

// Cells returns every cell the tile occupies. Callers must not mutate it.
func (t *Tile) Cells() []Pos { return t.cells }

// TopCells returns the cells of the tile's top face. Callers must not mutate it.
func (t *Tile) TopCells() []Pos { return t.topCells }

// TopZ is the highest layer the tile occupies.
func (t *Tile) TopZ() int { return t.topZ }

// Locked reports whether something above covers the tile.
func (t *Tile) Locked() bool { return t.locked }

// Visible reports whether some part of the top face is uncovered.
func (t *Tile) Visible() bool { return t.visible }

// Zone returns the tile's current zone.
func (t *Tile) Zone() Zone { return t.zone }

// Clone returns a copy sharing the immutable cell slices.
func (t *Tile) Clone() *Tile {
	c := *t
	return &c
}
