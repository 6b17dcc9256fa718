package core

// TileSnapshot is a read-only view of one tile.
type TileSnapshot struct {
	Index   int
	Pos     Pos
	Color   int
	Locked  bool
	Visible bool
	Zone    Zone
}

// StagingSnapshot is a read-only view of the staging area.
type StagingSnapshot struct {
	Capacity int
	Used     int
	Counts   map[int]int
	Tiles    []int
}

// ArchiveSnapshot is a read-only view of the completed archive.
type ArchiveSnapshot struct {
	Total  int
	Counts map[int]int
}

// LevelSnapshot captures everything observable about a level. Two levels
// with equal snapshots are indistinguishable to a player.
type LevelSnapshot struct {
	Tiles   []TileSnapshot
	Staging StagingSnapshot
	Archive ArchiveSnapshot
	Moves   int
}

// Snapshot returns the tile's current view.
func (t *Tile) Snapshot() TileSnapshot {
	return TileSnapshot{
		Index:   t.Index,
		Pos:     t.Pos,
		Color:   t.Color,
		Locked:  t.locked,
		Visible: t.visible,
		Zone:    t.zone,
	}
}

// Snapshot returns the staging view. Tiles are in slot order.
func (s *Staging) Snapshot() StagingSnapshot {
	return StagingSnapshot{
		Capacity: s.capacity,
		Used:     len(s.tiles),
		Counts:   s.Counts(),
		Tiles:    s.order(),
	}
}

// Snapshot returns the archive view.
func (a *Archive) Snapshot() ArchiveSnapshot {
	return ArchiveSnapshot{Total: len(a.tiles), Counts: a.Counts()}
}

// Snapshot returns the whole level view with tiles in index order.
func (l *Level) Snapshot() LevelSnapshot {
	all := l.board.AllTiles()
	tiles := make([]TileSnapshot, len(all))
	for i, t := range all {
		tiles[i] = t.Snapshot()
	}
	return LevelSnapshot{
		Tiles:   tiles,
		Staging: l.staging.Snapshot(),
		Archive: l.archive.Snapshot(),
		Moves:   len(l.history),
	}
}
