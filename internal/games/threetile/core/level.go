package core

import (
	"fmt"
	"slices"
)

// Rules are the parameters a level is played under.
type Rules struct {
	Capacity    int
	MatchCount  int
	Propagation Propagation
	Resolve     ResolvePolicy
	Volume      Volume
}

// ClassicRules is the seven-slot, match-three mode.
func ClassicRules() Rules {
	return Rules{Capacity: 7, MatchCount: 3, Propagation: PropagationDirectOnly, Volume: DefaultVolume}
}

// VitaRules is the four-slot, match-two mode.
func VitaRules() Rules {
	return Rules{Capacity: 4, MatchCount: 2, Propagation: PropagationDirectOnly, Volume: DefaultVolume}
}

// Validate checks the rule parameters. A zero Volume is accepted and
// means DefaultVolume.
func (r Rules) Validate() error {
	if r.Capacity <= 0 {
		return fmt.Errorf("%w: capacity %d", ErrInvalidRules, r.Capacity)
	}
	if r.MatchCount <= 0 || r.MatchCount > r.Capacity {
		return fmt.Errorf("%w: match count %d with capacity %d", ErrInvalidRules, r.MatchCount, r.Capacity)
	}
	if r.Volume != (Volume{}) && !r.Volume.Valid() {
		return fmt.Errorf("%w: volume %dx%dx%d", ErrInvalidRules, r.Volume.DX, r.Volume.DY, r.Volume.DZ)
	}
	return nil
}

func (r Rules) String() string {
	v := r.volume()
	return fmt.Sprintf("capacity=%d match=%d propagation=%s resolve=%s volume=%dx%dx%d",
		r.Capacity, r.MatchCount, r.Propagation, r.Resolve, v.DX, v.DY, v.DZ)
}

func (r Rules) volume() Volume {
	if r.Volume == (Volume{}) {
		return DefaultVolume
	}
	return r.Volume
}

// Outcome summarizes where a level stands.
type Outcome uint8

const (
	OutcomeInProgress Outcome = iota
	OutcomeCleared
	OutcomeStuck
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCleared:
		return "cleared"
	case OutcomeStuck:
		return "stuck"
	default:
		return "in_progress"
	}
}

// Level composes the board, staging area and archive and runs moves
// against them. A Level is not safe for concurrent use; Clone it instead.
type Level struct {
	rules   Rules
	board   *Board
	staging *Staging
	archive *Archive
	history []*Move

	colorTotals map[int]int
}

// NewLevel builds a level from parallel position and color slices. Tile
// i gets index i. The board is sized to the largest coordinate plus the
// tile volume on each axis.
func NewLevel(positions []Pos, colors []int, rules Rules) (*Level, error) {
	if len(positions) == 0 {
		return nil, fmt.Errorf("%w: no tiles", ErrInvalidLevel)
	}
	if len(positions) != len(colors) {
		return nil, fmt.Errorf("%w: %d positions, %d colors", ErrInvalidLevel, len(positions), len(colors))
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	vol := rules.volume()
	rules.Volume = vol

	maxX, maxY, maxZ := 0, 0, 0
	tiles := make([]*Tile, len(positions))
	totals := make(map[int]int)
	for i, p := range positions {
		c := colors[i]
		if c < ColorUnspecified || c > MaxColorIndex {
			return nil, fmt.Errorf("%w: tile %d color %d", ErrInvalidLevel, i, c)
		}
		x, y, z := p.Unpack()
		if x+vol.DX-1 > MaxCoord || y+vol.DY-1 > MaxCoord || z+vol.DZ-1 > MaxCoord {
			return nil, fmt.Errorf("%w: tile %d at %s exceeds packed range", ErrOutOfBounds, i, p)
		}
		maxX, maxY, maxZ = max(maxX, x), max(maxY, y), max(maxZ, z)
		tiles[i] = NewTile(i, c, p, vol)
		totals[c]++
	}

	board := NewBoard(maxX+vol.DX, maxY+vol.DY, maxZ+vol.DZ, rules.Propagation)
	if err := board.AddAll(tiles); err != nil {
		return nil, fmt.Errorf("core: build level: %w", err)
	}
	staging, err := NewStaging(rules.Capacity, rules.MatchCount, rules.Resolve)
	if err != nil {
		return nil, err
	}
	return &Level{
		rules:       rules,
		board:       board,
		staging:     staging,
		archive:     NewArchive(),
		colorTotals: totals,
	}, nil
}

// Rules returns the rules the level was built with.
func (l *Level) Rules() Rules { return l.rules }

// Board returns the board zone.
func (l *Level) Board() *Board { return l.board }

// Staging returns the staging zone.
func (l *Level) Staging() *Staging { return l.staging }

// Archive returns the completed zone.
func (l *Level) Archive() *Archive { return l.archive }

// Tile looks up any tile of the level by index.
func (l *Level) Tile(index int) (*Tile, bool) { return l.board.Tile(index) }

// TileCount returns the number of tiles the level was built with.
func (l *Level) TileCount() int { return len(l.board.arena) }

// Unlocked returns the selectable board tiles.
func (l *Level) Unlocked() []*Tile { return l.board.Unlocked() }

// Visible returns the board tiles with an uncovered top cell.
func (l *Level) Visible() []*Tile { return l.board.Visible() }

// History returns the executed moves, oldest first.
func (l *Level) History() []*Move { return slices.Clone(l.history) }

// DoMove executes m if its precondition holds and records it.
// ErrIllegalMove means the caller skipped m.CanDo; treat it as a bug in
// the caller, not as a move to retry.
func (l *Level) DoMove(m *Move) error {
	if m == nil {
		return fmt.Errorf("%w: nil move", ErrIllegalMove)
	}
	if !m.CanDo(l) {
		return fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}
	m.do(l)
	l.history = append(l.history, m)
	return nil
}

// UndoMove reverses the most recent move and returns it.
// ErrEmptyHistory means there was nothing to undo; callers check History
// first and treat the error as a bug.
func (l *Level) UndoMove() (*Move, error) {
	if len(l.history) == 0 {
		return nil, ErrEmptyHistory
	}
	m := l.history[len(l.history)-1]
	l.history = l.history[:len(l.history)-1]
	m.undo(l)
	return m, nil
}

// Outcome reports whether the level is cleared, stuck or still playable.
func (l *Level) Outcome() Outcome {
	switch {
	case l.board.Empty() && l.staging.Used() == 0:
		return OutcomeCleared
	case l.staging.Full() || l.board.Empty():
		return OutcomeStuck
	default:
		return OutcomeInProgress
	}
}

// IsColorCompleted reports whether every tile of color is in the archive.
func (l *Level) IsColorCompleted(color int) bool {
	total := l.colorTotals[color]
	return total > 0 && l.archive.Count(color) == total
}

// Colors returns the distinct tile colors in ascending order.
func (l *Level) Colors() []int {
	out := make([]int, 0, len(l.colorTotals))
	for c := range l.colorTotals {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// Clone returns a fully independent copy, history included.
func (l *Level) Clone() *Level {
	board := l.board.Clone()
	c := &Level{
		rules:       l.rules,
		board:       board,
		staging:     l.staging.rebind(board.arena),
		archive:     l.archive.rebind(board.arena),
		history:     make([]*Move, len(l.history)),
		colorTotals: make(map[int]int, len(l.colorTotals)),
	}
	for i, m := range l.history {
		c.history[i] = m.clone()
	}
	for k, v := range l.colorTotals {
		c.colorTotals[k] = v
	}
	return c
}

func (l *Level) canSelect(index int) bool {
	return l.board.CanSelect(index) && !l.staging.Full()
}

func (l *Level) selectTile(index int) selectStep {
	t, err := l.board.Extract(index)
	if err != nil {
		panic(err)
	}
	if !l.staging.TryAdd(t) {
		fatalf(ErrStagingFull, "select tile %d", index)
	}
	step := selectStep{index: index}
	if group, ok := l.staging.TryResolve(t.Color); ok {
		step.slots = l.staging.order()
		l.staging.Remove(group)
		l.archive.Accept(group)
		step.resolved = true
		step.group = len(group)
	}
	return step
}

func (l *Level) unselectTile(step selectStep) {
	if step.resolved {
		group := l.archive.Retrieve(step.group)
		l.staging.Restore(group)
		l.staging.reorder(step.slots)
	}
	t, err := l.staging.Unstage(step.index)
	if err != nil {
		panic(err)
	}
	if err := l.board.Add(t); err != nil {
		panic(err)
	}
}
