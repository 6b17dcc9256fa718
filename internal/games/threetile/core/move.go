package core

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// MoveKind tags the move variant.
type MoveKind uint8

const (
	// MoveSelect takes one tile from the board into staging.
	MoveSelect MoveKind = iota
	// MoveTint takes several tiles in order as a single history entry.
	MoveTint
)

func (k MoveKind) String() string {
	switch k {
	case MoveSelect:
		return "select"
	case MoveTint:
		return "tint"
	default:
		return "unknown"
	}
}

// selectStep records what one tile selection did so it can be reversed.
type selectStep struct {
	index    int
	resolved bool
	group    int   // size of the resolved group
	slots    []int // staging order just before the group left
}

// Move is a reversible action on a Level. Level.DoMove executes it and
// Level.UndoMove reverses it; the recorded steps are only meaningful
// while the move is on that level's history.
type Move struct {
	Kind  MoveKind
	Tiles []int

	steps []selectStep
}

// Select builds a move that selects one tile.
func Select(index int) *Move {
	return &Move{Kind: MoveSelect, Tiles: []int{index}}
}

// Tint builds a move that selects the given tiles in order.
func Tint(indices ...int) *Move {
	return &Move{Kind: MoveTint, Tiles: slices.Clone(indices)}
}

// Resolved reports whether executing the move completed at least one group.
func (m *Move) Resolved() bool {
	return slices.ContainsFunc(m.steps, func(s selectStep) bool { return s.resolved })
}

// Completed returns the number of tiles the move sent to the archive.
func (m *Move) Completed() int {
	n := 0
	for _, s := range m.steps {
		if s.resolved {
			n += s.group
		}
	}
	return n
}

func (m *Move) String() string {
	parts := make([]string, len(m.Tiles))
	for i, t := range m.Tiles {
		parts[i] = strconv.Itoa(t)
	}
	return fmt.Sprintf("%s(%s)", m.Kind, strings.Join(parts, ","))
}

func (m *Move) clone() *Move {
	return &Move{Kind: m.Kind, Tiles: slices.Clone(m.Tiles), steps: slices.Clone(m.steps)}
}

// CanDo reports whether the move is legal on l right now.
func (m *Move) CanDo(l *Level) bool {
	switch m.Kind {
	case MoveSelect:
		return len(m.Tiles) == 1 && l.canSelect(m.Tiles[0])
	case MoveTint:
		if len(m.Tiles) == 0 {
			return false
		}
		// Each step may reveal the next one, so try it for real and roll back.
		done := make([]selectStep, 0, len(m.Tiles))
		ok := true
		for _, idx := range m.Tiles {
			if !l.canSelect(idx) {
				ok = false
				break
			}
			done = append(done, l.selectTile(idx))
		}
		for i := len(done) - 1; i >= 0; i-- {
			l.unselectTile(done[i])
		}
		return ok
	default:
		return false
	}
}

func (m *Move) do(l *Level) {
	m.steps = m.steps[:0]
	for _, idx := range m.Tiles {
		m.steps = append(m.steps, l.selectTile(idx))
	}
}

func (m *Move) undo(l *Level) {
	for i := len(m.steps) - 1; i >= 0; i-- {
		l.unselectTile(m.steps[i])
	}
	m.steps = m.steps[:0]
}
