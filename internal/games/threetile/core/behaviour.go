package core

import (
	"encoding/binary"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash"
)

// BehaviourKind classifies a clearing action.
type BehaviourKind uint8

const (
	// EasyClear completes a color using only tiles that are already unlocked.
	EasyClear BehaviourKind = iota
	// HardClear removes covering tiles first to reach the rest of the group.
	HardClear
	// Flip takes a single unlocked tile with no clearing plan behind it.
	Flip
)

func (k BehaviourKind) String() string {
	switch k {
	case EasyClear:
		return "EASY_CLEAR"
	case HardClear:
		return "HARD_CLEAR"
	case Flip:
		return "FLIP"
	default:
		return "UNKNOWN"
	}
}

// Behaviour is one legal action found by enumeration. Tiles are in
// execution order.
type Behaviour struct {
	Kind  BehaviourKind
	Color int
	Tiles []int
}

// Moves expands the behaviour into one Select per tile.
func (b Behaviour) Moves() []*Move {
	out := make([]*Move, len(b.Tiles))
	for i, idx := range b.Tiles {
		out[i] = Select(idx)
	}
	return out
}

// Tint packs the behaviour into a single move.
func (b Behaviour) Tint() *Move { return Tint(b.Tiles...) }

// SortedTiles returns the tile indices in ascending order.
func (b Behaviour) SortedTiles() []int {
	s := slices.Clone(b.Tiles)
	slices.Sort(s)
	return s
}

// Key fingerprints kind, color and the unordered tile set.
func (b Behaviour) Key() uint64 {
	buf := make([]byte, 0, 8+4*len(b.Tiles))
	buf = append(buf, byte(b.Kind))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(int32(b.Color)))
	for _, t := range b.SortedTiles() {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(t))
	}
	return xxhash.Sum64(buf)
}

// SameSet reports whether b and o have the same kind, color and tile set.
func (b Behaviour) SameSet(o Behaviour) bool {
	return b.Kind == o.Kind && b.Color == o.Color && slices.Equal(b.SortedTiles(), o.SortedTiles())
}

func (b Behaviour) String() string {
	parts := make([]string, len(b.Tiles))
	for i, t := range b.Tiles {
		parts[i] = strconv.Itoa(t)
	}
	return fmt.Sprintf("%s color=%d tiles=[%s]", b.Kind, b.Color, strings.Join(parts, " "))
}
