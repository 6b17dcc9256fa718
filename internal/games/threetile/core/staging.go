package core

import (
	"fmt"
	"slices"
	"strings"
)

// ResolvePolicy decides how many staged tiles a match consumes.
type ResolvePolicy uint8

const (
	// ResolveAll completes every staged tile of the matching color.
	ResolveAll ResolvePolicy = iota
	// ResolveExact completes the k oldest staged tiles and leaves the rest.
	ResolveExact
)

// String returns the config name of the policy.
func (p ResolvePolicy) String() string {
	switch p {
	case ResolveAll:
		return "all"
	case ResolveExact:
		return "exact"
	default:
		return "unknown"
	}
}

// ParseResolvePolicy parses a policy name. The empty string selects all.
func ParseResolvePolicy(s string) (ResolvePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return ResolveAll, nil
	case "exact":
		return ResolveExact, nil
	default:
		return 0, fmt.Errorf("%w: unknown resolve policy %q", ErrInvalidRules, s)
	}
}

// Staging is the bounded slot bar. Tiles wait here until enough of one
// color are present to resolve.
type Staging struct {
	capacity int
	required int
	policy   ResolvePolicy

	tiles  []*Tile
	counts map[int]int
}

// NewStaging creates an empty staging area.
func NewStaging(capacity, required int, policy ResolvePolicy) (*Staging, error) {
	if capacity <= 0 || required <= 0 || required > capacity {
		return nil, fmt.Errorf("%w: capacity %d, match %d", ErrInvalidRules, capacity, required)
	}
	return &Staging{
		capacity: capacity,
		required: required,
		policy:   policy,
		counts:   make(map[int]int),
	}, nil
}

// Capacity returns the slot count.
func (s *Staging) Capacity() int { return s.capacity }

// Required returns the number of same-color tiles needed for a match.
func (s *Staging) Required() int { return s.required }

// Used returns the number of occupied slots.
func (s *Staging) Used() int { return len(s.tiles) }

// Available returns the number of free slots.
func (s *Staging) Available() int { return s.capacity - len(s.tiles) }

// Full reports whether no slot is free.
func (s *Staging) Full() bool { return len(s.tiles) >= s.capacity }

// Count returns how many staged tiles have the color.
func (s *Staging) Count(color int) int { return s.counts[color] }

// Counts returns a copy of the per-color counts.
func (s *Staging) Counts() map[int]int {
	out := make(map[int]int, len(s.counts))
	for c, n := range s.counts {
		out[c] = n
	}
	return out
}

// Tiles returns the staged tiles in slot order.
func (s *Staging) Tiles() []*Tile { return slices.Clone(s.tiles) }

// Contains reports whether the tile is staged.
func (s *Staging) Contains(index int) bool {
	return s.find(index) >= 0
}

func (s *Staging) find(index int) int {
	return slices.IndexFunc(s.tiles, func(t *Tile) bool { return t.Index == index })
}

// TryAdd stages t if a slot is free.
func (s *Staging) TryAdd(t *Tile) bool {
	if s.Full() {
		return false
	}
	s.push(t)
	return true
}

// Stage adds t and returns its slot, or ErrStagingFull.
func (s *Staging) Stage(t *Tile) (int, error) {
	if !s.TryAdd(t) {
		return -1, fmt.Errorf("%w: tile %d", ErrStagingFull, t.Index)
	}
	return len(s.tiles) - 1, nil
}

func (s *Staging) push(t *Tile) {
	s.tiles = append(s.tiles, t)
	s.counts[t.Color]++
	t.zone = ZoneStaging
}

// TryResolve returns the group completed by color, if the match count
// has been reached. The staging area is not modified.
func (s *Staging) TryResolve(color int) ([]*Tile, bool) {
	if s.counts[color] < s.required {
		return nil, false
	}
	limit := len(s.tiles)
	if s.policy == ResolveExact {
		limit = s.required
	}
	group := make([]*Tile, 0, s.counts[color])
	for _, t := range s.tiles {
		if t.Color == color {
			group = append(group, t)
			if len(group) == limit {
				break
			}
		}
	}
	return group, true
}

// Remove takes a resolved group out of the slots.
func (s *Staging) Remove(group []*Tile) {
	for _, t := range group {
		i := s.find(t.Index)
		if i < 0 {
			fatalf(ErrTileNotStaged, "remove tile %d", t.Index)
		}
		s.drop(i)
	}
}

// Restore puts a previously removed group back. It panics if the group
// no longer fits.
func (s *Staging) Restore(group []*Tile) {
	if len(group) > s.Available() {
		fatalf(ErrOutOfRange, "restore %d tiles into %d free slots", len(group), s.Available())
	}
	for _, t := range group {
		s.push(t)
	}
}

// Unstage removes one tile by index.
func (s *Staging) Unstage(index int) (*Tile, error) {
	i := s.find(index)
	if i < 0 {
		return nil, fmt.Errorf("%w: tile %d", ErrTileNotStaged, index)
	}
	t := s.tiles[i]
	s.drop(i)
	return t, nil
}

func (s *Staging) drop(i int) {
	t := s.tiles[i]
	s.tiles = slices.Delete(s.tiles, i, i+1)
	s.counts[t.Color]--
	if s.counts[t.Color] == 0 {
		delete(s.counts, t.Color)
	}
	t.zone = ZoneUnassigned
}

func (s *Staging) order() []int {
	out := make([]int, len(s.tiles))
	for i, t := range s.tiles {
		out[i] = t.Index
	}
	return out
}

// reorder puts the staged tiles back into the given slot order.
func (s *Staging) reorder(order []int) {
	if len(order) != len(s.tiles) {
		fatalf(ErrOutOfRange, "reorder %d slots holding %d tiles", len(order), len(s.tiles))
	}
	byIndex := make(map[int]*Tile, len(s.tiles))
	for _, t := range s.tiles {
		byIndex[t.Index] = t
	}
	for i, idx := range order {
		t, ok := byIndex[idx]
		if !ok {
			fatalf(ErrTileNotStaged, "reorder tile %d", idx)
		}
		s.tiles[i] = t
	}
}

// rebind returns a copy whose tiles are looked up in arena.
func (s *Staging) rebind(arena map[int]*Tile) *Staging {
	c := &Staging{
		capacity: s.capacity,
		required: s.required,
		policy:   s.policy,
		tiles:    make([]*Tile, len(s.tiles)),
		counts:   s.Counts(),
	}
	for i, t := range s.tiles {
		c.tiles[i] = arena[t.Index]
	}
	return c
}
