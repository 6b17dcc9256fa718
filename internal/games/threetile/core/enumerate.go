package core

import (
	"slices"

	"github.com/samber/lo"
)

// Behaviours lists every legal clearing action for the current state,
// using the free staging slots as the capacity.
func (l *Level) Behaviours() []Behaviour {
	return l.BehavioursWithCapacity(l.staging.Available())
}

// BehavioursWithCapacity lists behaviours as if capacity slots were free.
//
// Order is deterministic: colors ascending, and for each color the easy
// clears followed by the hard clears in traversal order. Flips for tiles
// no clear uses come last, by tile index.
func (l *Level) BehavioursWithCapacity(capacity int) []Behaviour {
	if capacity <= 0 {
		return nil
	}
	e := &enumerator{
		board: l.board,
		match: l.staging.Required(),
		seen:  make(map[uint64][]int),
		used:  make(map[int]struct{}),
	}

	unlocked := l.board.Unlocked()
	byColor := lo.GroupBy(unlocked, func(t *Tile) int { return t.Color })
	colors := lo.Keys(byColor)
	slices.Sort(colors)
	for _, c := range colors {
		if c == ColorUnspecified {
			continue
		}
		required := e.match - l.staging.Count(c)
		if required <= 0 || required > capacity {
			continue
		}
		selectable := lo.Map(byColor[c], func(t *Tile, _ int) int { return t.Index })
		e.easy(c, selectable, required)
		if required >= 2 {
			e.hard(c, selectable, required)
		}
	}

	for _, t := range unlocked {
		if _, ok := e.used[t.Index]; !ok {
			e.out = append(e.out, Behaviour{Kind: Flip, Color: t.Color, Tiles: []int{t.Index}})
		}
	}
	return e.out
}

type enumerator struct {
	board *Board
	match int

	out  []Behaviour
	seen map[uint64][]int // fingerprint -> positions in out
	used map[int]struct{}
}

// fseState is one point of the chained reveal traversal.
type fseState struct {
	fixed      []int // committed in order, each uncovering the next
	selectable []int // revealed earlier but not committed
	expanded   []int // revealed by the last fixed tile
}

func (e *enumerator) emit(b Behaviour) {
	key := b.Key()
	for _, i := range e.seen[key] {
		if e.out[i].SameSet(b) {
			return
		}
	}
	e.seen[key] = append(e.seen[key], len(e.out))
	e.out = append(e.out, b)
	for _, t := range b.Tiles {
		e.used[t] = struct{}{}
	}
}

func (e *enumerator) easy(color int, selectable []int, required int) {
	if len(selectable) < required {
		return
	}
	Combinations(len(selectable), required, func(idx []int) {
		e.emit(Behaviour{Kind: EasyClear, Color: color, Tiles: pick(selectable, idx)})
	})
}

// hard walks reveal chains depth first. Each reached state is emitted
// before its children.
func (e *enumerator) hard(color int, selectable []int, required int) {
	root := fseState{expanded: selectable}
	stack := e.advance(color, root, required)
	slices.Reverse(stack)
	for len(stack) > 0 {
		st := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		e.emitPicks(color, st, required)
		children := e.advance(color, st, required)
		slices.Reverse(children)
		stack = append(stack, children...)
	}
}

// advance commits one more expanded tile and keeps the branches that
// reveal same-colored tiles blocked by exactly the committed chain.
func (e *enumerator) advance(color int, st fseState, required int) []fseState {
	if len(st.fixed)+1 >= required || len(st.expanded) == 0 {
		return nil
	}
	var next []fseState
	for _, cand := range st.expanded {
		chain := append(slices.Clone(st.fixed), cand)
		want := slices.Clone(chain)
		slices.Sort(want)

		var revealed []int
		for _, under := range e.board.Expand(cand) {
			t := e.board.arena[under]
			if t.Color != color {
				continue
			}
			if slices.Equal(e.board.LockersOf(under, true), want) {
				revealed = append(revealed, under)
			}
		}
		if len(revealed) == 0 {
			continue
		}
		next = append(next, fseState{
			fixed:      chain,
			selectable: append(slices.Clone(st.selectable), lo.Without(st.expanded, cand)...),
			expanded:   revealed,
		})
	}
	return next
}

// emitPicks emits every completion of st: all fixed tiles, at least one
// expanded tile, and selectable tiles for the remainder.
func (e *enumerator) emitPicks(color int, st fseState, required int) {
	rest := required - len(st.fixed)
	if rest <= 0 {
		return
	}
	for i := 1; i <= min(len(st.expanded), rest); i++ {
		j := rest - i
		if j > len(st.selectable) {
			continue
		}
		Combinations(len(st.expanded), i, func(em []int) {
			expanded := pick(st.expanded, em)
			emit := func(chosen []int) {
				tiles := make([]int, 0, required)
				tiles = append(tiles, st.fixed...)
				tiles = append(tiles, chosen...)
				tiles = append(tiles, expanded...)
				e.emit(Behaviour{Kind: HardClear, Color: color, Tiles: tiles})
			}
			if j == 0 {
				emit(nil)
				return
			}
			Combinations(len(st.selectable), j, func(sm []int) {
				emit(pick(st.selectable, sm))
			})
		})
	}
}
