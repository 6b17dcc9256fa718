package core

import (
	"math/bits"
	"strings"
)

const wordBits = 64

// Shadow is a fixed-size bit grid covering one layer of the board.
// Cell (x, y) maps to bit y*cols + x.
type Shadow struct {
	cols  int
	rows  int
	words []uint64
}

// NewShadow creates an empty shadow of cols x rows cells.
func NewShadow(cols, rows int) *Shadow {
	if cols <= 0 || rows <= 0 {
		fatalf(ErrOutOfRange, "shadow size %dx%d", cols, rows)
	}
	n := cols * rows
	return &Shadow{
		cols:  cols,
		rows:  rows,
		words: make([]uint64, (n+wordBits-1)/wordBits),
	}
}

// Cols returns the grid width.
func (s *Shadow) Cols() int { return s.cols }

// Rows returns the grid height.
func (s *Shadow) Rows() int { return s.rows }

// Cells returns the total number of cells.
func (s *Shadow) Cells() int { return s.cols * s.rows }

func (s *Shadow) bit(x, y int) (int, uint64) {
	if x < 0 || x >= s.cols || y < 0 || y >= s.rows {
		fatalf(ErrOutOfRange, "cell (%d,%d) outside %dx%d shadow", x, y, s.cols, s.rows)
	}
	i := y*s.cols + x
	return i / wordBits, 1 << uint(i%wordBits)
}

func (s *Shadow) sameSize(o *Shadow) {
	if len(s.words) != len(o.words) || s.cols != o.cols || s.rows != o.rows {
		fatalf(ErrSizeMismatch, "%dx%d vs %dx%d", s.cols, s.rows, o.cols, o.rows)
	}
}

// Set marks the cell (x, y).
func (s *Shadow) Set(x, y int) {
	w, m := s.bit(x, y)
	s.words[w] |= m
}

// Unset clears the cell (x, y).
func (s *Shadow) Unset(x, y int) {
	w, m := s.bit(x, y)
	s.words[w] &^= m
}

// Has reports whether the cell (x, y) is marked.
func (s *Shadow) Has(x, y int) bool {
	w, m := s.bit(x, y)
	return s.words[w]&m != 0
}

// Add marks the x/y cell of a packed position. The layer is ignored.
func (s *Shadow) Add(p Pos) { s.Set(p.X(), p.Y()) }

// Remove clears the x/y cell of a packed position.
func (s *Shadow) Remove(p Pos) { s.Unset(p.X(), p.Y()) }

// Exists reports whether the x/y cell of a packed position is marked.
func (s *Shadow) Exists(p Pos) bool { return s.Has(p.X(), p.Y()) }

// Clear unmarks every cell.
func (s *Shadow) Clear() {
	for i := range s.words {
		s.words[i] = 0
	}
}

// CopyFrom overwrites s with the contents of o.
func (s *Shadow) CopyFrom(o *Shadow) {
	s.sameSize(o)
	copy(s.words, o.words)
}

// Clone returns an independent copy.
func (s *Shadow) Clone() *Shadow {
	c := &Shadow{cols: s.cols, rows: s.rows, words: make([]uint64, len(s.words))}
	copy(c.words, s.words)
	return c
}

// OrWith ORs o into s in place.
func (s *Shadow) OrWith(o *Shadow) {
	s.sameSize(o)
	for i, w := range o.words {
		s.words[i] |= w
	}
}

// AndWith ANDs o into s in place.
func (s *Shadow) AndWith(o *Shadow) {
	s.sameSize(o)
	for i, w := range o.words {
		s.words[i] &= w
	}
}

// AndNotWith clears from s every cell marked in o.
func (s *Shadow) AndNotWith(o *Shadow) {
	s.sameSize(o)
	for i, w := range o.words {
		s.words[i] &^= w
	}
}

// Or returns s | o as a new shadow.
func (s *Shadow) Or(o *Shadow) *Shadow {
	c := s.Clone()
	c.OrWith(o)
	return c
}

// And returns s & o as a new shadow.
func (s *Shadow) And(o *Shadow) *Shadow {
	c := s.Clone()
	c.AndWith(o)
	return c
}

// Intersects reports whether s and o share any marked cell.
func (s *Shadow) Intersects(o *Shadow) bool {
	s.sameSize(o)
	for i, w := range s.words {
		if w&o.words[i] != 0 {
			return true
		}
	}
	return false
}

// Count returns the number of marked cells.
func (s *Shadow) Count() int {
	n := 0
	for _, w := range s.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// IntersectCount returns the number of cells marked in both s and o.
func (s *Shadow) IntersectCount(o *Shadow) int {
	s.sameSize(o)
	n := 0
	for i, w := range s.words {
		n += bits.OnesCount64(w & o.words[i])
	}
	return n
}

// Empty reports whether no cell is marked.
func (s *Shadow) Empty() bool {
	for _, w := range s.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Contains reports whether every cell marked in o is also marked in s.
func (s *Shadow) Contains(o *Shadow) bool {
	s.sameSize(o)
	for i, w := range o.words {
		if w&^s.words[i] != 0 {
			return false
		}
	}
	return true
}

// Equal reports whether s and o have the same size and cells.
func (s *Shadow) Equal(o *Shadow) bool {
	if s.cols != o.cols || s.rows != o.rows {
		return false
	}
	for i, w := range s.words {
		if w != o.words[i] {
			return false
		}
	}
	return true
}

// String renders the grid row by row, '#' for marked cells and '.' otherwise.
func (s *Shadow) String() string {
	var sb strings.Builder
	s.writeGrid(&sb)
	return sb.String()
}

func (s *Shadow) writeGrid(sb *strings.Builder) {
	for y := 0; y < s.rows; y++ {
		for x := 0; x < s.cols; x++ {
			if s.Has(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
}
