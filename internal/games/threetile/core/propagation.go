package core

import (
	"fmt"
	"strings"
)

// Propagation selects how footprints above a layer block it.
type Propagation uint8

const (
	// PropagationDirectOnly blocks a layer only by the layer immediately above.
	PropagationDirectOnly Propagation = iota
	// PropagationCascade blocks a layer by every layer above it.
	PropagationCascade
)

// String returns the config name of the policy.
func (p Propagation) String() string {
	switch p {
	case PropagationDirectOnly:
		return "direct"
	case PropagationCascade:
		return "cascade"
	default:
		return "unknown"
	}
}

// ParsePropagation parses a policy name. The empty string selects direct.
func ParsePropagation(s string) (Propagation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "direct", "directonly", "direct_only":
		return PropagationDirectOnly, nil
	case "cascade":
		return PropagationCascade, nil
	default:
		return 0, fmt.Errorf("%w: unknown propagation %q", ErrInvalidRules, s)
	}
}

// ShadowManager holds each layer's own footprint and the blockage coming
// from above it.
type ShadowManager struct {
	policy   Propagation
	cols     int
	rows     int
	self     []*Shadow
	incoming []*Shadow
}

// NewShadowManager allocates layers shadows of cols x rows cells each.
func NewShadowManager(policy Propagation, cols, rows, layers int) *ShadowManager {
	if layers <= 0 {
		fatalf(ErrOutOfRange, "layer count %d", layers)
	}
	m := &ShadowManager{
		policy:   policy,
		cols:     cols,
		rows:     rows,
		self:     make([]*Shadow, layers),
		incoming: make([]*Shadow, layers),
	}
	for z := 0; z < layers; z++ {
		m.self[z] = NewShadow(cols, rows)
		m.incoming[z] = NewShadow(cols, rows)
	}
	return m
}

// Policy returns the propagation policy.
func (m *ShadowManager) Policy() Propagation { return m.policy }

// Layers returns the number of layers.
func (m *ShadowManager) Layers() int { return len(m.self) }

// Cols returns the layer width.
func (m *ShadowManager) Cols() int { return m.cols }

// Rows returns the layer height.
func (m *ShadowManager) Rows() int { return m.rows }

func (m *ShadowManager) layer(z int) {
	if z < 0 || z >= len(m.self) {
		fatalf(ErrOutOfRange, "layer %d outside 0..%d", z, len(m.self)-1)
	}
}

// Self returns the footprint shadow of layer z. Callers must not mutate it.
func (m *ShadowManager) Self(z int) *Shadow {
	m.layer(z)
	return m.self[z]
}

// Incoming returns the blockage shadow of layer z. Callers must not mutate it.
func (m *ShadowManager) Incoming(z int) *Shadow {
	m.layer(z)
	return m.incoming[z]
}

// AddSelf marks cells in the footprint of layer z. Call Rebuild afterwards.
func (m *ShadowManager) AddSelf(z int, cells []Pos) {
	m.layer(z)
	for _, c := range cells {
		m.self[z].Add(c)
	}
}

// RemoveSelf clears cells from the footprint of layer z. Call Rebuild afterwards.
func (m *ShadowManager) RemoveSelf(z int, cells []Pos) {
	m.layer(z)
	for _, c := range cells {
		m.self[z].Remove(c)
	}
}

// Rebuild recomputes every incoming shadow from the top layer down.
func (m *ShadowManager) Rebuild() {
	top := len(m.self) - 1
	m.incoming[top].Clear()
	for z := top - 1; z >= 0; z-- {
		switch m.policy {
		case PropagationCascade:
			m.incoming[z].CopyFrom(m.incoming[z+1])
			m.incoming[z].OrWith(m.self[z+1])
		default:
			m.incoming[z].CopyFrom(m.self[z+1])
		}
	}
}

// Covered reports whether the x/y cell of p is blocked from above on layer p.Z().
func (m *ShadowManager) Covered(p Pos) bool {
	z := p.Z()
	m.layer(z)
	return m.incoming[z].Exists(p)
}

// IntersectsIncoming reports whether s overlaps the blockage on layer z.
func (m *ShadowManager) IntersectsIncoming(z int, s *Shadow) bool {
	m.layer(z)
	return m.incoming[z].Intersects(s)
}

// IncomingIntersectCount counts the cells of s blocked on layer z.
func (m *ShadowManager) IncomingIntersectCount(z int, s *Shadow) int {
	m.layer(z)
	return m.incoming[z].IntersectCount(s)
}

// Clone returns an independent copy.
func (m *ShadowManager) Clone() *ShadowManager {
	c := &ShadowManager{
		policy:   m.policy,
		cols:     m.cols,
		rows:     m.rows,
		self:     make([]*Shadow, len(m.self)),
		incoming: make([]*Shadow, len(m.incoming)),
	}
	for z := range m.self {
		c.self[z] = m.self[z].Clone()
		c.incoming[z] = m.incoming[z].Clone()
	}
	return c
}
