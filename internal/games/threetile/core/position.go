package core

import "fmt"

// Pos is a packed board position: x in bits 0-7, y in bits 8-15, z in bits 16-23.
type Pos uint32

// MaxCoord is the largest value a single packed axis can hold.
const MaxCoord = 0xFF

// P packs x, y and z into a Pos. Each axis is truncated to a byte.
func P(x, y, z int) Pos {
	return Pos(uint32(x&MaxCoord) | uint32(y&MaxCoord)<<8 | uint32(z&MaxCoord)<<16)
}

// X returns the x axis.
func (p Pos) X() int { return int(p & MaxCoord) }

// Y returns the y axis.
func (p Pos) Y() int { return int(p >> 8 & MaxCoord) }

// Z returns the z (layer) axis.
func (p Pos) Z() int { return int(p >> 16 & MaxCoord) }

// Unpack returns all three axes.
func (p Pos) Unpack() (x, y, z int) {
	return p.X(), p.Y(), p.Z()
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X(), p.Y(), p.Z())
}

// Volume is the cell extent of a tile along each axis.
type Volume struct {
	DX, DY, DZ int
}

// DefaultVolume is the 2x2x1 footprint of a standard tile.
var DefaultVolume = Volume{DX: 2, DY: 2, DZ: 1}

// Pack encodes the volume in the packed position format.
func (v Volume) Pack() Pos { return P(v.DX, v.DY, v.DZ) }

// VolumeOf decodes a packed volume.
func VolumeOf(p Pos) Volume { return Volume{DX: p.X(), DY: p.Y(), DZ: p.Z()} }

// Valid reports whether every axis lies in 1..255.
func (v Volume) Valid() bool {
	return v.DX >= 1 && v.DX <= MaxCoord &&
		v.DY >= 1 && v.DY <= MaxCoord &&
		v.DZ >= 1 && v.DZ <= MaxCoord
}

// Area is the number of cells in one layer of the footprint.
func (v Volume) Area() int { return v.DX * v.DY }

// TopZ is the highest layer occupied by a tile placed at p.
func (v Volume) TopZ(p Pos) int { return p.Z() + v.DZ - 1 }

// Cells returns every cell occupied by a tile placed at p.
func (v Volume) Cells(p Pos) []Pos {
	px, py, pz := p.Unpack()
	out := make([]Pos, 0, v.Area()*v.DZ)
	for x := 0; x < v.DX; x++ {
		for y := 0; y < v.DY; y++ {
			for z := 0; z < v.DZ; z++ {
				out = append(out, P(px+x, py+y, pz+z))
			}
		}
	}
	return out
}

// TopCells returns the cells of the top face of a tile placed at p.
func (v Volume) TopCells(p Pos) []Pos {
	return v.layerCells(p, v.TopZ(p))
}

// DownCells returns the cells directly beneath a tile placed at p.
// A tile on layer 0 has nothing beneath it.
func (v Volume) DownCells(p Pos) []Pos {
	if p.Z() == 0 {
		return nil
	}
	return v.layerCells(p, p.Z()-1)
}

// UpCells returns the cells directly above the top face of a tile placed at p.
func (v Volume) UpCells(p Pos) []Pos {
	z := p.Z() + v.DZ
	if z > MaxCoord {
		return nil
	}
	return v.layerCells(p, z)
}

func (v Volume) layerCells(p Pos, z int) []Pos {
	px, py := p.X(), p.Y()
	out := make([]Pos, 0, v.Area())
	for x := 0; x < v.DX; x++ {
		for y := 0; y < v.DY; y++ {
			out = append(out, P(px+x, py+y, z))
		}
	}
	return out
}
