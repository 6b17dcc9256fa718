package core

import (
	"fmt"
	"strings"
)

// RenderASCII dumps a level for debugging and golden tests.
//
// Format:
//   - a summary line with tile, unlocked and visible counts
//   - staging slots as index:color pairs, then archive totals
//   - each layer's own footprint, top layer last, '#' occupied '.' empty
func RenderASCII(l *Level) string {
	var sb strings.Builder
	b := l.board
	cols, rows, layers := b.Dims()

	sb.WriteString(fmt.Sprintf("Tiles: %d | Unlocked: %d | Visible: %d | Board: %dx%dx%d\n",
		b.Len(), len(b.unlocked), len(b.visible), cols, rows, layers))

	sb.WriteString(fmt.Sprintf("Staging %d/%d:", l.staging.Used(), l.staging.Capacity()))
	if l.staging.Used() == 0 {
		sb.WriteString(" (empty)")
	}
	for _, t := range l.staging.tiles {
		sb.WriteString(fmt.Sprintf(" %d:%d", t.Index, t.Color))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Completed: %d\n", l.archive.Total()))

	for z := 0; z < layers; z++ {
		sb.WriteString(fmt.Sprintf("Layer Z=%d:\n", z))
		b.shadows.Self(z).writeGrid(&sb)
	}
	return sb.String()
}

// RenderColors draws each layer with the color of the tile whose top face
// covers a cell, one character per color (0-9, a-z, A-Z). Locked tiles
// print '*' and unspecified colors '?'.
func RenderColors(l *Level) string {
	var sb strings.Builder
	_, _, layers := l.board.Dims()
	for z := 0; z < layers; z++ {
		sb.WriteString(fmt.Sprintf("Layer Z=%d:\n", z))
		sb.WriteString(RenderColorLayer(l, z))
	}
	return sb.String()
}

// RenderColorLayer draws one layer the way RenderColors does, without
// the heading.
func RenderColorLayer(l *Level, z int) string {
	var sb strings.Builder
	cols, rows, _ := l.board.Dims()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			sb.WriteByte(cellChar(l.board, P(x, y, z)))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

const colorDigits = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

func cellChar(b *Board, p Pos) byte {
	t, ok := b.At(p)
	if !ok || t.topZ != p.Z() {
		return '.'
	}
	if t.Color < 0 || t.Color >= len(colorDigits) {
		return '?'
	}
	if t.locked {
		return '*'
	}
	return colorDigits[t.Color]
}
