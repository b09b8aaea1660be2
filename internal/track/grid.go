package track

import (
	"fmt"
	"strings"
)

// Grid is a rectangular table of segments, indexed row first. It is never
// modified after parsing.
type Grid struct {
	width  int
	height int
	cells  [][]Segment
}

func newGrid(rows [][]Segment) *Grid {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	cells := make([][]Segment, len(rows))
	for y, row := range rows {
		cells[y] = make([]Segment, width)
		copy(cells[y], row)
	}
	return &Grid{width: width, height: len(rows), cells: cells}
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// SegmentAt returns the segment at c, or an error wrapping ErrOutOfBounds.
func (g *Grid) SegmentAt(c Coord) (Segment, error) {
	if !g.InBounds(c) {
		return Empty, fmt.Errorf("%w: %s outside %dx%d", ErrOutOfBounds, c, g.width, g.height)
	}
	return g.cells[c.Y][c.X], nil
}

// Render draws the grid as text. Overlay characters replace the track at
// their coordinate; coordinates outside the grid are ignored.
func (g *Grid) Render(overlay map[Coord]rune) string {
	var b strings.Builder
	row := make([]rune, g.width)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			row[x] = g.cells[y][x].Rune()
			if r, ok := overlay[C(x, y)]; ok {
				row[x] = r
			}
		}
		b.WriteString(strings.TrimRight(string(row), " "))
		if y < g.height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Equal reports whether two grids hold the same segments.
func (g *Grid) Equal(other *Grid) bool {
	if g.width != other.width || g.height != other.height {
		return false
	}
	for y := range g.cells {
		for x := range g.cells[y] {
			if g.cells[y][x] != other.cells[y][x] {
				return false
			}
		}
	}
	return true
}
