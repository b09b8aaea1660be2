package track

import (
	"bufio"
	"io"
	"strings"
)

// Spawn is a cart found on the input map: its scan ordinal, position and
// initial heading.
type Spawn struct {
	ID      int
	Pos     Coord
	Heading Heading
}

// Layout is the result of parsing a map.
type Layout struct {
	Grid   *Grid
	Spawns []Spawn
}

func Parse(r io.Reader) (*Layout, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ParseLines(lines)
}

func ParseString(s string) (*Layout, error) {
	return Parse(strings.NewReader(s))
}

// ParseLines builds the grid from raw rows. Cart glyphs become the straight
// track beneath them and are registered as spawns in row-major order.
func ParseLines(lines []string) (*Layout, error) {
	rows := make([][]Segment, len(lines))
	var spawns []Spawn

	for y, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		row := make([]Segment, 0, len(line))
		x := 0
		for _, r := range line {
			if h, ok := HeadingFromGlyph(r); ok {
				spawns = append(spawns, Spawn{ID: len(spawns), Pos: C(x, y), Heading: h})
				row = append(row, underlying(h))
				x++
				continue
			}
			seg, ok := segmentFromRune(r)
			if !ok {
				return nil, &InvalidCharError{Row: y, Col: x, Char: r}
			}
			row = append(row, seg)
			x++
		}
		rows[y] = row
	}

	return &Layout{Grid: newGrid(rows), Spawns: spawns}, nil
}
