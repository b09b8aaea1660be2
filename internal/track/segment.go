package track

import "fmt"

// Segment is the static piece of track in one cell.
type Segment uint8

const (
	Empty Segment = iota
	Horizontal
	Vertical
	CurveForward
	CurveBackward
	Intersection
)

func (s Segment) String() string {
	switch s {
	case Empty:
		return "empty"
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case CurveForward:
		return "curve-forward"
	case CurveBackward:
		return "curve-backward"
	case Intersection:
		return "intersection"
	}
	return fmt.Sprintf("segment(%d)", s)
}

// Rune returns the map character for s.
func (s Segment) Rune() rune {
	switch s {
	case Horizontal:
		return '-'
	case Vertical:
		return '|'
	case CurveForward:
		return '/'
	case CurveBackward:
		return '\\'
	case Intersection:
		return '+'
	}
	return ' '
}

func (s Segment) IsCurve() bool {
	return s == CurveForward || s == CurveBackward
}

func (s Segment) IsStraight() bool {
	return s == Horizontal || s == Vertical
}

// segmentFromRune decodes a plain track character. Cart glyphs are not
// track and are handled by the parser.
func segmentFromRune(r rune) (Segment, bool) {
	switch r {
	case ' ':
		return Empty, true
	case '-':
		return Horizontal, true
	case '|':
		return Vertical, true
	case '/':
		return CurveForward, true
	case '\\':
		return CurveBackward, true
	case '+':
		return Intersection, true
	}
	return Empty, false
}

// underlying is the straight segment implied beneath a cart facing h.
func underlying(h Heading) Segment {
	if h == East || h == West {
		return Horizontal
	}
	return Vertical
}
