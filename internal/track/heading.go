package track

import "fmt"

// Heading is the direction a cart faces. Values are ordered clockwise so
// that turning is modular arithmetic.
type Heading uint8

const (
	North Heading = iota
	East
	South
	West
)

var headingNames = [...]string{"north", "east", "south", "west"}

func (h Heading) String() string {
	if int(h) < len(headingNames) {
		return headingNames[h]
	}
	return fmt.Sprintf("heading(%d)", h)
}

func (h Heading) Delta() (dx, dy int) {
	switch h {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case East:
		return 1, 0
	case West:
		return -1, 0
	}
	return 0, 0
}

// Left rotates 90 degrees counter-clockwise.
func (h Heading) Left() Heading { return (h + 3) % 4 }

// Right rotates 90 degrees clockwise.
func (h Heading) Right() Heading { return (h + 1) % 4 }

// Glyph returns the map character for a cart facing h.
func (h Heading) Glyph() rune {
	switch h {
	case North:
		return '^'
	case South:
		return 'v'
	case East:
		return '>'
	case West:
		return '<'
	}
	return '?'
}

// HeadingFromGlyph reports the heading encoded by a cart character.
func HeadingFromGlyph(r rune) (Heading, bool) {
	switch r {
	case '^':
		return North, true
	case 'v':
		return South, true
	case '>':
		return East, true
	case '<':
		return West, true
	}
	return 0, false
}

// Turn is a choice made at an intersection.
type Turn uint8

const (
	TurnLeft Turn = iota
	TurnStraight
	TurnRight
)

// turnCycle is the order in which a cart picks turns at successive
// intersections.
var turnCycle = [3]Turn{TurnLeft, TurnStraight, TurnRight}

func (t Turn) String() string {
	switch t {
	case TurnLeft:
		return "left"
	case TurnStraight:
		return "straight"
	case TurnRight:
		return "right"
	}
	return fmt.Sprintf("turn(%d)", t)
}

// TurnForPhase maps a cart's intersection counter to its next turn.
func TurnForPhase(phase int) Turn {
	return turnCycle[phase%len(turnCycle)]
}

// Apply returns the heading after taking turn t.
func (h Heading) Apply(t Turn) Heading {
	switch t {
	case TurnLeft:
		return h.Left()
	case TurnRight:
		return h.Right()
	}
	return h
}

var curves = map[Segment][4]Heading{
	//                 North  East   South  West
	CurveForward:  {East, North, West, South},
	CurveBackward: {West, South, East, North},
}

// Reflect returns the heading after entering curve seg facing h. The
// second result is false when seg is not a curve.
func (h Heading) Reflect(seg Segment) (Heading, bool) {
	table, ok := curves[seg]
	if !ok || int(h) >= len(table) {
		return h, false
	}
	return table[h], true
}
