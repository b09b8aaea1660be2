package track

import "fmt"

// Coord is a cell on the map. X grows to the right, Y grows downward,
// matching the order input lines are read.
type Coord struct {
	X int
	Y int
}

func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String formats the coordinate the way puzzle answers are written.
func (c Coord) String() string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

func (c Coord) Step(h Heading) Coord {
	dx, dy := h.Delta()
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Less orders coordinates top row first, then left to right.
func (c Coord) Less(other Coord) bool {
	if c.Y != other.Y {
		return c.Y < other.Y
	}
	return c.X < other.X
}
