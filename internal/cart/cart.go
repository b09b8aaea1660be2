// Package cart models a mine cart moving over a track grid.
//
// A cart only knows its own position, heading and intersection counter;
// it never looks at other carts. Collisions are resolved by the sim package.
package cart

import (
	"errors"
	"fmt"

	"github.com/san-kum/cartsim/internal/track"
)

// ErrDerailed indicates a cart moved onto a cell with no track.
var ErrDerailed = errors.New("cart: derailed onto empty cell")

type Cart struct {
	ID        int
	Pos       track.Coord
	Heading   track.Heading
	TurnPhase int
	Alive     bool
}

func New(sp track.Spawn) *Cart {
	return &Cart{
		ID:      sp.ID,
		Pos:     sp.Pos,
		Heading: sp.Heading,
		Alive:   true,
	}
}

// FromLayout creates one cart per spawn, in spawn order.
func FromLayout(layout *track.Layout) []*Cart {
	carts := make([]*Cart, len(layout.Spawns))
	for i, sp := range layout.Spawns {
		carts[i] = New(sp)
	}
	return carts
}

// Advance moves the cart one cell along its heading and turns it according
// to the segment it lands on. The cart is unchanged if the move fails.
// Crashed carts do not move.
func (c *Cart) Advance(g *track.Grid) error {
	if !c.Alive {
		return nil
	}

	next := c.Pos.Step(c.Heading)
	seg, err := g.SegmentAt(next)
	if err != nil {
		return err
	}

	heading := c.Heading
	switch {
	case seg.IsStraight():
	case seg.IsCurve():
		heading, _ = heading.Reflect(seg)
	case seg == track.Intersection:
		heading = heading.Apply(track.TurnForPhase(c.TurnPhase))
		c.TurnPhase++
	default:
		return fmt.Errorf("%w at %s", ErrDerailed, next)
	}

	c.Pos = next
	c.Heading = heading
	return nil
}

// Crash takes the cart out of play. Its position and heading stay as they
// were at the moment of impact.
func (c *Cart) Crash() { c.Alive = false }

func (c *Cart) Glyph() rune {
	if !c.Alive {
		return 'X'
	}
	return c.Heading.Glyph()
}

func (c *Cart) String() string {
	return fmt.Sprintf("cart %d at %s facing %s", c.ID, c.Pos, c.Heading)
}
