package sim

import (
	"fmt"

	"github.com/san-kum/cartsim/internal/cart"
	"github.com/san-kum/cartsim/internal/track"
)

// Status is the engine state: Running while more than one cart is active,
// Done otherwise.
type Status uint8

const (
	Running Status = iota
	Done
)

func (s Status) String() string {
	if s == Running {
		return "running"
	}
	return "done"
}

// Collision is a crash between two carts. CartIDs holds the cart that just
// moved followed by the cart it hit.
type Collision struct {
	Tick    int
	Pos     track.Coord
	CartIDs [2]int
}

func (c Collision) String() string {
	return fmt.Sprintf("tick %d: carts %d and %d at %s", c.Tick, c.CartIDs[0], c.CartIDs[1], c.Pos)
}

// Frame is what observers and metrics see after each tick.
type Frame struct {
	Tick       int
	Carts      []cart.Cart
	Collisions []Collision
	Active     int
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(f Frame)
}

type Config struct {
	MaxTicks int
}

func DefaultConfig() Config {
	return Config{MaxTicks: 100000}
}

type Result struct {
	FirstCollision *Collision
	Survivor       *cart.Cart
	Collisions     []Collision
	Ticks          int
	Metrics        map[string]float64
}
