package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/cartsim/internal/track"
)

var (
	// ErrNoSurvivor indicates every cart was destroyed, leaving no last cart.
	ErrNoSurvivor = errors.New("sim: no cart survived")

	// ErrDidNotConverge indicates the tick limit was reached with several carts still running.
	ErrDidNotConverge = errors.New("sim: simulation did not converge")
)

// SimulationError wraps a failed cart move with the tick it happened on.
type SimulationError struct {
	Tick    int
	CartID  int
	Pos     track.Coord
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("tick %d: cart %d at %s: %v", e.Tick, e.CartID, e.Pos, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
