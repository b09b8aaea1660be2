package sim

import "github.com/san-kum/cartsim/internal/cart"

// Resolve checks whether moved now shares a cell with another active cart.
// On a hit both carts are crashed and the collision is returned. Only the
// first cart found is paired with moved.
func Resolve(active []*cart.Cart, moved *cart.Cart) (Collision, bool) {
	for _, other := range active {
		if other.ID == moved.ID || !other.Alive {
			continue
		}
		if other.Pos == moved.Pos {
			moved.Crash()
			other.Crash()
			return Collision{Pos: moved.Pos, CartIDs: [2]int{moved.ID, other.ID}}, true
		}
	}
	return Collision{}, false
}
