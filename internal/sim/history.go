package sim

// History records the number of active carts after every tick and each
// collision, for storage and plotting.
type History struct {
	Initial    int
	Active     []int
	Collisions []Collision
}

func NewHistory(initial int) *History {
	return &History{
		Initial: initial,
		Active:  make([]int, 0, 256),
	}
}

func (h *History) OnTick(f Frame) {
	h.Active = append(h.Active, f.Active)
	h.Collisions = append(h.Collisions, f.Collisions...)
}

// Series returns the active cart count starting with the count before the
// first tick.
func (h *History) Series() []float64 {
	out := make([]float64, 0, len(h.Active)+1)
	out = append(out, float64(h.Initial))
	for _, n := range h.Active {
		out = append(out, float64(n))
	}
	return out
}
