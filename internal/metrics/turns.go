package metrics

import "github.com/san-kum/cartsim/internal/sim"

// IntersectionTurns is the total number of intersection visits made by all
// carts, crashed ones included.
type IntersectionTurns struct {
	name  string
	total int
}

func NewIntersectionTurns() *IntersectionTurns {
	return &IntersectionTurns{name: "intersection_turns"}
}

func (t *IntersectionTurns) Name() string { return t.name }

// Observe keeps the latest total; turn phases never decrease.
func (t *IntersectionTurns) Observe(f sim.Frame) {
	total := 0
	for _, c := range f.Carts {
		total += c.TurnPhase
	}
	t.total = total
}

func (t *IntersectionTurns) Value() float64 { return float64(t.total) }

func (t *IntersectionTurns) Reset() { t.total = 0 }

// Ticks counts observed ticks.
type Ticks struct {
	name  string
	count int
}

func NewTicks() *Ticks {
	return &Ticks{name: "ticks"}
}

func (t *Ticks) Name() string { return t.name }

func (t *Ticks) Observe(f sim.Frame) { t.count++ }

func (t *Ticks) Value() float64 { return float64(t.count) }

func (t *Ticks) Reset() { t.count = 0 }

// Defaults returns the metrics attached to every run.
func Defaults() []sim.Metric {
	return []sim.Metric{
		NewTicks(),
		NewCollisions(),
		NewLifetime(),
		NewIntersectionTurns(),
	}
}
