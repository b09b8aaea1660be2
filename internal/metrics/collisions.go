package metrics

import "github.com/san-kum/cartsim/internal/sim"

// Collisions counts crash events over a run.
type Collisions struct {
	name  string
	count int
}

func NewCollisions() *Collisions {
	return &Collisions{name: "collisions"}
}

func (c *Collisions) Name() string { return c.name }

func (c *Collisions) Observe(f sim.Frame) {
	c.count += len(f.Collisions)
}

func (c *Collisions) Value() float64 { return float64(c.count) }

func (c *Collisions) Reset() { c.count = 0 }

// Lifetime is the mean tick at which crashed carts were destroyed.
type Lifetime struct {
	name    string
	sum     int
	crashed int
}

func NewLifetime() *Lifetime {
	return &Lifetime{name: "mean_lifetime"}
}

func (l *Lifetime) Name() string { return l.name }

func (l *Lifetime) Observe(f sim.Frame) {
	for _, col := range f.Collisions {
		l.sum += 2 * col.Tick
		l.crashed += 2
	}
}

func (l *Lifetime) Value() float64 {
	if l.crashed == 0 {
		return 0
	}
	return float64(l.sum) / float64(l.crashed)
}

func (l *Lifetime) Reset() {
	l.sum = 0
	l.crashed = 0
}
