package sim

import (
	"context"
	"fmt"
	"sort"

	"github.com/san-kum/cartsim/internal/cart"
	"github.com/san-kum/cartsim/internal/track"
)

// Engine advances carts over a grid one tick at a time. It owns the cart
// collection; nothing outside the engine mutates a cart.
type Engine struct {
	grid       *track.Grid
	carts      []*cart.Cart
	active     []*cart.Cart
	tick       int
	first      *Collision
	collisions []Collision
	metrics    []Metric
	observers  []Observer
}

func New(layout *track.Layout) *Engine {
	carts := cart.FromLayout(layout)
	active := make([]*cart.Cart, len(carts))
	copy(active, carts)
	return &Engine{
		grid:      layout.Grid,
		carts:     carts,
		active:    active,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

// AddMetric resets m and attaches it. Metrics cover every tick stepped after
// they are added, whether through Step or Run.
func (e *Engine) AddMetric(m Metric) {
	m.Reset()
	e.metrics = append(e.metrics, m)
}

func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

func (e *Engine) Grid() *track.Grid { return e.grid }
func (e *Engine) Tick() int         { return e.tick }

func (e *Engine) Status() Status {
	if len(e.active) > 1 {
		return Running
	}
	return Done
}

// Carts returns a copy of every cart, crashed ones included, in ID order.
func (e *Engine) Carts() []cart.Cart {
	out := make([]cart.Cart, len(e.carts))
	for i, c := range e.carts {
		out[i] = *c
	}
	return out
}

func (e *Engine) ActiveCount() int { return len(e.active) }

// FirstCollision returns the earliest crash of the run, if any.
func (e *Engine) FirstCollision() (Collision, bool) {
	if e.first == nil {
		return Collision{}, false
	}
	return *e.first, true
}

// Step runs one tick. Carts move in (y, x) order as of the start of the
// tick; each move is checked for a crash before the next cart moves, and
// crashed carts are removed at once. Step does nothing once the engine is
// Done.
func (e *Engine) Step() ([]Collision, error) {
	if e.Status() == Done {
		return nil, nil
	}

	order := make([]*cart.Cart, len(e.active))
	copy(order, e.active)
	sort.Slice(order, func(i, j int) bool {
		return order[i].Pos.Less(order[j].Pos)
	})

	e.tick++
	var crashes []Collision

	for _, c := range order {
		if !c.Alive {
			continue
		}
		if err := c.Advance(e.grid); err != nil {
			// crashes earlier in the tick still reach observers
			e.notify(crashes)
			return crashes, &SimulationError{Tick: e.tick, CartID: c.ID, Pos: c.Pos, Wrapped: err}
		}

		col, ok := Resolve(e.active, c)
		if !ok {
			continue
		}
		col.Tick = e.tick
		e.removeCrashed()
		e.record(col)
		crashes = append(crashes, col)
	}

	e.notify(crashes)
	return crashes, nil
}

// Run steps until at most one cart is left. With no survivor the partial
// result is returned together with ErrNoSurvivor.
func (e *Engine) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	for e.Status() == Running {
		select {
		case <-ctx.Done():
			return e.result(), ctx.Err()
		default:
		}

		if e.tick >= cfg.MaxTicks {
			return e.result(), fmt.Errorf("%w: %d carts still running after %d ticks", ErrDidNotConverge, len(e.active), e.tick)
		}

		if _, err := e.Step(); err != nil {
			return e.result(), err
		}
	}

	res := e.result()
	if res.Survivor == nil {
		return res, ErrNoSurvivor
	}
	return res, nil
}

func validateConfig(cfg Config) error {
	if cfg.MaxTicks <= 0 {
		return fmt.Errorf("max ticks must be positive, got %d", cfg.MaxTicks)
	}
	return nil
}

func (e *Engine) removeCrashed() {
	alive := e.active[:0]
	for _, c := range e.active {
		if c.Alive {
			alive = append(alive, c)
		}
	}
	for i := len(alive); i < len(e.active); i++ {
		e.active[i] = nil
	}
	e.active = alive
}

func (e *Engine) record(col Collision) {
	if e.first == nil {
		first := col
		e.first = &first
	}
	e.collisions = append(e.collisions, col)
}

func (e *Engine) notify(crashes []Collision) {
	if len(e.metrics) == 0 && len(e.observers) == 0 {
		return
	}
	f := Frame{
		Tick:       e.tick,
		Carts:      e.Carts(),
		Collisions: crashes,
		Active:     len(e.active),
	}
	for _, m := range e.metrics {
		m.Observe(f)
	}
	for _, o := range e.observers {
		o.OnTick(f)
	}
}

func (e *Engine) result() *Result {
	res := &Result{
		Collisions: append([]Collision(nil), e.collisions...),
		Ticks:      e.tick,
		Metrics:    make(map[string]float64),
	}
	if first, ok := e.FirstCollision(); ok {
		res.FirstCollision = &first
	}
	if e.Status() == Done && len(e.active) == 1 {
		survivor := *e.active[0]
		res.Survivor = &survivor
	}
	for _, m := range e.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	return res
}
