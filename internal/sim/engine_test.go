package sim_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cartsim/internal/cart"
	"github.com/san-kum/cartsim/internal/sim"
	"github.com/san-kum/cartsim/internal/track"
)

const crashLoop = `/->-\
|   |  /----\
| /-+--+-\  |
| | |  | v  |
\-+-/  \-+--/
  \------/   `

const survivorMap = `/>-<\
|   |
| /<+-\
| | | v
\>+</ |
  |   ^
  \<->/`

const threeCarts = `/--------\
|        |
\->-<-->-/`

const headOn = `/--------\
|        |
\-><--->-/`

const twoLoops = `/>\ /<\
\-/ \-/`

func newEngine(m string) *sim.Engine {
	layout, err := track.ParseString(m)
	Expect(err).NotTo(HaveOccurred())
	return sim.New(layout)
}

// frameLog checks tick-level invariants as the engine runs.
type frameLog struct {
	prevActive int
	frames     []sim.Frame
}

func (l *frameLog) OnTick(f sim.Frame) {
	Expect(l.prevActive-f.Active).To(Equal(2*len(f.Collisions)),
		"active carts must drop by two per collision on tick %d", f.Tick)
	for _, col := range f.Collisions {
		a, b := f.Carts[col.CartIDs[0]], f.Carts[col.CartIDs[1]]
		Expect(a.Pos).To(Equal(col.Pos))
		Expect(b.Pos).To(Equal(col.Pos))
		Expect(a.Alive).To(BeFalse())
		Expect(b.Alive).To(BeFalse())
	}
	l.prevActive = f.Active
	l.frames = append(l.frames, f)
}

var _ = Describe("Engine", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Context("with two carts on a looping track", func() {
		It("reports the first crash and no survivor", func() {
			e := newEngine(crashLoop)
			res, err := e.Run(ctx, sim.DefaultConfig())

			Expect(errors.Is(err, sim.ErrNoSurvivor)).To(BeTrue())
			Expect(res).NotTo(BeNil())
			Expect(res.FirstCollision).NotTo(BeNil())
			Expect(res.FirstCollision.Pos).To(Equal(track.C(7, 3)))
			Expect(res.Survivor).To(BeNil())
			Expect(e.ActiveCount()).To(BeZero())
		})
	})

	Context("with many carts", func() {
		It("runs until one cart is left", func() {
			e := newEngine(survivorMap)
			log := &frameLog{prevActive: e.ActiveCount()}
			e.AddObserver(log)

			res, err := e.Run(ctx, sim.DefaultConfig())
			Expect(err).NotTo(HaveOccurred())

			Expect(res.FirstCollision.Pos).To(Equal(track.C(2, 0)))
			Expect(res.FirstCollision.Tick).To(Equal(1))
			Expect(res.Survivor).NotTo(BeNil())
			Expect(res.Survivor.Pos).To(Equal(track.C(6, 4)))
			Expect(res.Collisions).To(HaveLen(4))
			Expect(e.Status()).To(Equal(sim.Done))
			Expect(log.frames).To(HaveLen(res.Ticks))
		})

		It("keeps the first collision once later crashes happen", func() {
			e := newEngine(survivorMap)
			res, err := e.Run(ctx, sim.DefaultConfig())
			Expect(err).NotTo(HaveOccurred())

			first, ok := e.FirstCollision()
			Expect(ok).To(BeTrue())
			Expect(first).To(Equal(res.Collisions[0]))
			Expect(*res.FirstCollision).To(Equal(res.Collisions[0]))
		})

		It("is deterministic", func() {
			a, errA := newEngine(survivorMap).Run(ctx, sim.DefaultConfig())
			b, errB := newEngine(survivorMap).Run(ctx, sim.DefaultConfig())
			Expect(errA).NotTo(HaveOccurred())
			Expect(errB).NotTo(HaveOccurred())

			Expect(a.FirstCollision).To(Equal(b.FirstCollision))
			Expect(a.Survivor).To(Equal(b.Survivor))
			Expect(a.Collisions).To(Equal(b.Collisions))
			Expect(a.Ticks).To(Equal(b.Ticks))
		})
	})

	Context("with a single cart", func() {
		It("is done before any tick", func() {
			e := newEngine("/>-\\\n\\--/")
			Expect(e.Status()).To(Equal(sim.Done))

			res, err := e.Run(ctx, sim.DefaultConfig())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Ticks).To(BeZero())
			Expect(res.FirstCollision).To(BeNil())
			Expect(res.Survivor.Pos).To(Equal(track.C(1, 0)))
		})

		It("ignores Step once done", func() {
			e := newEngine("/>-\\\n\\--/")
			crashes, err := e.Step()
			Expect(err).NotTo(HaveOccurred())
			Expect(crashes).To(BeEmpty())
			Expect(e.Tick()).To(BeZero())
		})
	})

	Context("with no carts", func() {
		It("has no survivor", func() {
			res, err := newEngine("/-\\\n\\-/").Run(ctx, sim.DefaultConfig())
			Expect(errors.Is(err, sim.ErrNoSurvivor)).To(BeTrue())
			Expect(res.Ticks).To(BeZero())
		})
	})

	Context("when two carts crash and a third moves later in the same tick", func() {
		It("completes the tick and reports the survivor", func() {
			e := newEngine(threeCarts)
			crashes, err := e.Step()
			Expect(err).NotTo(HaveOccurred())

			Expect(crashes).To(HaveLen(1))
			Expect(crashes[0].Pos).To(Equal(track.C(3, 2)))
			Expect(crashes[0].CartIDs).To(Equal([2]int{1, 0}))
			Expect(e.Status()).To(Equal(sim.Done))

			res, err := e.Run(ctx, sim.DefaultConfig())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Ticks).To(Equal(1))
			Expect(res.Survivor.ID).To(Equal(2))
			Expect(res.Survivor.Pos).To(Equal(track.C(8, 2)))
		})

		It("skips a cart that was hit before its turn to move", func() {
			e := newEngine(headOn)
			crashes, err := e.Step()
			Expect(err).NotTo(HaveOccurred())

			Expect(crashes).To(HaveLen(1))
			Expect(crashes[0].CartIDs).To(Equal([2]int{0, 1}))
			Expect(crashes[0].Pos).To(Equal(track.C(3, 2)))

			carts := e.Carts()
			Expect(carts[1].Pos).To(Equal(track.C(3, 2)), "struck cart must not move")
			Expect(carts[1].Alive).To(BeFalse())
			Expect(carts[2].Pos).To(Equal(track.C(8, 2)))
		})
	})

	Context("when carts never meet", func() {
		It("fails after the tick limit", func() {
			res, err := newEngine(twoLoops).Run(ctx, sim.Config{MaxTicks: 50})
			Expect(errors.Is(err, sim.ErrDidNotConverge)).To(BeTrue())
			Expect(res.Ticks).To(Equal(50))
			Expect(res.FirstCollision).To(BeNil())
		})

		It("stops when the context is canceled", func() {
			canceled, cancel := context.WithCancel(ctx)
			cancel()

			_, err := newEngine(twoLoops).Run(canceled, sim.DefaultConfig())
			Expect(err).To(MatchError(context.Canceled))
		})
	})

	Context("with an inconsistent map", func() {
		It("surfaces a derailment", func() {
			_, err := newEngine("-> \n-<").Run(ctx, sim.DefaultConfig())
			Expect(errors.Is(err, cart.ErrDerailed)).To(BeTrue())

			var simErr *sim.SimulationError
			Expect(errors.As(err, &simErr)).To(BeTrue())
			Expect(simErr.Tick).To(Equal(1))
			Expect(simErr.CartID).To(Equal(0))
		})

		It("reports crashes that happened earlier in the failing tick", func() {
			e := newEngine("-><-\n-> ")
			history := sim.NewHistory(e.ActiveCount())
			e.AddObserver(history)

			crashes, err := e.Step()
			Expect(errors.Is(err, cart.ErrDerailed)).To(BeTrue())
			Expect(crashes).To(HaveLen(1))

			Expect(history.Active).To(Equal([]int{1}))
			Expect(history.Collisions).To(HaveLen(1))
			Expect(history.Collisions[0].Pos).To(Equal(track.C(2, 0)))
			Expect(history.Collisions[0].Tick).To(Equal(1))

			first, ok := e.FirstCollision()
			Expect(ok).To(BeTrue())
			Expect(first).To(Equal(history.Collisions[0]))
		})

		It("surfaces a cart leaving the grid", func() {
			_, err := newEngine("->- \n<---").Run(ctx, sim.DefaultConfig())
			Expect(errors.Is(err, track.ErrOutOfBounds)).To(BeTrue())

			var simErr *sim.SimulationError
			Expect(errors.As(err, &simErr)).To(BeTrue())
			Expect(simErr.CartID).To(Equal(1))
		})
	})

	It("rejects a non-positive tick limit", func() {
		_, err := newEngine(survivorMap).Run(ctx, sim.Config{MaxTicks: 0})
		Expect(err).To(HaveOccurred())
	})

	It("fills metrics into the result", func() {
		e := newEngine(survivorMap)
		e.AddMetric(&countingMetric{})

		res, err := e.Run(ctx, sim.DefaultConfig())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Metrics).To(HaveKeyWithValue("frames", float64(res.Ticks)))
	})

	It("counts ticks stepped before Run in metrics", func() {
		e := newEngine(survivorMap)
		e.AddMetric(&countingMetric{n: 7})

		_, err := e.Step()
		Expect(err).NotTo(HaveOccurred())

		res, err := e.Run(ctx, sim.DefaultConfig())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Ticks).To(BeNumerically(">", 1))
		Expect(res.Metrics).To(HaveKeyWithValue("frames", float64(res.Ticks)))
	})
})

type countingMetric struct{ n int }

func (m *countingMetric) Name() string        { return "frames" }
func (m *countingMetric) Observe(_ sim.Frame) { m.n++ }
func (m *countingMetric) Value() float64      { return float64(m.n) }
func (m *countingMetric) Reset()              { m.n = 0 }
