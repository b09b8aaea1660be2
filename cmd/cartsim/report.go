package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/san-kum/cartsim/internal/sim"
	"github.com/san-kum/cartsim/internal/track"
	"github.com/san-kum/cartsim/internal/viz"
	"github.com/sirupsen/logrus"
)

// report prints the two answers of a run followed by its metrics.
func report(w io.Writer, res *sim.Result) {
	first := "none"
	if res.FirstCollision != nil {
		first = res.FirstCollision.Pos.String()
	}
	last := "none"
	if res.Survivor != nil {
		last = res.Survivor.Pos.String()
	}

	fmt.Fprintf(w, "first crash: %s\n", first)
	fmt.Fprintf(w, "last cart: %s\n", last)
	fmt.Fprintf(w, "ticks: %d\n", res.Ticks)

	if len(res.Metrics) == 0 {
		return
	}
	names := make([]string, 0, len(res.Metrics))
	for name := range res.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "\nmetrics:")
	for _, name := range names {
		fmt.Fprintf(w, "  %s: %.2f\n", name, res.Metrics[name])
	}
}

func coordOrNone(c *track.Coord) string {
	if c == nil {
		return "-"
	}
	return c.String()
}

// logObserver logs crashes at debug level and the map after each tick at
// trace level.
type logObserver struct {
	grid *track.Grid
}

func (o *logObserver) OnTick(f sim.Frame) {
	for _, col := range f.Collisions {
		log.WithField("active", f.Active).Debugf("crash %s", col)
	}
	if log.IsLevelEnabled(logrus.TraceLevel) {
		log.WithField("tick", f.Tick).Trace("\n" + viz.RenderPlain(o.grid, f.Carts))
	}
}
