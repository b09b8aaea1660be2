package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/cartsim/internal/cart"
	"github.com/san-kum/cartsim/internal/sim"
	"github.com/san-kum/cartsim/internal/track"
)

const historyCapacity = 600

// Snapshot stores the carts after a tick for replay.
type Snapshot struct {
	Tick  int
	Carts []cart.Cart
}

type TickMsg time.Time

// Model drives an engine from the Bubble Tea event loop.
type Model struct {
	layout   *track.Layout
	name     string
	cfg      sim.Config
	fps      int
	engine   *sim.Engine
	history  *sim.History
	frames   []Snapshot
	playHead int
	running  bool
	err      error
	showHelp bool
}

func NewModel(layout *track.Layout, name string, cfg sim.Config, fps int) Model {
	if fps <= 0 {
		fps = 10
	}
	m := Model{
		layout: layout,
		name:   name,
		cfg:    cfg,
		fps:    fps,
	}
	m.reset()
	return m
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "space":
			m.running = !m.running
		case "n":
			if !m.running {
				m.playHead = -1
				m.step()
			}
		case "r":
			m.reset()
		case "[":
			m.scrub(-1)
		case "]":
			m.scrub(1)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			if m.playHead == -1 {
				m.step()
			} else {
				m.scrub(1)
			}
		}
		return m, m.tick()
	}
	return m, nil
}

// Finished reports whether the engine can make no further progress.
func (m Model) Finished() bool {
	return m.err != nil || m.engine.Status() == sim.Done
}

func (m Model) Err() error { return m.err }

func (m Model) Engine() *sim.Engine { return m.engine }

func (m *Model) step() {
	if m.Finished() {
		m.running = false
		return
	}
	if m.engine.Tick() >= m.cfg.MaxTicks {
		m.err = fmt.Errorf("%w after %d ticks", sim.ErrDidNotConverge, m.engine.Tick())
		m.running = false
		return
	}
	if _, err := m.engine.Step(); err != nil {
		m.err = err
		m.running = false
		return
	}

	m.frames = append(m.frames, Snapshot{Tick: m.engine.Tick(), Carts: m.engine.Carts()})
	if len(m.frames) > historyCapacity {
		m.frames = m.frames[1:]
	}
	if m.Finished() {
		m.running = false
	}
}

// scrub moves the replay position through recorded ticks. Moving past the
// newest frame returns to the live view.
func (m *Model) scrub(dir int) {
	if m.playHead == -1 {
		if len(m.frames) == 0 || dir > 0 {
			return
		}
		m.playHead = len(m.frames)
		m.running = false
	}
	m.playHead += dir
	if m.playHead < 0 {
		m.playHead = 0
	}
	if m.playHead >= len(m.frames) {
		m.playHead = -1
	}
}

// reset restarts from the parsed map.
func (m *Model) reset() {
	m.engine = sim.New(m.layout)
	m.history = sim.NewHistory(m.engine.ActiveCount())
	m.engine.AddObserver(m.history)
	m.frames = make([]Snapshot, 0, historyCapacity)
	m.playHead = -1
	m.err = nil
	m.running = m.engine.Status() == sim.Running
}

func (m Model) status() string {
	switch {
	case m.err != nil:
		return StatusFailed.Render("FAILED")
	case m.playHead != -1:
		return StatusPaused.Render(fmt.Sprintf("REPLAY (tick %d)", m.frames[m.playHead].Tick))
	case m.engine.Status() == sim.Done:
		return StatusRunning.Render("DONE")
	case !m.running:
		return StatusPaused.Render("PAUSED")
	}
	return StatusRunning.Render("RUNNING")
}

// View renders the TUI interface.
func (m Model) View() string {
	tick, carts := m.engine.Tick(), m.engine.Carts()
	if m.playHead != -1 {
		snap := m.frames[m.playHead]
		tick, carts = snap.Tick, snap.Carts
	}

	var left strings.Builder
	left.WriteString(HeaderStyle.Render(strings.ToUpper(m.name)) + "\n")
	left.WriteString(m.status() + "\n")
	left.WriteString(mapStyle.Render(RenderMap(m.engine.Grid(), carts)))

	active := 0
	for _, c := range carts {
		if c.Alive {
			active++
		}
	}

	var right strings.Builder
	right.WriteString(stat("tick", fmt.Sprintf("%d", tick)))
	right.WriteString(stat("active", fmt.Sprintf("%d/%d", active, len(carts))))
	if len(carts) > 0 {
		right.WriteString(ProgressBar(float64(active)/float64(len(carts)), 24) + "\n")
	}

	first := "none"
	if col, ok := m.engine.FirstCollision(); ok {
		first = col.Pos.String()
	}
	right.WriteString(stat("first crash", first))

	if m.engine.Status() == sim.Done && m.engine.ActiveCount() == 1 {
		for _, c := range m.engine.Carts() {
			if c.Alive {
				right.WriteString(stat("last cart", c.Pos.String()))
			}
		}
	}
	if m.err != nil {
		right.WriteString(StatusFailed.Render(m.err.Error()) + "\n")
	}

	if series := m.history.Series(); len(series) > 1 {
		graph := asciigraph.Plot(series,
			asciigraph.Height(8),
			asciigraph.Width(32),
			asciigraph.Caption("active carts"),
		)
		right.WriteString(graphStyle.Render(graph))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, left.String(), statsStyle.Render(right.String()))

	help := "space pause • n step • r restart • [ ] replay • ? help • q quit"
	if m.showHelp {
		help = "space: pause/resume\nn: single tick while paused\nr: restart from the initial map\n[ ]: step through recorded ticks\nq: quit"
	}
	return body + "\n" + KeyHint.Render(help) + "\n"
}

func stat(label, value string) string {
	return MetricLabel.Render(label) + MetricValue.Render(value) + "\n"
}
