package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/san-kum/gravsim/internal/integrators"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/sim"
)

const (
	width           = 60
	height          = 22
	historyCapacity = 600
	trailCapacity   = 300
	maxStepsFrame   = 512
	frameInterval   = time.Second / 30
)

type TickMsg time.Time

// point is a trail dot. gap marks the first dot after the body was off
// canvas, so no line joins it to the previous one.
type point struct {
	x, y int
	gap  bool
}

// Model is a bubbletea model that advances a simulation on every tick and
// draws the bodies with their recent trails.
type Model struct {
	name          string
	initial       []physics.Body
	params        sim.Params
	integrator    string
	logger        *log.Logger
	sim           *sim.Simulation
	drift         *metrics.EnergyDrift
	divergence    *metrics.Divergence
	canvas        *Canvas
	view          Viewport
	trails        [][]point
	offscreen     []bool
	energyHistory []float64
	stepsPerFrame int
	running       bool
	err           error
}

// NewModel builds a live view for the bodies. The viewport is fitted to the
// initial positions.
func NewModel(name string, bodies []physics.Body, params sim.Params, integrator string, logger *log.Logger) (Model, error) {
	m := Model{
		name:          name,
		initial:       append([]physics.Body(nil), bodies...),
		params:        params,
		integrator:    integrator,
		logger:        logger,
		canvas:        NewCanvas(width, height),
		stepsPerFrame: 1,
		running:       true,
	}
	if err := m.reset(); err != nil {
		return Model{}, err
	}

	xs := make([]float64, len(bodies))
	ys := make([]float64, len(bodies))
	for i, b := range bodies {
		xs[i], ys[i] = b.Position.X, b.Position.Y
	}
	m.view = Fit(m.canvas, xs, ys)
	m.draw()
	return m, nil
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "+", "=":
			m.stepsPerFrame = min(maxStepsFrame, m.stepsPerFrame*2)
		case "-", "_":
			m.stepsPerFrame = max(1, m.stepsPerFrame/2)
		case "r":
			if err := m.reset(); err != nil {
				m.err = err
				return m, tea.Quit
			}
			m.draw()
		}
	case TickMsg:
		if m.running {
			m.advance()
			m.draw()
		}
		return m, tick()
	}
	return m, nil
}

// reset rebuilds the simulation from the initial bodies. A fresh integrator
// is created because some integrators keep scratch buffers.
func (m *Model) reset() error {
	integ, err := integrators.New(m.integrator)
	if err != nil {
		return err
	}
	opts := []sim.Option{sim.WithIntegrator(integ)}
	if m.logger != nil {
		opts = append(opts, sim.WithLogger(m.logger))
	}
	s, err := sim.New(m.initial, m.params, opts...)
	if err != nil {
		return err
	}
	m.sim = s
	m.drift = metrics.NewEnergyDrift(s.Field(), s.Masses())
	m.divergence = metrics.NewDivergence()
	m.trails = make([][]point, s.Len())
	m.offscreen = make([]bool, s.Len())
	m.energyHistory = m.energyHistory[:0]
	m.observe(s.Snapshot())
	return nil
}

func (m *Model) observe(snap sim.Snapshot) {
	m.drift.Observe(snap.State, snap.Time)
	m.divergence.Observe(snap.State, snap.Time)
}

// advance pulls stepsPerFrame snapshots from the simulation.
func (m *Model) advance() {
	for snap := range m.sim.Run(m.stepsPerFrame) {
		m.observe(snap)
	}
	if e := m.drift.Current(); !math.IsNaN(e) && !math.IsInf(e, 0) {
		m.energyHistory = append(m.energyHistory, e)
	}
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

func (m *Model) draw() {
	m.canvas.Clear()
	snap := m.sim.Snapshot()
	for i, p := range snap.Positions {
		px, py, ok := m.view.Project(m.canvas, p.X, p.Y)
		if !ok {
			m.offscreen[i] = true
			continue
		}
		m.trails[i] = append(m.trails[i], point{px, py, m.offscreen[i]})
		m.offscreen[i] = false
		if len(m.trails[i]) > trailCapacity {
			m.trails[i] = m.trails[i][1:]
		}
	}
	for _, trail := range m.trails {
		drawTrail(m.canvas, trail)
	}
	for i, p := range snap.Positions {
		if px, py, ok := m.view.Project(m.canvas, p.X, p.Y); ok {
			m.canvas.Disc(px, py, 1, bodyColor(i))
		}
	}
}

// drawTrail joins the newer half of trail with lines and thins the older
// half to every third dot, so trails fade with age.
func drawTrail(c *Canvas, trail []point) {
	half := len(trail) / 2
	for k := 1; k < len(trail); k++ {
		a, b := trail[k-1], trail[k]
		switch {
		case k < half:
			if k%3 == 0 {
				c.Set(b.x, b.y)
			}
		case b.gap:
			c.Set(b.x, b.y)
		default:
			c.DrawLine(a.x, a.y, b.x, b.y)
		}
	}
}

// Err returns the error that ended the program, if any.
func (m Model) Err() error { return m.err }

// Simulation exposes the running simulation.
func (m Model) Simulation() *sim.Simulation { return m.sim }

func (m Model) status() string {
	switch {
	case !m.sim.IsHealthy():
		return StatusDiverged.Render(fmt.Sprintf("DIVERGED (t=%.3f)", m.divergence.Value()))
	case !m.running:
		return StatusPaused.Render("PAUSED")
	default:
		return StatusRunning.Render("RUNNING")
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	canvasView := canvasStyle.Render(m.canvas.Render())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.name)) + "\n")
	s.WriteString(m.status() + "\n\n")
	if chart := PlotSeries(m.energyHistory, 30, 4, "Energy"); chart != "" {
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Step", fmt.Sprintf("%d", m.sim.Steps()))
	row("Time", fmt.Sprintf("%.3f", m.sim.Time()))
	row("Energy", fmt.Sprintf("%.6f", m.drift.Current()))
	row("Drift", fmt.Sprintf("%.2e", m.drift.Value()))
	row("Speed", fmt.Sprintf("%dx", m.stepsPerFrame))
	row("Integrator", m.sim.Integrator())

	s.WriteString("\nBODIES\n")
	snap := m.sim.Snapshot()
	for i, p := range snap.Positions {
		dot := lipgloss.NewStyle().Foreground(bodyColor(i)).Render("●")
		s.WriteString(fmt.Sprintf("%s %2d  (%7.3f, %7.3f)\n", dot, i, p.X, p.Y))
	}

	s.WriteString(helpStyle.Render("─────────────────────\nSP:Pause R:Reset Q:Quit\n+/-:Speed"))
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}
