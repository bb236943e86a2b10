package viz

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/gravsim/internal/lunar"
)

// DrawMoon paints a disk filling c, lit according to the phase angle in
// degrees. The unlit limb is outlined so the disk stays visible at new moon.
func DrawMoon(c *Canvas, angle float64) {
	c.Clear()
	w, h := c.Dots()
	r := float64(min(w, h))/2 - 1
	cx, cy := float64(w)/2, float64(h)/2
	for py := 0; py < h; py++ {
		for px := 0; px < w; px++ {
			x := float64(px) + 0.5 - cx
			y := cy - (float64(py) + 0.5)
			d := math.Hypot(x, y)
			switch {
			case d > r:
				continue
			case lunar.Illuminated(x, y, r, angle):
				c.Set(px, py)
			case d > r-1:
				c.Set(px, py)
			}
		}
	}
}

// RenderMoon returns the moon at angle as braille text w cells wide and h
// cells tall.
func RenderMoon(angle float64, w, h int) string {
	c := NewCanvas(w, h)
	DrawMoon(c, angle)
	return c.String()
}

// MoonModel animates the phases over one or more synodic months.
type MoonModel struct {
	period  float64
	day     float64
	perTick float64
	last    float64
	canvas  *Canvas
	running bool
}

// NewMoonModel animates days of a cycle with the given period, advancing
// perTick days every frame. A non-positive last day loops forever.
func NewMoonModel(period, perTick, last float64) MoonModel {
	if period <= 0 {
		period = lunar.DefaultPeriod
	}
	if perTick <= 0 {
		perTick = 0.25
	}
	return MoonModel{
		period:  period,
		perTick: perTick,
		last:    last,
		canvas:  NewCanvas(24, 12),
		running: true,
	}
}

func (m MoonModel) Init() tea.Cmd {
	return tick()
}

func (m MoonModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "+", "=":
			m.perTick *= 2
		case "-", "_":
			m.perTick /= 2
		}
	case TickMsg:
		if m.running {
			m.day += m.perTick
			if m.last > 0 && m.day >= m.last {
				return m, tea.Quit
			}
		}
		return m, tick()
	}
	return m, nil
}

// Day returns the current day of the animation.
func (m MoonModel) Day() float64 { return m.day }

func (m MoonModel) View() string {
	angle := lunar.TurnAngle(m.day, m.period)
	DrawMoon(m.canvas, angle)

	var s strings.Builder
	s.WriteString(headerStyle.Render("MOON PHASE") + "\n")
	s.WriteString(moonLit.Render(m.canvas.String()))
	s.WriteString("\n")
	s.WriteString(labelStyle.Render("Day") + valueStyle.Render(fmt.Sprintf("%.2f / %.1f", math.Mod(m.day, m.period), m.period)) + "\n")
	s.WriteString(labelStyle.Render("Phase") + valueStyle.Render(lunar.PhaseName(angle)) + "\n")
	s.WriteString(labelStyle.Render("Angle") + valueStyle.Render(fmt.Sprintf("%.1f°", angle)) + "\n")
	s.WriteString(labelStyle.Render("Lit") + ProgressBar(lunar.IlluminatedFraction(angle), 20) + "\n")
	if !m.running {
		s.WriteString(StatusPaused.Render("PAUSED") + "\n")
	}
	s.WriteString(helpStyle.Render("SP:Pause +/-:Speed Q:Quit"))
	return s.String()
}
