package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a grid of braille cells. Each cell holds 2x4 dots, so the
// drawable area is (Width*2) x (Height*4) dots. A cell may carry one
// foreground colour, used by Render.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	tint          [][]lipgloss.Color
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		tint:   make([][]lipgloss.Color, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.tint[i] = make([]lipgloss.Color, w)
	}
	c.Clear()
	return c
}

// Dots returns the canvas size in dots.
func (c *Canvas) Dots() (int, int) { return c.Width * 2, c.Height * 4 }

// Set turns on the dot at (x, y). Out of range dots are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] &^= rune(pixelMap[y%4][x%2])
}

// IsSet reports whether the dot at (x, y) is on.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 {
		return false
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return false
	}
	return c.Grid[row][col]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.tint[i][j] = ""
		}
	}
}

// Tint colours the cell containing dot (x, y).
func (c *Canvas) Tint(x, y int, color lipgloss.Color) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.tint[row][col] = color
}

// TintAt returns the colour of the cell containing dot (x, y), or "".
func (c *Canvas) TintAt(x, y int) lipgloss.Color {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return ""
	}
	return c.tint[y/4][x/2]
}

// Disc fills every dot within radius r of (x, y) and, unless color is
// empty, tints the cells it touches.
func (c *Canvas) Disc(x, y, r int, color lipgloss.Color) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy > r*r {
				continue
			}
			c.Set(x+dx, y+dy)
			if color != "" {
				c.Tint(x+dx, y+dy, color)
			}
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Render is String with tinted cells styled in their colour. Runs of
// untinted cells are written as is.
func (c *Canvas) Render() string {
	var b strings.Builder
	for i, row := range c.Grid {
		for j, r := range row {
			if color := c.tint[i][j]; color != "" {
				b.WriteString(lipgloss.NewStyle().Foreground(color).Render(string(r)))
			} else {
				b.WriteRune(r)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Viewport maps world coordinates onto canvas dots. Y grows upward in
// world space and downward on screen.
type Viewport struct {
	CenterX, CenterY float64
	// Scale is dots per world unit.
	Scale float64
}

// Project returns the dot for the world point (x, y) on c. ok is false for
// non-finite points and points that fall outside the canvas.
func (v Viewport) Project(c *Canvas, x, y float64) (px, py int, ok bool) {
	w, h := c.Dots()
	fx := float64(w)/2 + (x-v.CenterX)*v.Scale
	fy := float64(h)/2 - (y-v.CenterY)*v.Scale
	if math.IsNaN(fx) || math.IsNaN(fy) || math.IsInf(fx, 0) || math.IsInf(fy, 0) {
		return 0, 0, false
	}
	if fx < 0 || fy < 0 || fx >= float64(w) || fy >= float64(h) {
		return 0, 0, false
	}
	return int(fx), int(fy), true
}

// Fit returns a viewport centred on the bounding box of the points with a
// margin, scaled so the box fills the smaller canvas dimension.
func Fit(c *Canvas, xs, ys []float64) Viewport {
	v := Viewport{Scale: 1}
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) || math.IsInf(xs[i], 0) || math.IsInf(ys[i], 0) {
			continue
		}
		minX, maxX = math.Min(minX, xs[i]), math.Max(maxX, xs[i])
		minY, maxY = math.Min(minY, ys[i]), math.Max(maxY, ys[i])
	}
	if minX > maxX {
		return v
	}
	v.CenterX, v.CenterY = (minX+maxX)/2, (minY+maxY)/2
	span := math.Max(maxX-minX, maxY-minY) * 1.5
	if span == 0 {
		span = 2
	}
	w, h := c.Dots()
	v.Scale = float64(min(w, h)) / span
	return v
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
