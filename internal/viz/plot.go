package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"
)

// FinitePrefix returns the leading values of series up to, not including,
// the first NaN or ±Inf.
func FinitePrefix(series []float64) []float64 {
	for i, v := range series {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return series[:i]
		}
	}
	return series
}

// PlotSeries draws the finite prefix of series. It returns "" when fewer
// than two finite points are available.
func PlotSeries(series []float64, width, height int, caption string) string {
	finite := FinitePrefix(series)
	if len(finite) < 2 {
		return ""
	}
	return asciigraph.Plot(finite, asciigraph.Height(height), asciigraph.Width(width), asciigraph.Caption(caption))
}
