package viz

import (
	"math"
	"strings"
	"testing"
)

func TestFinitePrefix(t *testing.T) {
	tests := []struct {
		name   string
		series []float64
		want   int
	}{
		{"all finite", []float64{-0.5, -0.49, -0.48}, 3},
		{"overflow", []float64{-0.5, -0.49, math.Inf(1)}, 2},
		{"nan", []float64{-0.5, math.NaN(), -0.5}, 1},
		{"starts infinite", []float64{math.Inf(-1), 0}, 0},
		{"empty", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FinitePrefix(tt.series); len(got) != tt.want {
				t.Errorf("FinitePrefix(%v) kept %d values, want %d", tt.series, len(got), tt.want)
			}
		})
	}
}

func TestPlotSeries(t *testing.T) {
	if got := PlotSeries([]float64{-0.5, -0.49, math.Inf(1)}, 30, 4, "Energy"); !strings.Contains(got, "Energy") {
		t.Errorf("expected a plot of the finite prefix, got %q", got)
	}
	if got := PlotSeries([]float64{math.Inf(-1), math.NaN()}, 30, 4, "Energy"); got != "" {
		t.Errorf("expected no plot without finite data, got %q", got)
	}
}
