package output

import (
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/rgehrsitz/healthsim/internal/domain"
)

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Red,
	asciigraph.Blue,
	asciigraph.Green,
	asciigraph.Yellow,
	asciigraph.Magenta,
	asciigraph.Cyan,
}

// CumulativeChart plots each result's year-to-date cost. Series shorter than
// the longest are padded with their last value.
func CumulativeChart(results []domain.SimulationResult, width, height int) string {
	if len(results) == 0 {
		return ""
	}
	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}

	maxLen := 0
	for _, r := range results {
		if len(r.States) > maxLen {
			maxLen = len(r.States)
		}
	}
	if maxLen == 0 {
		return ""
	}

	series := make([][]float64, len(results))
	names := make([]string, len(results))
	for i, r := range results {
		data := make([]float64, maxLen)
		last := 0.0
		for m := range data {
			if m < len(r.States) {
				last = r.States[m].YearTotal.InexactFloat64()
			}
			data[m] = last
		}
		series[i] = data
		names[i] = r.PlanName
	}

	colors := make([]asciigraph.AnsiColor, len(series))
	for i := range colors {
		colors[i] = seriesColors[i%len(seriesColors)]
	}

	caption := "cumulative cost: " + strings.Join(names, ", ")
	if len(series) == 1 {
		return asciigraph.Plot(series[0],
			asciigraph.Height(height),
			asciigraph.Width(width),
			asciigraph.Caption(caption),
		)
	}
	return asciigraph.PlotMany(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors...),
	)
}
