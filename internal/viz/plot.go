package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
)

// Series pulls one column out of a stored state table.
func Series(states [][]float64, index int) []float64 {
	data := make([]float64, 0, len(states))
	for _, s := range states {
		if index < len(s) {
			data = append(data, s[index])
		}
	}
	return data
}

// Plot renders a time series as an ASCII chart.
func Plot(data []float64, caption string) string {
	if len(data) < 2 {
		return "not enough data to plot"
	}
	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
}

// PlotMany overlays several series in one chart, one color per series.
func PlotMany(series [][]float64, caption string) string {
	if len(series) == 0 {
		return "not enough data to plot"
	}
	return asciigraph.PlotMany(series,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Green, asciigraph.Blue, asciigraph.Yellow),
	)
}

// ChannelLabels names the state columns of a model for plot captions.
func ChannelLabels(model string, dim int) []string {
	switch model {
	case "decay":
		return []string{"Na", "Nb", "Nc"}
	case "kinetics":
		labels := []string{"power"}
		for i := 1; i < dim; i++ {
			labels = append(labels, fmt.Sprintf("C%d", i))
		}
		return labels
	case "xenon":
		return []string{"I-135", "Xe-135"}
	case "heat":
		labels := make([]string, dim)
		for i := range labels {
			labels[i] = fmt.Sprintf("T%d", i)
		}
		return labels
	default:
		labels := make([]string, dim)
		for i := range labels {
			labels[i] = fmt.Sprintf("x%d", i)
		}
		return labels
	}
}
