package analysis

import (
	"fmt"
	"math"
	"strings"
)

// PhasePortrait renders a scatter of two state variables from a stored run
// as an ASCII grid. For a decay chain this is Na against Nb; for point
// kinetics, power against a precursor group.
func PhasePortrait(xs, ys []float64, width, height int, labelX, labelY string) string {
	if len(xs) == 0 || len(xs) != len(ys) {
		return "no data"
	}
	if width < 10 {
		width = 10
	}
	if height < 5 {
		height = 5
	}

	minX, maxX := bounds(xs)
	minY, maxY := bounds(ys)

	// Avoid a zero-width axis when the variable never moved.
	if maxX == minX {
		maxX = minX + 1
	}
	if maxY == minY {
		maxY = minY + 1
	}

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = make([]rune, width)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	for i := range xs {
		col := int((xs[i] - minX) / (maxX - minX) * float64(width-1))
		row := int((ys[i] - minY) / (maxY - minY) * float64(height-1))
		row = height - 1 - row
		grid[row][col] = '*'
	}

	// Mark start and end of the trajectory.
	markPoint(grid, xs[0], ys[0], minX, maxX, minY, maxY, width, height, 'o')
	last := len(xs) - 1
	markPoint(grid, xs[last], ys[last], minX, maxX, minY, maxY, width, height, 'x')

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s (vertical) vs %s (horizontal)\n", labelY, labelX))
	sb.WriteString(fmt.Sprintf("y: [%.4g, %.4g]  x: [%.4g, %.4g]  o=start x=end\n", minY, maxY, minX, maxX))
	for _, row := range grid {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func markPoint(grid [][]rune, x, y, minX, maxX, minY, maxY float64, width, height int, ch rune) {
	col := int((x - minX) / (maxX - minX) * float64(width-1))
	row := height - 1 - int((y-minY)/(maxY-minY)*float64(height-1))
	grid[row][col] = ch
}

func bounds(vals []float64) (float64, float64) {
	min, max := math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
