package shield

import "math"

// LayeredSolution is the outcome of a two-material search: thicknesses that
// meet the target transmission at minimum total areal density.
type LayeredSolution struct {
	First        Material
	Second       Material
	Thickness1   float64 // cm
	Thickness2   float64 // cm
	ArealDensity float64 // g/cm^2
	Transmission float64
}

// SearchRange bounds the grid search for one layer.
type SearchRange struct {
	MaxThickness float64
	Steps        int
}

// OptimizeTwoLayers grid-searches layer thicknesses for the lightest shield
// meeting the target. Returns nil when no combination in range does.
func OptimizeTwoLayers(mat1, mat2 Material, target float64, range1, range2 SearchRange) (*LayeredSolution, error) {
	mu1, err := mat1.LinearMu()
	if err != nil {
		return nil, err
	}
	mu2, err := mat2.LinearMu()
	if err != nil {
		return nil, err
	}

	if range1.Steps < 2 {
		range1.Steps = 201
	}
	if range2.Steps < 2 {
		range2.Steps = 201
	}

	rho1, rho2 := mat1.Density, mat2.Density
	if rho1 == 0 {
		rho1 = 1.0
	}
	if rho2 == 0 {
		rho2 = 1.0
	}

	var best *LayeredSolution

	for i := 0; i < range1.Steps; i++ {
		t1 := range1.MaxThickness * float64(i) / float64(range1.Steps-1)
		trans1 := math.Exp(-mu1 * t1)

		for j := 0; j < range2.Steps; j++ {
			t2 := range2.MaxThickness * float64(j) / float64(range2.Steps-1)
			total := trans1 * math.Exp(-mu2*t2)
			if total > target {
				continue
			}

			areal := rho1*t1 + rho2*t2
			if best == nil || areal < best.ArealDensity {
				best = &LayeredSolution{
					First:        mat1,
					Second:       mat2,
					Thickness1:   t1,
					Thickness2:   t2,
					ArealDensity: areal,
					Transmission: total,
				}
			}

			// Transmission only shrinks with thicker layer 2; nothing
			// lighter remains along this row.
			break
		}
	}

	return best, nil
}
