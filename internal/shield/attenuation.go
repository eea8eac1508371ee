package shield

import (
	"fmt"
	"math"

	"github.com/san-kum/nukelab/internal/reactor"
	"github.com/san-kum/nukelab/internal/transport"
)

// Transmission returns the exponential attenuation I/I0 = exp(-mu*x).
func Transmission(muLin, thickness float64) float64 {
	return math.Exp(-muLin * thickness)
}

// RequiredThickness solves exp(-mu*x) = target for x.
func RequiredThickness(muLin, target float64) (float64, error) {
	if target <= 0 || target > 1 {
		return 0, fmt.Errorf("%w: target transmission must be in (0,1], got %g", reactor.ErrParameterBounds, target)
	}
	if muLin <= 0 {
		return 0, fmt.Errorf("%w: attenuation coefficient must be positive, got %g", reactor.ErrParameterBounds, muLin)
	}
	return -math.Log(target) / muLin, nil
}

// Solution is a sized single-material shield.
type Solution struct {
	Material     Material
	Thickness    float64 // cm
	ArealDensity float64 // g/cm^2
	Transmission float64
}

// SingleLayer sizes one material to meet a target transmission, reporting the
// mass per unit area the shield costs.
func SingleLayer(mat Material, target float64) (*Solution, error) {
	mu, err := mat.LinearMu()
	if err != nil {
		return nil, err
	}
	thickness, err := RequiredThickness(mu, target)
	if err != nil {
		return nil, err
	}

	density := mat.Density
	if density == 0 {
		density = 1.0
	}

	return &Solution{
		Material:     mat,
		Thickness:    thickness,
		ArealDensity: density * thickness,
		Transmission: Transmission(mu, thickness),
	}, nil
}

// Validate runs a straight-line photon Monte Carlo against the analytic
// transmission for the given layer and returns the sampled result.
func Validate(mat Material, thickness float64, particles int, seed int64) (*transport.SlabResult, error) {
	mu, err := mat.LinearMu()
	if err != nil {
		return nil, err
	}
	return transport.SimulateParallel(transport.SlabConfig{
		SigmaT:    mu,
		Thickness: thickness,
		Particles: particles,
		Seed:      seed,
	})
}
