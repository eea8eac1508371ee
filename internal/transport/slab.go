package transport

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/nukelab/internal/reactor"
)

// SlabConfig describes a Monte Carlo slab transmission problem: particles
// enter one face of a slab and are tracked until they are absorbed or leak
// out the far side.
type SlabConfig struct {
	SigmaT    float64 // total macroscopic cross-section (1/cm)
	Thickness float64 // slab width (cm)
	Particles int
	Isotropic bool // isotropic source instead of a normal beam
	Seed      int64
}

// SlabResult summarizes a transmission run.
type SlabResult struct {
	Transmitted int
	Fraction    float64
	StdErr      float64   // binomial standard error of the fraction
	Depths      []float64 // projected penetration depths, kept for small runs
}

const maxRecordedDepths = 1000

// Analytic returns the deterministic beam transmission exp(-SigmaT*x) for
// comparison against the sampled estimate.
func (c SlabConfig) Analytic() float64 {
	return math.Exp(-c.SigmaT * c.Thickness)
}

func (c SlabConfig) validate() error {
	if c.SigmaT <= 0 {
		return fmt.Errorf("%w: SigmaT must be positive, got %f", reactor.ErrParameterBounds, c.SigmaT)
	}
	if c.Thickness <= 0 {
		return fmt.Errorf("%w: thickness must be positive, got %f", reactor.ErrParameterBounds, c.Thickness)
	}
	if c.Particles <= 0 {
		return fmt.Errorf("%w: particle count must be positive, got %d", reactor.ErrParameterBounds, c.Particles)
	}
	return nil
}

// Simulate runs the straight-line transmission estimate: path lengths are
// sampled from the exponential distribution s = -ln(1-U)/SigmaT and a
// particle leaks when s exceeds thickness/mu.
func Simulate(cfg SlabConfig) (*SlabResult, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	res := &SlabResult{}
	if cfg.Particles <= maxRecordedDepths {
		res.Depths = make([]float64, 0, cfg.Particles)
	}

	for i := 0; i < cfg.Particles; i++ {
		mu := 1.0
		if cfg.Isotropic {
			// Direction cosine uniform on (0,1]: forward hemisphere.
			mu = 1.0 - rng.Float64()
		}

		s := -math.Log(1.0-rng.Float64()) / cfg.SigmaT
		if s*mu > cfg.Thickness {
			res.Transmitted++
		}
		if res.Depths != nil {
			depth := s * mu
			if depth > cfg.Thickness {
				depth = cfg.Thickness
			}
			res.Depths = append(res.Depths, depth)
		}
	}

	n := float64(cfg.Particles)
	res.Fraction = float64(res.Transmitted) / n
	res.StdErr = math.Sqrt(res.Fraction * (1.0 - res.Fraction) / n)

	return res, nil
}

// SimulateParallel splits the particle budget across workers. Each chunk gets
// its own seeded generator, so the estimate is deterministic for a given seed
// regardless of scheduling.
func SimulateParallel(cfg SlabConfig) (*SlabResult, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	const chunk = 10000
	if cfg.Particles <= chunk {
		return Simulate(cfg)
	}

	numChunks := (cfg.Particles + chunk - 1) / chunk
	counts := make([]int, numChunks)

	reactor.ParallelFor(numChunks, 1, func(start, end int) {
		for c := start; c < end; c++ {
			particles := chunk
			if c == numChunks-1 {
				particles = cfg.Particles - c*chunk
			}

			rng := rand.New(rand.NewSource(cfg.Seed + int64(c)))
			transmitted := 0
			for i := 0; i < particles; i++ {
				mu := 1.0
				if cfg.Isotropic {
					mu = 1.0 - rng.Float64()
				}
				s := -math.Log(1.0-rng.Float64()) / cfg.SigmaT
				if s*mu > cfg.Thickness {
					transmitted++
				}
			}
			counts[c] = transmitted
		}
	})

	res := &SlabResult{}
	for _, c := range counts {
		res.Transmitted += c
	}

	n := float64(cfg.Particles)
	res.Fraction = float64(res.Transmitted) / n
	res.StdErr = math.Sqrt(res.Fraction * (1.0 - res.Fraction) / n)

	return res, nil
}

// ConfidenceInterval returns the 95% CI half-width of the estimate.
func (r *SlabResult) ConfidenceInterval() float64 {
	return 1.96 * r.StdErr
}
