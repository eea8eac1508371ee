package metrics

import (
	"math"

	"github.com/san-kum/nukelab/internal/reactor"
)

// Excursion reports the fraction of samples in which every state variable
// stayed inside the given bound; 1.0 means the run never excursed.
type Excursion struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewExcursion(threshold float64) *Excursion {
	return &Excursion{
		name:      "excursion",
		threshold: threshold,
	}
}

func (e *Excursion) Name() string {
	return e.name
}

func (e *Excursion) Observe(x reactor.State, u reactor.Control, t float64) {
	e.samples++
	for _, val := range x {
		if math.Abs(val) > e.threshold {
			e.violations++
			break
		}
	}
}

func (e *Excursion) Value() float64 {
	if e.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(e.violations)/float64(e.samples)
}

func (e *Excursion) Reset() {
	e.violations = 0
	e.samples = 0
}
