package controllers

import "github.com/san-kum/nukelab/internal/reactor"

// Ramp inserts reactivity linearly at Rate until Limit, modelling a steady
// control-rod withdrawal.
type Ramp struct {
	Rate  float64 // reactivity per second
	Limit float64 // maximum inserted reactivity
}

func NewRamp(rate, limit float64) *Ramp {
	return &Ramp{Rate: rate, Limit: limit}
}

func (r *Ramp) Compute(x reactor.State, t float64) reactor.Control {
	rho := r.Rate * t
	if r.Limit != 0 {
		if r.Rate >= 0 && rho > r.Limit {
			rho = r.Limit
		}
		if r.Rate < 0 && rho < -r.Limit {
			rho = -r.Limit
		}
	}
	return reactor.Control{rho}
}
