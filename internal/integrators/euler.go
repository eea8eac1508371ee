package integrators

import "github.com/san-kum/nukelab/internal/reactor"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(dyn reactor.System, x reactor.State, u reactor.Control, t float64, dt float64) reactor.State {
	dx := dyn.Derive(x, u, t)
	result := make(reactor.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}
