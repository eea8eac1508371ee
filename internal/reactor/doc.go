// Package reactor provides core simulation primitives for the lab's
// time-dependent models.
//
// The package defines the fundamental interfaces and types for numerical
// simulation of ordinary differential equations (ODEs):
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, u, t))
//   - [Integrator]: numerical integrator interface
//   - [Controller]: reactivity/input controller interface
//   - [Simulator]: orchestrates simulation runs
//
// # Example
//
//	dyn := physics.NewDecayChain()
//	integ := integrators.NewRK4()
//	sim := reactor.New(dyn, integ, controllers.NewNone(0))
//	result, _ := sim.Run(ctx, dyn.DefaultState(), cfg)
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe, and neither are integrators,
// controllers, or metrics. For repeated runs with varied seeds, use the
// [Ensemble] type, which builds a fresh simulator per run via its factory.
package reactor
