// Package physics provides the nuclear system models for simulation.
//
// Each model implements the [reactor.System] interface, defining the
// differential equations governing its evolution:
//
//   - [DecayChain]: three-species radioactive decay chain with a source
//   - [PointKinetics]: reactor power with six delayed-neutron groups
//   - [HeatRod]: 1D heat conduction with fixed end temperatures
//   - [Xenon]: iodine/xenon-135 fission-product poisoning
//
// All models implement [reactor.Configurable] for runtime parameter
// adjustment; DecayChain also implements [reactor.Balance] so the simulator
// can report atom-inventory drift.
package physics
