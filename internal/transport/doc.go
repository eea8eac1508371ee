// Package transport estimates slab transmission with Monte Carlo particle
// sampling. Path lengths are drawn from the exponential free-flight
// distribution; no scattering is modelled, which keeps the beam case exactly
// comparable to the Beer-Lambert analytic result.
package transport
