// Package viz provides terminal-based visualization for reactor simulations.
//
// The package renders stored runs as ASCII charts via asciigraph and offers
// a live interactive view built on the Bubble Tea framework:
//
//   - [Plot], [PlotMany]: chart helpers for stored run data
//   - [Model]: live simulation view with parameter tuning
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset to initial state
//	C     - Cycle the plotted state channel
//	Tab   - Cycle tunable parameters
//	↑/↓   - Adjust the selected parameter
//	?     - Show help overlay
package viz
