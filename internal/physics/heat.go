package physics

import "github.com/san-kum/nukelab/internal/reactor"

// HeatRod implements 1D heat conduction along a rod using finite differences.
//
//	dTi/dt = alpha * (T[i-1] - 2T[i] + T[i+1]) / dx^2 + q
//
// End nodes are held at fixed temperatures (Dirichlet boundaries).
// State layout: [T0..T(N-1)].
type HeatRod struct {
	N                    int
	Length, Alpha, dx    float64
	TLeft, TRight, TInit float64
	VolumetricSource     float64
}

func NewHeatRod(n int) *HeatRod {
	if n < 3 {
		n = 3
	}
	return &HeatRod{
		N:      n,
		Length: 1.0,
		Alpha:  1e-4,
		dx:     1.0 / float64(n-1),
		TLeft:  100.0,
		TRight: 20.0,
		TInit:  20.0,
	}
}

func (h *HeatRod) StateDim() int   { return h.N }
func (h *HeatRod) ControlDim() int { return 0 }

func (h *HeatRod) Derive(s reactor.State, _ reactor.Control, _ float64) reactor.State {
	n := h.N
	if len(s) < n {
		return make(reactor.State, n)
	}
	dT, h2 := reactor.State(make([]float64, n)), h.dx*h.dx
	for i := 1; i < n-1; i++ {
		dT[i] = h.Alpha*(s[i-1]-2*s[i]+s[i+1])/h2 + h.VolumetricSource
	}
	// Boundary nodes pinned.
	return dT
}

// DefaultState is a uniform rod at TInit with the boundary values applied.
func (h *HeatRod) DefaultState() reactor.State {
	s := make(reactor.State, h.N)
	for i := range s {
		s[i] = h.TInit
	}
	s[0] = h.TLeft
	s[h.N-1] = h.TRight
	return s
}

// SteadyState returns the analytic q=0 equilibrium, a linear profile between
// the boundary temperatures.
func (h *HeatRod) SteadyState() reactor.State {
	s := make(reactor.State, h.N)
	for i := range s {
		frac := float64(i) / float64(h.N-1)
		s[i] = h.TLeft + (h.TRight-h.TLeft)*frac
	}
	return s
}

func (h *HeatRod) GetParams() map[string]float64 {
	return map[string]float64{
		"alpha":  h.Alpha,
		"length": h.Length,
		"tleft":  h.TLeft,
		"tright": h.TRight,
		"q":      h.VolumetricSource,
	}
}

func (h *HeatRod) SetParam(name string, v float64) error {
	switch name {
	case "alpha":
		if v <= 0 {
			return reactor.ErrParameterBounds
		}
		h.Alpha = v
	case "length":
		if v <= 0 {
			return reactor.ErrParameterBounds
		}
		h.Length, h.dx = v, v/float64(h.N-1)
	case "tleft":
		h.TLeft = v
	case "tright":
		h.TRight = v
	case "q":
		h.VolumetricSource = v
	}
	return nil
}
