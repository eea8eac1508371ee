package physics

import (
	"fmt"

	"github.com/san-kum/nukelab/internal/reactor"
)

// Xenon models iodine-135 / xenon-135 fission-product poisoning:
//
//	dI/dt  = yI * SigmaF * phi - lambdaI * I
//	dXe/dt = yXe * SigmaF * phi + lambdaI * I - lambdaXe * Xe - sigmaXe * phi * Xe
//
// State layout: [I, Xe] in atoms/cm^3. Dropping the flux to zero after
// equilibrium produces the characteristic post-shutdown xenon peak.
type Xenon struct {
	Flux     float64 // neutron flux phi (n/cm^2/s)
	SigmaF   float64 // macroscopic fission cross-section (1/cm)
	YieldI   float64
	YieldXe  float64
	LambdaI  float64 // 1/s
	LambdaXe float64 // 1/s
	SigmaXe  float64 // microscopic Xe-135 absorption (cm^2)
}

func NewXenon() *Xenon {
	return &Xenon{
		Flux:     3e13,
		SigmaF:   0.043,
		YieldI:   0.0639,
		YieldXe:  0.00237,
		LambdaI:  2.93e-5,
		LambdaXe: 2.11e-5,
		SigmaXe:  2.65e-18,
	}
}

func (x *Xenon) StateDim() int   { return 2 }
func (x *Xenon) ControlDim() int { return 0 }

func (x *Xenon) Derive(s reactor.State, _ reactor.Control, _ float64) reactor.State {
	iodine, xenon := s[0], s[1]
	prodI := x.YieldI * x.SigmaF * x.Flux
	prodXe := x.YieldXe * x.SigmaF * x.Flux
	return reactor.State{
		prodI - x.LambdaI*iodine,
		prodXe + x.LambdaI*iodine - x.LambdaXe*xenon - x.SigmaXe*x.Flux*xenon,
	}
}

// Equilibrium returns the steady-state iodine and xenon concentrations at the
// current flux.
func (x *Xenon) Equilibrium() reactor.State {
	iEq := x.YieldI * x.SigmaF * x.Flux / x.LambdaI
	xeEq := (x.YieldXe*x.SigmaF*x.Flux + x.LambdaI*iEq) / (x.LambdaXe + x.SigmaXe*x.Flux)
	return reactor.State{iEq, xeEq}
}

// DefaultState starts a fresh core with no poison inventory.
func (x *Xenon) DefaultState() reactor.State {
	return reactor.State{0, 0}
}

func (x *Xenon) GetParams() map[string]float64 {
	return map[string]float64{
		"flux":   x.Flux,
		"sigmaF": x.SigmaF,
	}
}

func (x *Xenon) SetParam(name string, value float64) error {
	switch name {
	case "flux":
		if value < 0 {
			return reactor.ErrParameterBounds
		}
		x.Flux = value
	case "sigmaF":
		if value <= 0 {
			return reactor.ErrParameterBounds
		}
		x.SigmaF = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
