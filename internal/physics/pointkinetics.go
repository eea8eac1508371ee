package physics

import (
	"fmt"

	"github.com/san-kum/nukelab/internal/reactor"
)

// Six delayed-neutron precursor groups for U-235 thermal fission.
var (
	defaultBeta   = [6]float64{0.00025, 0.0012, 0.0011, 0.0027, 0.0008, 0.00025}
	defaultLambda = [6]float64{0.0124, 0.0305, 0.111, 0.301, 1.14, 3.01}
)

// PointKinetics models reactor power with six delayed-neutron precursor
// groups:
//
//	dn/dt  = ((rho - beta)/Lambda) * n + sum(lambda_i * C_i) + S
//	dCi/dt = (beta_i/Lambda) * n - lambda_i * C_i
//
// State layout: [n, C1..C6]. The control input u[0], when present, adds to
// the static reactivity Rho, which is how rod controllers act on the core.
type PointKinetics struct {
	GenTime float64 // prompt neutron generation time Lambda (s)
	Rho     float64 // static reactivity (dimensionless)
	Source  float64 // external neutron source (1/s)
	Beta    [6]float64
	Lambda  [6]float64
	N0      float64
}

func NewPointKinetics() *PointKinetics {
	return &PointKinetics{
		GenTime: 1e-5,
		Rho:     0.0,
		Source:  0.0,
		Beta:    defaultBeta,
		Lambda:  defaultLambda,
		N0:      1.0,
	}
}

func (p *PointKinetics) StateDim() int   { return 7 }
func (p *PointKinetics) ControlDim() int { return 1 }

// BetaTotal returns the total delayed-neutron fraction.
func (p *PointKinetics) BetaTotal() float64 {
	sum := 0.0
	for _, b := range p.Beta {
		sum += b
	}
	return sum
}

func (p *PointKinetics) Derive(x reactor.State, u reactor.Control, t float64) reactor.State {
	n := x[0]

	rho := p.Rho
	if len(u) > 0 {
		rho += u[0]
	}

	beta := p.BetaTotal()
	dx := make(reactor.State, 7)

	dn := ((rho - beta) / p.GenTime) * n
	for i := 0; i < 6; i++ {
		ci := x[1+i]
		dn += p.Lambda[i] * ci
		dx[1+i] = (p.Beta[i]/p.GenTime)*n - p.Lambda[i]*ci
	}
	dx[0] = dn + p.Source

	return dx
}

// DefaultState starts at n0 with precursors at their critical equilibrium,
// Ci = beta_i/(lambda_i*Lambda) * n0.
func (p *PointKinetics) DefaultState() reactor.State {
	s := make(reactor.State, 7)
	s[0] = p.N0
	for i := 0; i < 6; i++ {
		s[1+i] = p.Beta[i] / (p.Lambda[i] * p.GenTime) * p.N0
	}
	return s
}

// ReactivityDollars converts an absolute reactivity to dollars.
func (p *PointKinetics) ReactivityDollars(rho float64) float64 {
	return rho / p.BetaTotal()
}

func (p *PointKinetics) GetParams() map[string]float64 {
	return map[string]float64{
		"genTime": p.GenTime,
		"rho":     p.Rho,
		"source":  p.Source,
		"n0":      p.N0,
	}
}

func (p *PointKinetics) SetParam(name string, value float64) error {
	switch name {
	case "genTime":
		if value <= 0 {
			return reactor.ErrParameterBounds
		}
		p.GenTime = value
	case "rho":
		p.Rho = value
	case "source":
		if value < 0 {
			return reactor.ErrParameterBounds
		}
		p.Source = value
	case "n0":
		if value <= 0 {
			return reactor.ErrParameterBounds
		}
		p.N0 = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
