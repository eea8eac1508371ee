package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/nukelab/internal/reactor"
)

// DecayChain models a three-species chain A -> B -> C with an optional
// constant production source feeding A:
//
//	dNa/dt = s - lambdaA*Na
//	dNb/dt = lambdaA*Na - lambdaB*Nb
//	dNc/dt = lambdaB*Nb
//
// State layout: [Na, Nb, Nc].
type DecayChain struct {
	LambdaA float64 // decay constant of the parent (1/s)
	LambdaB float64 // decay constant of the intermediate (1/s)
	Source  float64 // constant production rate of the parent (atoms/s)
	Na0     float64
}

func NewDecayChain() *DecayChain {
	return &DecayChain{
		LambdaA: 0.10,
		LambdaB: 0.03,
		Source:  0.5,
		Na0:     50.0,
	}
}

func (d *DecayChain) StateDim() int   { return 3 }
func (d *DecayChain) ControlDim() int { return 0 }

func (d *DecayChain) Derive(x reactor.State, u reactor.Control, t float64) reactor.State {
	na, nb := x[0], x[1]
	return reactor.State{
		d.Source - d.LambdaA*na,
		d.LambdaA*na - d.LambdaB*nb,
		d.LambdaB * nb,
	}
}

func (d *DecayChain) DefaultState() reactor.State {
	return reactor.State{d.Na0, 0, 0}
}

// Activity returns the total decay rate lambdaA*Na + lambdaB*Nb.
func (d *DecayChain) Activity(x reactor.State) float64 {
	if len(x) < 2 {
		return 0
	}
	return d.LambdaA*x[0] + d.LambdaB*x[1]
}

// Total reports the atom inventory corrected for source injection, which the
// chain conserves exactly: Na+Nb+Nc - s*t is constant.
func (d *DecayChain) Total(x reactor.State, t float64) float64 {
	sum := 0.0
	for _, v := range x {
		sum += v
	}
	return sum - d.Source*t
}

// HalfLifeA returns the parent half-life ln2/lambdaA.
func (d *DecayChain) HalfLifeA() float64 {
	return math.Ln2 / d.LambdaA
}

func (d *DecayChain) GetParams() map[string]float64 {
	return map[string]float64{
		"lambdaA": d.LambdaA,
		"lambdaB": d.LambdaB,
		"source":  d.Source,
		"na0":     d.Na0,
	}
}

func (d *DecayChain) SetParam(name string, value float64) error {
	switch name {
	case "lambdaA":
		if value <= 0 {
			return reactor.ErrParameterBounds
		}
		d.LambdaA = value
	case "lambdaB":
		if value <= 0 {
			return reactor.ErrParameterBounds
		}
		d.LambdaB = value
	case "source":
		if value < 0 {
			return reactor.ErrParameterBounds
		}
		d.Source = value
	case "na0":
		if value < 0 {
			return reactor.ErrParameterBounds
		}
		d.Na0 = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
