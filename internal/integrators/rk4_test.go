package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/nukelab/internal/reactor"
)

// decayExp is pure exponential decay with a known solution N0*exp(-lambda*t).
type decayExp struct {
	lambda float64
}

func (d *decayExp) Derive(x reactor.State, u reactor.Control, t float64) reactor.State {
	return reactor.State{-d.lambda * x[0]}
}

func (d *decayExp) StateDim() int   { return 1 }
func (d *decayExp) ControlDim() int { return 0 }

func TestRK4Accuracy(t *testing.T) {
	dyn := &decayExp{lambda: 0.5}
	integ := NewRK4()

	x0 := reactor.State{100.0}
	u := reactor.Control{}
	dt := 0.01
	steps := 1000

	x := x0
	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, u, float64(i)*dt, dt)
	}

	expected := 100.0 * math.Exp(-0.5*float64(steps)*dt)
	if math.Abs(x[0]-expected) > 1e-6 {
		t.Errorf("decay error too large: got %.8f, expected %.8f", x[0], expected)
	}
}

func TestRK4BeatsEuler(t *testing.T) {
	dyn := &decayExp{lambda: 1.0}
	rk4 := NewRK4()
	euler := NewEuler()

	dt := 0.1
	steps := 50

	xr := reactor.State{1.0}
	xe := reactor.State{1.0}
	for i := 0; i < steps; i++ {
		tNow := float64(i) * dt
		xr = rk4.Step(dyn, xr, nil, tNow, dt)
		xe = euler.Step(dyn, xe, nil, tNow, dt)
	}

	exact := math.Exp(-float64(steps) * dt)
	if math.Abs(xr[0]-exact) >= math.Abs(xe[0]-exact) {
		t.Errorf("rk4 error %.2e not smaller than euler error %.2e",
			math.Abs(xr[0]-exact), math.Abs(xe[0]-exact))
	}
}

func TestEulerStability(t *testing.T) {
	// dt*lambda < 2 keeps explicit Euler stable for pure decay.
	dyn := &decayExp{lambda: 1.0}
	integ := NewEuler()

	x := reactor.State{1.0}
	dt := 0.5
	for i := 0; i < 200; i++ {
		x = integ.Step(dyn, x, nil, float64(i)*dt, dt)
	}

	if !x.IsValid() || x[0] < 0 || x[0] > 1.0 {
		t.Errorf("euler produced unexpected state: %v", x)
	}
}
