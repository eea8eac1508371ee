package physics

import (
	"math"
	"testing"

	"github.com/san-kum/nukelab/internal/reactor"
)

func TestDecayChainDimensions(t *testing.T) {
	d := NewDecayChain()

	if d.StateDim() != 3 {
		t.Errorf("expected state dim 3, got %d", d.StateDim())
	}
	if d.ControlDim() != 0 {
		t.Errorf("expected control dim 0, got %d", d.ControlDim())
	}
}

func TestDecayChainRates(t *testing.T) {
	d := NewDecayChain()
	d.Source = 0

	x := reactor.State{100, 0, 0}
	dx := d.Derive(x, nil, 0)

	if math.Abs(dx[0]-(-d.LambdaA*100)) > 1e-12 {
		t.Errorf("parent rate wrong: got %f", dx[0])
	}
	if math.Abs(dx[1]-d.LambdaA*100) > 1e-12 {
		t.Errorf("intermediate rate wrong: got %f", dx[1])
	}
	if dx[2] != 0 {
		t.Errorf("final species should not grow yet: got %f", dx[2])
	}
}

func TestDecayChainConservation(t *testing.T) {
	// Without a source, every atom leaving A lands in B or C.
	d := NewDecayChain()
	d.Source = 0

	x := reactor.State{50, 20, 5}
	dx := d.Derive(x, nil, 0)

	sum := dx[0] + dx[1] + dx[2]
	if math.Abs(sum) > 1e-12 {
		t.Errorf("atom inventory not conserved: dSum/dt = %e", sum)
	}
}

func TestDecayChainParentMonotone(t *testing.T) {
	d := NewDecayChain()
	d.Source = 0

	x := reactor.State{50, 0, 0}
	dt := 0.1
	prev := x[0]

	for i := 0; i < 1000; i++ {
		dx := d.Derive(x, nil, float64(i)*dt)
		for j := range x {
			x[j] += dt * dx[j]
		}
		if x[0] < 0 {
			t.Fatalf("negative parent count at step %d: %f", i, x[0])
		}
		if x[0] > prev {
			t.Fatalf("parent count increased at step %d", i)
		}
		prev = x[0]
	}
}

func TestDecayChainActivity(t *testing.T) {
	d := NewDecayChain()
	x := reactor.State{100, 50, 0}

	want := d.LambdaA*100 + d.LambdaB*50
	if got := d.Activity(x); math.Abs(got-want) > 1e-12 {
		t.Errorf("activity = %f, want %f", got, want)
	}
}

func TestDecayChainHalfLife(t *testing.T) {
	d := NewDecayChain()
	d.LambdaA = math.Ln2 // half-life of exactly 1s

	if got := d.HalfLifeA(); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("half-life = %f, want 1.0", got)
	}
}

func TestDecayChainSetParam(t *testing.T) {
	d := NewDecayChain()

	if err := d.SetParam("lambdaA", 0.5); err != nil {
		t.Errorf("valid param rejected: %v", err)
	}
	if err := d.SetParam("lambdaA", -1); err == nil {
		t.Error("negative decay constant accepted")
	}
	if err := d.SetParam("bogus", 1); err == nil {
		t.Error("unknown param accepted")
	}
}
