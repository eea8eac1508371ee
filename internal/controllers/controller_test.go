package controllers

import (
	"testing"

	"github.com/san-kum/nukelab/internal/reactor"
)

func TestNone(t *testing.T) {
	ctrl := NewNone(1)
	u := ctrl.Compute(reactor.State{1.0, 2.0}, 0.0)

	if len(u) != 1 {
		t.Errorf("expected 1 control, got %d", len(u))
	}
	for i, v := range u {
		if v != 0 {
			t.Errorf("control[%d] should be 0, got %f", i, v)
		}
	}
}

func TestPID(t *testing.T) {
	ctrl := NewPID(0.001, 0.0001, 0.0, 1.0)
	u := ctrl.Compute(reactor.State{2.0}, 0.0)
	if len(u) != 1 {
		t.Fatalf("expected 1 control, got %d", len(u))
	}
	if u[0] >= 0 {
		t.Error("PID should withdraw reactivity when power is above target")
	}
}

func TestPIDClamp(t *testing.T) {
	ctrl := NewPID(100.0, 0, 0, 0.0)
	u := ctrl.Compute(reactor.State{-10.0}, 0.0)

	if u[0] > ctrl.MaxRho+1e-12 {
		t.Errorf("control exceeds reactivity clamp: %f > %f", u[0], ctrl.MaxRho)
	}
}

func TestPIDConverges(t *testing.T) {
	ctrl := NewPID(0.001, 0.0, 0.0, 1.0)

	u1 := ctrl.Compute(reactor.State{0.5}, 0.0)
	u2 := ctrl.Compute(reactor.State{0.9}, 1.0)

	if u2[0] >= u1[0] {
		t.Errorf("inserted reactivity should shrink as power approaches target: %f -> %f", u1[0], u2[0])
	}
}

func TestRamp(t *testing.T) {
	ctrl := NewRamp(0.0001, 0.001)

	u := ctrl.Compute(nil, 0)
	if u[0] != 0 {
		t.Errorf("ramp should start at zero, got %f", u[0])
	}

	u = ctrl.Compute(nil, 5.0)
	if u[0] != 0.0005 {
		t.Errorf("ramp at t=5 should be 0.0005, got %f", u[0])
	}

	u = ctrl.Compute(nil, 100.0)
	if u[0] != 0.001 {
		t.Errorf("ramp should cap at limit, got %f", u[0])
	}
}

func TestRampNegative(t *testing.T) {
	ctrl := NewRamp(-0.001, 0.002)

	u := ctrl.Compute(nil, 10.0)
	if u[0] != -0.002 {
		t.Errorf("negative ramp should cap at -limit, got %f", u[0])
	}
}
