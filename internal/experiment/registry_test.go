package experiment

import (
	"context"
	"testing"

	"github.com/san-kum/nukelab/internal/controllers"
	"github.com/san-kum/nukelab/internal/integrators"
	"github.com/san-kum/nukelab/internal/physics"
	"github.com/san-kum/nukelab/internal/reactor"
)

func TestRegistryLookups(t *testing.T) {
	r := NewRegistry()

	for _, name := range []string{"decay", "kinetics", "heat", "xenon"} {
		sys, err := r.GetModel(name)
		if err != nil {
			t.Errorf("model %s: %v", name, err)
			continue
		}
		if sys.StateDim() < 2 {
			t.Errorf("model %s: suspicious state dim %d", name, sys.StateDim())
		}
	}

	for _, name := range []string{"euler", "rk4", "rk45"} {
		if _, err := r.GetIntegrator(name); err != nil {
			t.Errorf("integrator %s: %v", name, err)
		}
	}

	params := map[string]float64{"kp": 0.002, "target": 1.0, "rate": 1e-4, "limit": 1e-3}
	for _, name := range []string{"none", "pid", "ramp"} {
		if _, err := r.GetController(name, params); err != nil {
			t.Errorf("controller %s: %v", name, err)
		}
	}
}

func TestRegistryUnknown(t *testing.T) {
	r := NewRegistry()

	if _, err := r.GetModel("tokamak"); err == nil {
		t.Error("expected error for unknown model")
	}
	if _, err := r.GetIntegrator("leapfrog"); err == nil {
		t.Error("expected error for unknown integrator")
	}
	if _, err := r.GetController("lqr", nil); err == nil {
		t.Error("expected error for unknown controller")
	}
}

func TestDefaultMetricsPerModel(t *testing.T) {
	r := NewRegistry()

	for _, model := range []string{"decay", "kinetics", "heat", "xenon"} {
		sys, err := r.GetModel(model)
		if err != nil {
			t.Fatalf("model %s: %v", model, err)
		}
		ms := r.DefaultMetrics(model, sys)
		if len(ms) == 0 {
			t.Errorf("model %s: expected default metrics", model)
		}
	}
}

func TestDefaultMetricsSmallRod(t *testing.T) {
	// The peak-temperature node must sit inside whatever rod is actually
	// run, including ones rebuilt with only a few nodes.
	r := NewRegistry()

	rod := physics.NewHeatRod(5)
	ms := r.DefaultMetrics("heat", rod)

	sim := reactor.New(rod, integrators.NewRK4(), controllers.NewNone(rod.ControlDim()))
	for _, m := range ms {
		sim.AddMetric(m)
	}

	result, err := sim.Run(context.Background(), rod.DefaultState(), reactor.Config{Dt: 0.01, Duration: 5.0, ValidateState: true})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	peak, ok := result.Metrics["peak_temperature"]
	if !ok {
		t.Fatal("expected peak_temperature metric")
	}
	if peak <= 0 {
		t.Errorf("peak node never observed a temperature, peak = %f", peak)
	}
}

func TestExperimentRun(t *testing.T) {
	r := NewRegistry()

	sys, err := r.GetModel("decay")
	if err != nil {
		t.Fatal(err)
	}
	integ, err := r.GetIntegrator("rk4")
	if err != nil {
		t.Fatal(err)
	}
	ctrl, err := r.GetController("none", map[string]float64{"dim": 1})
	if err != nil {
		t.Fatal(err)
	}

	exp := New(Config{
		Model:      "decay",
		Integrator: "rk4",
		Controller: "none",
		InitState:  []float64{50, 0, 0},
		Dt:         0.01,
		Duration:   1.0,
	})

	if err := exp.Setup(sys, integ, ctrl, r.DefaultMetrics("decay", sys)); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.States) != 101 {
		t.Errorf("expected 101 states, got %d", len(result.States))
	}
	if _, ok := result.Metrics["activity"]; !ok {
		t.Error("expected activity metric in result")
	}
}

func TestExperimentRunWithoutSetup(t *testing.T) {
	exp := New(Config{Model: "decay"})
	if _, err := exp.Run(context.Background()); err == nil {
		t.Error("expected error when running before setup")
	}
}
