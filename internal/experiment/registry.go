package experiment

import (
	"fmt"

	"github.com/san-kum/nukelab/internal/controllers"
	"github.com/san-kum/nukelab/internal/integrators"
	"github.com/san-kum/nukelab/internal/metrics"
	"github.com/san-kum/nukelab/internal/physics"
	"github.com/san-kum/nukelab/internal/reactor"
)

type Registry struct {
	models      map[string]func() reactor.System
	integrators map[string]func() reactor.Integrator
	controllers map[string]func(map[string]float64) reactor.Controller
}

func NewRegistry() *Registry {
	r := &Registry{
		models:      make(map[string]func() reactor.System),
		integrators: make(map[string]func() reactor.Integrator),
		controllers: make(map[string]func(map[string]float64) reactor.Controller),
	}

	r.models["decay"] = func() reactor.System { return physics.NewDecayChain() }
	r.models["kinetics"] = func() reactor.System { return physics.NewPointKinetics() }
	r.models["heat"] = func() reactor.System { return physics.NewHeatRod(21) }
	r.models["xenon"] = func() reactor.System { return physics.NewXenon() }

	r.integrators["euler"] = func() reactor.Integrator { return integrators.NewEuler() }
	r.integrators["rk4"] = func() reactor.Integrator { return integrators.NewRK4() }
	r.integrators["rk45"] = func() reactor.Integrator { return integrators.NewRK45() }

	r.controllers["none"] = func(params map[string]float64) reactor.Controller {
		dim := int(params["dim"])
		if dim == 0 {
			dim = 1
		}
		return controllers.NewNone(dim)
	}
	r.controllers["pid"] = func(params map[string]float64) reactor.Controller {
		return controllers.NewPID(params["kp"], params["ki"], params["kd"], params["target"])
	}
	r.controllers["ramp"] = func(params map[string]float64) reactor.Controller {
		return controllers.NewRamp(params["rate"], params["limit"])
	}

	return r
}

func (r *Registry) GetModel(name string) (reactor.System, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetIntegrator(name string) (reactor.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetController(name string, params map[string]float64) (reactor.Controller, error) {
	fn, ok := r.controllers[name]
	if !ok {
		return nil, fmt.Errorf("unknown controller: %s", name)
	}
	return fn(params), nil
}

func (r *Registry) ListModels() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	return names
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	return names
}

// DefaultMetrics picks the observers that make sense for a model. The system
// being run is consulted where the sensible observation point depends on its
// size, such as the mid-rod node of a conduction model.
func (r *Registry) DefaultMetrics(model string, sys reactor.System) []reactor.Metric {
	switch model {
	case "kinetics":
		return []reactor.Metric{
			metrics.NewPeak("peak_power", 0),
			metrics.NewExcursion(100.0),
			metrics.NewReactivityEffort(),
		}
	case "heat":
		idx := sys.StateDim() / 2
		return []reactor.Metric{
			metrics.NewPeak("peak_temperature", idx),
			metrics.NewExcursion(2000.0),
		}
	case "xenon":
		return []reactor.Metric{
			metrics.NewPeak("peak_xenon", 1),
		}
	default:
		chain := physics.NewDecayChain()
		return []reactor.Metric{
			metrics.NewActivity(chain.LambdaA, chain.LambdaB),
			metrics.NewExcursion(1e6),
		}
	}
}
