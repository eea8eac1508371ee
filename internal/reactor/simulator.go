package reactor

import (
	"context"
	"fmt"
	"math"
)

type Simulator struct {
	dyn        System
	integrator Integrator
	controller Controller
	metrics    []Metric
	observers  []Observer
}

func New(dyn System, integrator Integrator, controller Controller) *Simulator {
	return &Simulator{
		dyn:        dyn,
		integrator: integrator,
		controller: controller,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	if len(x0) != s.dyn.StateDim() {
		return nil, fmt.Errorf("%w: state has %d entries, system wants %d",
			ErrDimensionMismatch, len(x0), s.dyn.StateDim())
	}
	if cfg.Adaptive {
		if cfg.MaxDt <= 0 {
			cfg.MaxDt = cfg.Dt * 10
		}
		if cfg.MinDt <= 0 {
			cfg.MinDt = cfg.Dt * 1e-6
		}
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		States:   make([]State, 0, steps+1),
		Controls: make([]Control, 0, steps),
		Times:    make([]float64, 0, steps+1),
		Metrics:  make(map[string]float64),
		Errors:   make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := 0.0
	dt := cfg.Dt

	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)

	initialTotal := s.computeTotal(x, t)

	for i := 0; ; i++ {
		if cfg.Adaptive {
			if t >= cfg.Duration-1e-12 {
				break
			}
		} else if i >= steps {
			break
		}

		select {
		case <-ctx.Done():
			return result, fmt.Errorf("%w at t=%.4f: %v", ErrContextCanceled, t, ctx.Err())
		default:
		}

		u := s.controller.Compute(x, t)

		for _, m := range s.metrics {
			m.Observe(x, u, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(x, u, t)
		}

		var newX State
		used := dt

		if cfg.Adaptive {
			// Never step past the end of the run.
			if remaining := cfg.Duration - t; dt > remaining {
				dt = remaining
			}
			var stepErr error
			newX, used, dt, stepErr = s.adaptiveStep(x, u, t, dt, cfg)
			if stepErr != nil {
				result.Errors = append(result.Errors, &SimulationError{Step: i, Time: t, State: x, Wrapped: stepErr})
				break
			}
		} else {
			newX = s.integrator.Step(s.dyn, x, u, t, dt)
		}

		if cfg.ValidateState && !newX.IsValid() {
			cause := ErrInvalidState
			if diverged(newX) {
				cause = ErrUnstable
			}
			result.Errors = append(result.Errors, &SimulationError{Step: i, Time: t, State: newX, Wrapped: cause})
			break
		}

		x = newX
		t += used
		result.StepsTaken++

		result.States = append(result.States, x.Clone())
		result.Controls = append(result.Controls, u)
		result.Times = append(result.Times, t)
	}

	finalTotal := s.computeTotal(x, t)
	if initialTotal != 0 {
		result.BalanceDrift = math.Abs(finalTotal-initialTotal) / math.Abs(initialTotal)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if cfg.Adaptive && cfg.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive for adaptive stepping")
	}
	return nil
}

// diverged distinguishes blow-up from a plain NaN: an infinite component
// means the trajectory ran away rather than hitting an undefined operation.
func diverged(x State) bool {
	for _, v := range x {
		if math.IsInf(v, 0) {
			return true
		}
	}
	return false
}

func (s *Simulator) computeTotal(x State, t float64) float64 {
	if b, ok := s.dyn.(Balance); ok {
		return b.Total(x, t)
	}
	return 0
}

// adaptiveStep takes one error-controlled step and returns the accepted
// state, the dt actually taken, and the dt to try next.
func (s *Simulator) adaptiveStep(x State, u Control, t, dt float64, cfg Config) (State, float64, float64, error) {
	if adaptive, ok := s.integrator.(AdaptiveIntegrator); ok {
		newX, used, next, err := adaptive.StepAdaptive(s.dyn, x, u, t, dt, cfg.Tolerance)
		if err != nil {
			return nil, 0, 0, err
		}
		next = math.Min(math.Max(next, cfg.MinDt), cfg.MaxDt)
		return newX, used, next, nil
	}

	// Step-doubling fallback: compare a full step against two half steps
	// and shrink until they agree.
	for {
		x1 := s.integrator.Step(s.dyn, x, u, t, dt)
		xHalf := s.integrator.Step(s.dyn, x, u, t, dt/2)
		x2 := s.integrator.Step(s.dyn, xHalf, u, t+dt/2, dt/2)

		errNorm := x1.Sub(x2).Norm()

		if errNorm <= cfg.Tolerance {
			next := dt
			if errNorm < cfg.Tolerance/10 {
				next = math.Min(dt*2, cfg.MaxDt)
			}
			return x2, dt, next, nil
		}

		dt /= 2
		if dt < cfg.MinDt {
			return nil, 0, 0, fmt.Errorf("%w: need dt < %g at t=%.4f", ErrStepTooSmall, cfg.MinDt, t)
		}
	}
}

func (s *Simulator) RunWithCallback(ctx context.Context, x0 State, cfg Config, callback func(State, Control, float64) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}

	x := x0.Clone()
	t := 0.0
	dt := cfg.Dt

	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w at t=%.4f: %v", ErrContextCanceled, t, ctx.Err())
		default:
		}

		u := s.controller.Compute(x, t)

		if !callback(x, u, t) {
			return nil
		}

		x = s.integrator.Step(s.dyn, x, u, t, dt)
		t += dt

		if cfg.ValidateState && !x.IsValid() {
			return fmt.Errorf("%w at t=%.4f", ErrInvalidState, t)
		}
	}

	return nil
}
