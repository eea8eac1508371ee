package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/nukelab/internal/reactor"
)

type Config struct {
	Model      string
	Integrator string
	Controller string
	InitState  []float64
	Dt         float64
	Duration   float64
	Seed       int64
	Adaptive   bool
	Params     map[string]float64
}

type Experiment struct {
	cfg       Config
	simulator *reactor.Simulator
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(sys reactor.System, integrator reactor.Integrator, controller reactor.Controller, metrics []reactor.Metric) error {
	e.simulator = reactor.New(sys, integrator, controller)
	for _, m := range metrics {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*reactor.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	x0 := make(reactor.State, len(e.cfg.InitState))
	copy(x0, e.cfg.InitState)

	simCfg := reactor.DefaultConfig()
	simCfg.Dt = e.cfg.Dt
	simCfg.Duration = e.cfg.Duration
	simCfg.Seed = e.cfg.Seed
	simCfg.Adaptive = e.cfg.Adaptive

	return e.simulator.Run(ctx, x0, simCfg)
}

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *reactor.Simulator {
	return e.simulator
}
