package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt       = 0.01
	DefaultDuration = 60.0
	DefaultNa       = 50.0
	DefaultPower    = 1.0
	DefaultNodes    = 21
	DefaultKp       = 0.002
	DefaultKi       = 0.0005
	DefaultKd       = 0.0
)

type Config struct {
	Model            string           `yaml:"model"`
	Integrator       string           `yaml:"integrator"`
	Controller       string           `yaml:"controller"`
	Dt               float64          `yaml:"dt"`
	Duration         float64          `yaml:"duration"`
	Seed             int64            `yaml:"seed"`
	InitState        InitStateConfig  `yaml:"init_state"`
	ControllerParams ControllerConfig `yaml:"controller_params"`
}

type InitStateConfig struct {
	Na     float64 `yaml:"na"`
	Nb     float64 `yaml:"nb"`
	Nc     float64 `yaml:"nc"`
	Power  float64 `yaml:"power"`
	Rho    float64 `yaml:"rho"`
	Nodes  int     `yaml:"nodes"`
	TInit  float64 `yaml:"t_init"`
	Iodine float64 `yaml:"iodine"`
	Xenon  float64 `yaml:"xenon"`
}

type ControllerConfig struct {
	Kp     float64 `yaml:"kp"`
	Ki     float64 `yaml:"ki"`
	Kd     float64 `yaml:"kd"`
	Target float64 `yaml:"target"`
	Rate   float64 `yaml:"rate"`
	Limit  float64 `yaml:"limit"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:      "decay",
		Integrator: "rk4",
		Controller: "none",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		InitState: InitStateConfig{
			Na:    DefaultNa,
			Power: DefaultPower,
			Nodes: DefaultNodes,
		},
		ControllerParams: ControllerConfig{
			Kp:     DefaultKp,
			Ki:     DefaultKi,
			Kd:     DefaultKd,
			Target: DefaultPower,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// GetInitState builds the flat initial state for models whose layout is
// known from the config alone. Kinetics and heat return nil; their initial
// states depend on model parameters (equilibrium precursors, node count)
// and are built by the model's DefaultState instead.
func (c *Config) GetInitState() []float64 {
	switch c.Model {
	case "decay":
		return []float64{c.InitState.Na, c.InitState.Nb, c.InitState.Nc}
	case "xenon":
		return []float64{c.InitState.Iodine, c.InitState.Xenon}
	case "kinetics", "heat":
		return nil
	default:
		return []float64{c.InitState.Na, c.InitState.Nb, c.InitState.Nc}
	}
}

func (c *Config) GetControllerParams(controlDim int) map[string]float64 {
	return map[string]float64{
		"dim":    float64(controlDim),
		"kp":     c.ControllerParams.Kp,
		"ki":     c.ControllerParams.Ki,
		"kd":     c.ControllerParams.Kd,
		"target": c.ControllerParams.Target,
		"rate":   c.ControllerParams.Rate,
		"limit":  c.ControllerParams.Limit,
	}
}
