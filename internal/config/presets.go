package config

var Presets = map[string]map[string]*Config{
	"decay": {
		"sealed": {
			Model: "decay", Integrator: "rk4", Dt: 0.01, Duration: 60.0,
			InitState: InitStateConfig{Na: 100.0},
		},
		"sourced": {
			Model: "decay", Integrator: "rk4", Dt: 0.01, Duration: 120.0,
			InitState: InitStateConfig{Na: 50.0},
		},
		"secular": {
			Model: "decay", Integrator: "rk45", Dt: 0.01, Duration: 400.0,
			InitState: InitStateConfig{Na: 10.0},
		},
	},
	"kinetics": {
		"critical": {
			Model: "kinetics", Integrator: "rk45", Dt: 0.001, Duration: 30.0,
			InitState: InitStateConfig{Power: 1.0},
		},
		"rod_withdrawal": {
			Model: "kinetics", Integrator: "rk45", Controller: "ramp", Dt: 0.001, Duration: 20.0,
			InitState:        InitStateConfig{Power: 1.0},
			ControllerParams: ControllerConfig{Rate: 0.0001, Limit: 0.001},
		},
		"scram": {
			Model: "kinetics", Integrator: "rk45", Controller: "ramp", Dt: 0.001, Duration: 10.0,
			InitState:        InitStateConfig{Power: 1.0},
			ControllerParams: ControllerConfig{Rate: -0.01, Limit: 0.05},
		},
		"power_hold": {
			Model: "kinetics", Integrator: "rk45", Controller: "pid", Dt: 0.001, Duration: 30.0,
			InitState:        InitStateConfig{Power: 0.8},
			ControllerParams: ControllerConfig{Kp: 0.002, Ki: 0.0005, Target: 1.0},
		},
	},
	"heat": {
		"cooldown": {
			Model: "heat", Integrator: "rk4", Dt: 0.05, Duration: 2000.0,
			InitState: InitStateConfig{Nodes: 21, TInit: 300.0},
		},
		"hotwall": {
			Model: "heat", Integrator: "rk4", Dt: 0.05, Duration: 4000.0,
			InitState: InitStateConfig{Nodes: 41, TInit: 20.0},
		},
	},
	"xenon": {
		"startup": {
			Model: "xenon", Integrator: "rk45", Dt: 1.0, Duration: 360000.0,
			InitState: InitStateConfig{},
		},
		"shutdown": {
			Model: "xenon", Integrator: "rk45", Dt: 1.0, Duration: 180000.0,
			InitState: InitStateConfig{Iodine: 2.9e15, Xenon: 5.0e14},
		},
	},
}

func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	return names
}
