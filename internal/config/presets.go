package config

import "sort"

var Presets = map[string]map[string]*Config{
	"triangle": {
		"equilibrate": {
			Mechanism: "triangle", Integrator: "rk4", Dt: 0.0001, Duration: 1.0,
			InitConc: map[string]float64{"A": 1},
		},
		"fine-onset": {
			Mechanism: "triangle", Integrator: "rk4", Dt: 0.0001, Duration: 2.0,
			Grid:     GridConfig{Join: 0.05, FineDt: 0.0005, CoarseDt: 0.025},
			InitConc: map[string]float64{"A": 1},
		},
		"stiff-step": {
			Mechanism: "triangle", Integrator: "backward_euler", Dt: 0.01, Duration: 2.0,
			InitConc: map[string]float64{"A": 1},
		},
	},
	"cascade": {
		"decay": {
			Mechanism: "cascade", Integrator: "rk4", Dt: 0.001, Duration: 10.0,
			InitConc: map[string]float64{"A": 1},
		},
	},
	"robertson": {
		"long": {
			Mechanism: "robertson", Integrator: "backward_euler", Dt: 0.001, Duration: 100.0,
			Grid:     GridConfig{Join: 1.0, FineDt: 0.01, CoarseDt: 1.0},
			InitConc: map[string]float64{"A": 1},
		},
	},
	"brusselator": {
		"oscillate": {
			Mechanism: "brusselator", Integrator: "rk4", Dt: 0.001, Duration: 50.0,
			InitConc: map[string]float64{"X": 1, "Y": 1},
		},
	},
	"oregonator": {
		"bz": {
			Mechanism: "oregonator", Integrator: "rk45", Adaptive: true,
			Dt: 1e-5, Duration: 400.0, Tolerance: 1e-7,
			InitConc: map[string]float64{"X": 1, "Y": 2, "Z": 3},
		},
	},
	"lotka": {
		"cycle": {
			Mechanism: "lotka", Integrator: "rk4", Dt: 0.001, Duration: 40.0,
			InitConc: map[string]float64{"X": 1, "Y": 1},
		},
	},
	"michaelis": {
		"turnover": {
			Mechanism: "michaelis", Integrator: "rk4", Dt: 0.0001, Duration: 20.0,
			InitConc: map[string]float64{"E": 0.1, "S": 1},
		},
	},
}

func GetPreset(mechanism, name string) *Config {
	group, ok := Presets[mechanism]
	if !ok {
		return nil
	}
	return group[name]
}

func ListPresets(mechanism string) []string {
	group, ok := Presets[mechanism]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
