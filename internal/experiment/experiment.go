package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/kinsim/internal/kin"
	"github.com/san-kum/kinsim/internal/sim"
)

type Config struct {
	Mechanism  string
	Integrator string
	InitConc   []float64
	Dt         float64
	Duration   float64
	Tolerance  float64
	Adaptive   bool
	Grid       []float64
}

type Experiment struct {
	cfg       Config
	simulator *sim.Simulator
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(mech kin.Mechanism, integ kin.Integrator, metrics []kin.Metric) error {
	e.simulator = sim.New(mech, integ)
	for _, m := range metrics {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*kin.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	c0 := make(kin.Conc, len(e.cfg.InitConc))
	copy(c0, e.cfg.InitConc)

	simCfg := kin.DefaultConfig()
	simCfg.Dt = e.cfg.Dt
	simCfg.Duration = e.cfg.Duration
	simCfg.Adaptive = e.cfg.Adaptive
	simCfg.Grid = e.cfg.Grid
	if e.cfg.Tolerance > 0 {
		simCfg.Tolerance = e.cfg.Tolerance
	}

	return e.simulator.Run(ctx, c0, simCfg)
}

// GetSimulator returns the underlying simulator for adding observers.
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}
