package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/kinsim/internal/kin"
)

// Simulator advances a mechanism over a caller-supplied output grid.
// The internal step size is independent of the grid: steps are clamped
// to land exactly on every grid point, so the solution table rows
// correspond positionally to the requested times.
type Simulator struct {
	mech      kin.Mechanism
	integ     kin.Integrator
	metrics   []kin.Metric
	observers []kin.Observer
}

func New(mech kin.Mechanism, integ kin.Integrator) *Simulator {
	return &Simulator{
		mech:      mech,
		integ:     integ,
		metrics:   make([]kin.Metric, 0),
		observers: make([]kin.Observer, 0),
	}
}

func (s *Simulator) AddMetric(m kin.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o kin.Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Run(ctx context.Context, c0 kin.Conc, cfg kin.Config) (*kin.Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	if len(c0) != s.mech.Dim() {
		return nil, fmt.Errorf("%w: got %d species, mechanism has %d",
			kin.ErrDimensionMismatch, len(c0), s.mech.Dim())
	}

	grid := cfg.Grid
	if len(grid) == 0 {
		var err error
		grid, err = kin.UniformGrid(0, cfg.Duration, cfg.Dt)
		if err != nil {
			return nil, err
		}
	} else if err := kin.ValidateGrid(grid); err != nil {
		return nil, err
	}

	result := &kin.Result{
		Concs:   make([]kin.Conc, 0, len(grid)),
		Times:   make([]float64, 0, len(grid)),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	c := c0.Clone()
	t := grid[0]
	dt := cfg.Dt

	result.Concs = append(result.Concs, c.Clone())
	result.Times = append(result.Times, t)

	initialTotal := s.computeTotal(c)

grid:
	for gi := 1; gi < len(grid); gi++ {
		target := grid[gi]

		for t < target-1e-12*math.Max(1, math.Abs(target)) {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			default:
			}

			h := math.Min(dt, target-t)

			var newC kin.Conc
			if cfg.Adaptive {
				if adaptive, ok := s.integ.(kin.AdaptiveIntegrator); ok {
					var next float64
					var stepErr error
					newC, next, stepErr = adaptive.StepAdaptive(s.mech, c, t, h, cfg.Tolerance)
					if stepErr != nil {
						result.Errors = append(result.Errors, stepErr)
					}
					dt = math.Min(math.Max(next, cfg.MinDt), cfg.MaxDt)
					if next < cfg.MinDt {
						result.Errors = append(result.Errors, kin.ErrStepTooSmall)
						break grid
					}
				} else {
					newC = s.integ.Step(s.mech, c, t, h)
				}
			} else {
				newC = s.integ.Step(s.mech, c, t, h)
			}

			t += h
			result.StepsTaken++

			if cfg.ValidateState && !newC.IsValid() {
				result.Errors = append(result.Errors,
					kin.SimError{Time: t, Step: result.StepsTaken, Message: kin.ErrInvalidConc.Error()})
				break grid
			}

			// metrics and observers see the raw step output, before
			// any clamping
			for _, m := range s.metrics {
				m.Observe(newC, t)
			}
			for _, obs := range s.observers {
				obs.OnStep(newC, t)
			}

			if cfg.ClampNegative {
				for i, v := range newC {
					if v < 0 {
						newC[i] = 0
					}
				}
			} else {
				for _, v := range newC {
					if v < -1e-12 {
						result.Errors = append(result.Errors,
							kin.SimError{Time: t, Step: result.StepsTaken, Message: kin.ErrNegativeConc.Error()})
						break
					}
				}
			}

			c = newC
		}

		result.Concs = append(result.Concs, c.Clone())
		result.Times = append(result.Times, target)
	}

	finalTotal := s.computeTotal(c)
	if initialTotal != 0 {
		result.MassDrift = math.Abs(finalTotal-initialTotal) / math.Abs(initialTotal)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) validateConfig(cfg kin.Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 && len(cfg.Grid) == 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if cfg.Adaptive && cfg.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive for adaptive stepping")
	}
	return nil
}

func (s *Simulator) computeTotal(c kin.Conc) float64 {
	if cons, ok := s.mech.(kin.Conserver); ok {
		return cons.Total(c)
	}
	return 0
}
