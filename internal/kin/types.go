package kin

import (
	"fmt"
	"math"
)

type Conc []float64

func (c Conc) Clone() Conc {
	out := make(Conc, len(c))
	copy(out, c)
	return out
}

func (c Conc) IsValid() bool {
	for _, v := range c {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Sum returns the total concentration. For closed mass-conserving
// networks it is an invariant of the dynamics.
func (c Conc) Sum() float64 {
	total := 0.0
	for _, v := range c {
		total += v
	}
	return total
}

func (c Conc) Norm() float64 {
	sum := 0.0
	for _, v := range c {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (c Conc) Add(other Conc) Conc {
	result := make(Conc, len(c))
	for i := range c {
		if i < len(other) {
			result[i] = c[i] + other[i]
		} else {
			result[i] = c[i]
		}
	}
	return result
}

func (c Conc) Sub(other Conc) Conc {
	result := make(Conc, len(c))
	for i := range c {
		if i < len(other) {
			result[i] = c[i] - other[i]
		} else {
			result[i] = c[i]
		}
	}
	return result
}

func (c Conc) Scale(factor float64) Conc {
	result := make(Conc, len(c))
	for i := range c {
		result[i] = c[i] * factor
	}
	return result
}

// Mechanism is a reaction network: Rates evaluates the instantaneous
// rate of change of every species concentration. Implementations must
// be stateless and referentially transparent; integrators evaluate
// Rates at trial points that are never committed.
type Mechanism interface {
	Rates(c Conc, t float64) Conc
	Species() []string
	Dim() int
}

// Conserver is implemented by mechanisms with a conserved scalar
// (total moles in a closed network, total enzyme, ...).
type Conserver interface {
	Total(c Conc) float64
}

// Equilibrator is implemented by mechanisms whose fixed point is known
// in closed form. The equilibrium scales with the conserved total.
type Equilibrator interface {
	Equilibrium(total float64) Conc
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64)
}

type Integrator interface {
	Step(m Mechanism, c Conc, t, dt float64) Conc
}

type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(m Mechanism, c Conc, t, dt, tol float64) (Conc, float64, error)
}

type Metric interface {
	Name() string
	Observe(c Conc, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(c Conc, t float64)
}

type Config struct {
	Dt            float64
	Duration      float64
	Tolerance     float64
	MaxDt         float64
	MinDt         float64
	Adaptive      bool
	ValidateState bool
	ClampNegative bool

	// Grid, when set, lists the times at which the solution is
	// reported. It is independent of the internal step size; the
	// simulator clamps steps to land on each grid point. When empty,
	// a uniform grid is built from Dt and Duration.
	Grid []float64
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.0001,
		Duration:      1.0,
		Tolerance:     1e-6,
		MaxDt:         0.01,
		MinDt:         1e-12,
		Adaptive:      false,
		ValidateState: true,
		ClampNegative: true,
	}
}

// Result is the solution table: one concentration row per reported
// time, columns positional per species.
type Result struct {
	Concs      []Conc
	Times      []float64
	Metrics    map[string]float64
	MassDrift  float64
	StepsTaken int
	Errors     []error
}

// Series returns the trajectory of a single species column.
func (r *Result) Series(idx int) []float64 {
	out := make([]float64, len(r.Concs))
	for i, c := range r.Concs {
		if idx < len(c) {
			out[i] = c[idx]
		}
	}
	return out
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.6f): %s", e.Step, e.Time, e.Message)
}
