package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/kinsim/internal/integrators"
	"github.com/san-kum/kinsim/internal/kin"
	"github.com/san-kum/kinsim/internal/mechanisms"
	"github.com/san-kum/kinsim/internal/metrics"
)

type Registry struct {
	mechanisms  map[string]func() kin.Mechanism
	integrators map[string]func() kin.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		mechanisms:  make(map[string]func() kin.Mechanism),
		integrators: make(map[string]func() kin.Integrator),
	}

	r.mechanisms["triangle"] = func() kin.Mechanism { return mechanisms.NewTriangle() }
	r.mechanisms["cascade"] = func() kin.Mechanism { return mechanisms.NewCascade() }
	r.mechanisms["robertson"] = func() kin.Mechanism { return mechanisms.NewRobertson() }
	r.mechanisms["brusselator"] = func() kin.Mechanism { return mechanisms.NewBrusselator() }
	r.mechanisms["oregonator"] = func() kin.Mechanism { return mechanisms.NewOregonator() }
	r.mechanisms["lotka"] = func() kin.Mechanism { return mechanisms.NewLotkaVolterra() }
	r.mechanisms["michaelis"] = func() kin.Mechanism { return mechanisms.NewMichaelisMenten() }

	r.integrators["euler"] = func() kin.Integrator { return integrators.NewEuler() }
	r.integrators["rk4"] = func() kin.Integrator { return integrators.NewRK4() }
	r.integrators["rk45"] = func() kin.Integrator { return integrators.NewRK45() }
	r.integrators["backward_euler"] = func() kin.Integrator { return integrators.NewBackwardEuler() }

	return r
}

func (r *Registry) GetMechanism(name string) (kin.Mechanism, error) {
	fn, ok := r.mechanisms[name]
	if !ok {
		return nil, fmt.Errorf("unknown mechanism: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetIntegrator(name string) (kin.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) MechanismFactory(name string) (func() kin.Mechanism, bool) {
	fn, ok := r.mechanisms[name]
	return fn, ok
}

func (r *Registry) IntegratorFactory(name string) (func() kin.Integrator, bool) {
	fn, ok := r.integrators[name]
	return fn, ok
}

// MechanismFactoryWith returns a factory whose every instance carries
// the given rate-constant overrides. Overrides are validated once, up
// front, so ensemble workers cannot fail on a bad name mid-run.
func (r *Registry) MechanismFactoryWith(name string, overrides map[string]float64) (func() kin.Mechanism, error) {
	fn, ok := r.mechanisms[name]
	if !ok {
		return nil, fmt.Errorf("unknown mechanism: %s", name)
	}
	if len(overrides) == 0 {
		return fn, nil
	}

	tunable, ok := fn().(kin.Configurable)
	if !ok {
		return nil, fmt.Errorf("mechanism %s does not support rate overrides", name)
	}
	known := tunable.GetParams()
	for p := range overrides {
		if _, exists := known[p]; !exists {
			return nil, fmt.Errorf("unknown rate constant: %s", p)
		}
	}

	return func() kin.Mechanism {
		m := fn()
		c := m.(kin.Configurable)
		for p, v := range overrides {
			c.SetParam(p, v)
		}
		return m
	}, nil
}

func (r *Registry) ListMechanisms() []string {
	names := make([]string, 0, len(r.mechanisms))
	for name := range r.mechanisms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics picks the observations a mechanism supports: mass
// drift for closed networks, distance to the fixed point when it is
// known, and negativity violations always.
func (r *Registry) DefaultMetrics(m kin.Mechanism, c0 kin.Conc) []kin.Metric {
	out := []kin.Metric{metrics.NewPositivity()}

	cons, hasTotal := m.(kin.Conserver)
	if hasTotal {
		out = append(out, metrics.NewMassBalance(cons))
	}
	if eqr, ok := m.(kin.Equilibrator); ok {
		total := 0.0
		if hasTotal {
			total = cons.Total(c0)
		}
		out = append(out, metrics.NewEquilibriumDistance(eqr.Equilibrium(total)))
	}
	return out
}
