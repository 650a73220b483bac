package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/kinsim/internal/kin"
)

// decayMechanism is plain first-order decay with known solution
// c(t) = c0 * exp(-k*t).
type decayMechanism struct {
	k float64
}

func (d *decayMechanism) Dim() int          { return 1 }
func (d *decayMechanism) Species() []string { return []string{"A"} }
func (d *decayMechanism) Rates(c kin.Conc, _ float64) kin.Conc {
	return kin.Conc{-d.k * c[0]}
}

func TestRK4Accuracy(t *testing.T) {
	mech := &decayMechanism{k: 1.0}
	integ := NewRK4()

	c := kin.Conc{1.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		c = integ.Step(mech, c, float64(i)*dt, dt)
	}

	expected := math.Exp(-1.0)
	if math.Abs(c[0]-expected) > 1e-8 {
		t.Errorf("concentration error too large: got %.10f, expected %.10f", c[0], expected)
	}
}

func TestRK4ConvergenceOrder(t *testing.T) {
	mech := &decayMechanism{k: 1.0}
	integ := NewRK4()

	errAt := func(dt float64) float64 {
		c := kin.Conc{1.0}
		steps := int(1.0/dt + 0.5)
		for i := 0; i < steps; i++ {
			c = integ.Step(mech, c, float64(i)*dt, dt)
		}
		return math.Abs(c[0] - math.Exp(-1.0))
	}

	coarse := errAt(0.1)
	fine := errAt(0.05)

	// fourth order: halving dt should shrink the error ~16x
	ratio := coarse / fine
	if ratio < 10 {
		t.Errorf("expected ~16x error reduction on halved dt, got %.1fx", ratio)
	}
}

func TestEulerAccuracy(t *testing.T) {
	mech := &decayMechanism{k: 1.0}
	integ := NewEuler()

	c := kin.Conc{1.0}
	dt := 0.001
	steps := 1000

	for i := 0; i < steps; i++ {
		c = integ.Step(mech, c, float64(i)*dt, dt)
	}

	expected := math.Exp(-1.0)
	if math.Abs(c[0]-expected) > 1e-3 {
		t.Errorf("concentration error too large: got %.6f, expected %.6f", c[0], expected)
	}
}

func TestStepDoesNotMutateInput(t *testing.T) {
	mech := &decayMechanism{k: 1.0}

	integs := []kin.Integrator{NewEuler(), NewRK4(), NewRK45(), NewBackwardEuler()}

	for _, integ := range integs {
		c := kin.Conc{1.0}
		integ.Step(mech, c, 0, 0.01)
		if c[0] != 1.0 {
			t.Errorf("%T mutated its input: %v", integ, c)
		}
	}
}
