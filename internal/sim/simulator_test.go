package sim

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/kinsim/internal/integrators"
	"github.com/san-kum/kinsim/internal/kin"
	"github.com/san-kum/kinsim/internal/mechanisms"
	"github.com/san-kum/kinsim/internal/metrics"
)

type testDecay struct{}

func (d *testDecay) Dim() int          { return 1 }
func (d *testDecay) Species() []string { return []string{"A"} }
func (d *testDecay) Rates(c kin.Conc, _ float64) kin.Conc {
	return kin.Conc{-c[0]}
}

func TestSimulatorRun(t *testing.T) {
	s := New(&testDecay{}, integrators.NewRK4())

	cfg := kin.DefaultConfig()
	cfg.Dt = 0.1
	cfg.Duration = 1.0

	result, err := s.Run(context.Background(), kin.Conc{1.0}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Concs) != 11 {
		t.Errorf("expected 11 samples, got %d", len(result.Concs))
	}
	if len(result.Times) != 11 {
		t.Errorf("expected 11 times, got %d", len(result.Times))
	}

	final := result.Concs[len(result.Concs)-1][0]
	expected := math.Exp(-1.0)
	if math.Abs(final-expected) > 1e-6 {
		t.Errorf("expected final concentration ~%.6f, got %.6f", expected, final)
	}
}

func TestSimulatorCustomGrid(t *testing.T) {
	s := New(&testDecay{}, integrators.NewRK4())

	grid := []float64{0, 0.25, 0.5, 1.0}
	cfg := kin.DefaultConfig()
	cfg.Dt = 0.01
	cfg.Grid = grid

	result, err := s.Run(context.Background(), kin.Conc{1.0}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Times) != len(grid) {
		t.Fatalf("expected %d samples, got %d", len(grid), len(result.Times))
	}

	// samples land on the requested grid exactly
	for i, want := range grid {
		if result.Times[i] != want {
			t.Errorf("time[%d]: expected %g, got %g", i, want, result.Times[i])
		}
		expected := math.Exp(-want)
		if math.Abs(result.Concs[i][0]-expected) > 1e-6 {
			t.Errorf("conc at t=%g: expected %.6f, got %.6f", want, expected, result.Concs[i][0])
		}
	}
}

func TestSimulatorTwoSegmentGrid(t *testing.T) {
	grid, err := kin.TwoSegmentGrid(0, 0.1, 1.0, 0.01, 0.1)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}

	s := New(&testDecay{}, integrators.NewRK4())
	cfg := kin.DefaultConfig()
	cfg.Dt = 0.005
	cfg.Grid = grid

	result, err := s.Run(context.Background(), kin.Conc{1.0}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Times) != len(grid) {
		t.Errorf("expected %d samples, got %d", len(grid), len(result.Times))
	}
	for i := range grid {
		if result.Times[i] != grid[i] {
			t.Errorf("time[%d]: expected %g, got %g", i, grid[i], result.Times[i])
		}
	}
}

func TestSimulatorTriangleEquilibrates(t *testing.T) {
	tr := mechanisms.NewTriangle()
	s := New(tr, integrators.NewRK4())

	cfg := kin.DefaultConfig()
	cfg.Dt = 0.0001
	cfg.Duration = 1.0

	result, err := s.Run(context.Background(), tr.DefaultConc(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.MassDrift > 1e-9 {
		t.Errorf("mass drift too large: %g", result.MassDrift)
	}

	final := result.Concs[len(result.Concs)-1]
	eq := tr.Equilibrium(1.0)
	for i := range eq {
		if math.Abs(final[i]-eq[i]) > 1e-6 {
			t.Errorf("species %d: expected %.8f at equilibrium, got %.8f", i, eq[i], final[i])
		}
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	s := New(&testDecay{}, integrators.NewRK4())

	tests := []struct {
		name string
		cfg  kin.Config
	}{
		{"zero dt", kin.Config{Dt: 0, Duration: 1.0}},
		{"negative dt", kin.Config{Dt: -0.1, Duration: 1.0}},
		{"zero duration", kin.Config{Dt: 0.1, Duration: 0}},
		{"bad grid", kin.Config{Dt: 0.1, Duration: 1, Grid: []float64{0, 0.5, 0.2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Run(context.Background(), kin.Conc{1.0}, tt.cfg)
			if err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSimulatorDimensionMismatch(t *testing.T) {
	s := New(mechanisms.NewTriangle(), integrators.NewRK4())

	cfg := kin.DefaultConfig()
	_, err := s.Run(context.Background(), kin.Conc{1.0}, cfg)
	if err == nil {
		t.Fatal("expected dimension mismatch error")
	}
}

func TestSimulatorCancellation(t *testing.T) {
	s := New(mechanisms.NewTriangle(), integrators.NewRK4())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := kin.DefaultConfig()
	cfg.Dt = 1e-6
	cfg.Duration = 10.0

	_, err := s.Run(ctx, mechanisms.NewTriangle().DefaultConc(), cfg)
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSimulatorPositivityObservesBeforeClamp(t *testing.T) {
	// explicit Euler at dt=3 overshoots the decay to c = -2; the
	// positivity metric must see that raw value even though the
	// recorded state is clamped back to zero
	s := New(&testDecay{}, integrators.NewEuler())
	pos := metrics.NewPositivity()
	s.AddMetric(pos)

	cfg := kin.DefaultConfig()
	cfg.Dt = 3.0
	cfg.Duration = 3.0

	result, err := s.Run(context.Background(), kin.Conc{1.0}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Metrics["negativity_violations"] < 1 {
		t.Errorf("expected at least one violation, got %g", result.Metrics["negativity_violations"])
	}

	final := result.Concs[len(result.Concs)-1]
	if final[0] != 0 {
		t.Errorf("expected clamped concentration 0, got %g", final[0])
	}
}

type nanMechanism struct{}

func (n *nanMechanism) Dim() int          { return 1 }
func (n *nanMechanism) Species() []string { return []string{"A"} }
func (n *nanMechanism) Rates(c kin.Conc, _ float64) kin.Conc {
	return kin.Conc{math.NaN()}
}

func TestSimulatorInvalidStateError(t *testing.T) {
	s := New(&nanMechanism{}, integrators.NewEuler())

	cfg := kin.DefaultConfig()
	cfg.Dt = 0.1
	cfg.Duration = 1.0

	result, err := s.Run(context.Background(), kin.Conc{1.0}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Errors) == 0 {
		t.Fatal("expected an error for NaN state")
	}
	if !strings.Contains(result.Errors[0].Error(), kin.ErrInvalidConc.Error()) {
		t.Errorf("expected %q in error, got %q", kin.ErrInvalidConc.Error(), result.Errors[0].Error())
	}
	// the run halts at the first invalid state
	if result.StepsTaken != 1 {
		t.Errorf("expected 1 step before halt, got %d", result.StepsTaken)
	}
}

type testMetric struct {
	count int
}

func (m *testMetric) Name() string                  { return "test" }
func (m *testMetric) Observe(c kin.Conc, t float64) { m.count++ }
func (m *testMetric) Value() float64                { return float64(m.count) }
func (m *testMetric) Reset()                        { m.count = 0 }

func TestSimulatorMetrics(t *testing.T) {
	s := New(&testDecay{}, integrators.NewRK4())

	metric := &testMetric{}
	s.AddMetric(metric)

	cfg := kin.DefaultConfig()
	cfg.Dt = 0.1
	cfg.Duration = 1.0

	result, err := s.Run(context.Background(), kin.Conc{1.0}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if _, ok := result.Metrics["test"]; !ok {
		t.Error("metric not found in result")
	}
	if metric.count != 10 {
		t.Errorf("expected 10 observations, got %d", metric.count)
	}
}
