package analysis

import (
	"math"
	"testing"
)

func TestDominantFrequency(t *testing.T) {
	// 4 Hz sine sampled at 128 Hz for 2 seconds
	dt := 1.0 / 128.0
	n := 256
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * 4 * float64(i) * dt)
	}

	freq, period := DominantFrequency(data, dt)

	if math.Abs(freq-4.0) > 0.5 {
		t.Errorf("expected ~4 Hz, got %g", freq)
	}
	if math.Abs(period-0.25) > 0.05 {
		t.Errorf("expected ~0.25 s period, got %g", period)
	}
}

func TestDominantFrequencyOffset(t *testing.T) {
	// DC offset must not mask the oscillation
	dt := 1.0 / 64.0
	data := make([]float64, 128)
	for i := range data {
		data[i] = 5.0 + 0.01*math.Sin(2*math.Pi*2*float64(i)*dt)
	}

	freq, _ := DominantFrequency(data, dt)
	if math.Abs(freq-2.0) > 0.5 {
		t.Errorf("expected ~2 Hz, got %g", freq)
	}
}

func TestPowerSpectrumEmpty(t *testing.T) {
	if ps := PowerSpectrum(nil); ps != nil {
		t.Errorf("expected nil for empty input, got %v", ps)
	}
}

func TestDominantFrequencyFlat(t *testing.T) {
	data := make([]float64, 64)
	for i := range data {
		data[i] = 1.0
	}

	freq, period := DominantFrequency(data, 0.01)
	if freq != 0 || period != 0 {
		t.Errorf("flat signal should have no peak, got freq=%g period=%g", freq, period)
	}
}

func TestRelaxationTime(t *testing.T) {
	// pure exponential approach with tau = 0.5
	tau := 0.5
	eq := []float64{0, 0, 1}
	var times []float64
	var concs [][]float64
	for i := 0; i < 100; i++ {
		tt := float64(i) * 0.01
		d := math.Exp(-tt / tau)
		times = append(times, tt)
		concs = append(concs, []float64{d, 0, 1 - d})
	}

	got := RelaxationTime(times, concs, eq)
	if math.Abs(got-tau) > 0.01 {
		t.Errorf("expected tau ~%g, got %g", tau, got)
	}
}

func TestRelaxationTimeNotDecaying(t *testing.T) {
	times := []float64{0, 1, 2}
	concs := [][]float64{{1, 0}, {2, 0}, {4, 0}}
	eq := []float64{0, 0}

	if got := RelaxationTime(times, concs, eq); !math.IsNaN(got) {
		t.Errorf("growing trajectory should yield NaN, got %g", got)
	}
}
