package kin

import (
	"math"
	"testing"
)

func TestConcClone(t *testing.T) {
	c := Conc{1, 0.5, 0}
	clone := c.Clone()

	clone[0] = 99
	if c[0] != 1 {
		t.Error("clone shares backing array with original")
	}
}

func TestConcIsValid(t *testing.T) {
	if !(Conc{1, 0, 0}).IsValid() {
		t.Error("finite concentrations reported invalid")
	}
	if (Conc{1, math.NaN(), 0}).IsValid() {
		t.Error("NaN concentration reported valid")
	}
	if (Conc{1, math.Inf(1), 0}).IsValid() {
		t.Error("Inf concentration reported valid")
	}
}

func TestConcArithmetic(t *testing.T) {
	a := Conc{1, 2, 3}
	b := Conc{0.5, 0.5, 0.5}

	sum := a.Add(b)
	if sum[0] != 1.5 || sum[1] != 2.5 || sum[2] != 3.5 {
		t.Errorf("Add: got %v", sum)
	}

	diff := a.Sub(b)
	if diff[0] != 0.5 || diff[1] != 1.5 || diff[2] != 2.5 {
		t.Errorf("Sub: got %v", diff)
	}

	scaled := a.Scale(2)
	if scaled[0] != 2 || scaled[1] != 4 || scaled[2] != 6 {
		t.Errorf("Scale: got %v", scaled)
	}

	if a.Sum() != 6 {
		t.Errorf("Sum: expected 6, got %g", a.Sum())
	}

	if math.Abs((Conc{3, 4}).Norm()-5) > 1e-12 {
		t.Errorf("Norm: expected 5, got %g", (Conc{3, 4}).Norm())
	}
}

func TestResultSeries(t *testing.T) {
	r := &Result{
		Concs: []Conc{{1, 0}, {0.8, 0.2}, {0.5, 0.5}},
		Times: []float64{0, 1, 2},
	}

	s := r.Series(1)
	want := []float64{0, 0.2, 0.5}
	for i := range want {
		if s[i] != want[i] {
			t.Errorf("series[%d]: expected %g, got %g", i, want[i], s[i])
		}
	}
}

func TestSimErrorFormat(t *testing.T) {
	e := SimError{Time: 0.5, Step: 12, Message: "boom"}
	want := "step 12 (t=0.500000): boom"
	if e.Error() != want {
		t.Errorf("expected %q, got %q", want, e.Error())
	}
}
