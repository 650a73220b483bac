package metrics

import (
	"math"

	"github.com/san-kum/kinsim/internal/kin"
)

// MassBalance tracks the relative drift of a conserved total over a
// run. For closed networks the rates sum to zero, so any drift is
// integration error.
type MassBalance struct {
	name         string
	cons         kin.Conserver
	initialTotal float64
	maxDrift     float64
	samples      int
}

func NewMassBalance(cons kin.Conserver) *MassBalance {
	return &MassBalance{
		name: "mass_drift",
		cons: cons,
	}
}

func (mb *MassBalance) Name() string { return mb.name }

func (mb *MassBalance) Observe(c kin.Conc, t float64) {
	total := mb.cons.Total(c)

	if mb.samples == 0 {
		mb.initialTotal = total
	}
	mb.samples++

	if mb.initialTotal != 0 {
		drift := math.Abs(total-mb.initialTotal) / math.Abs(mb.initialTotal)
		mb.maxDrift = math.Max(mb.maxDrift, drift)
	}
}

func (mb *MassBalance) Value() float64 {
	return mb.maxDrift
}

func (mb *MassBalance) Reset() {
	mb.initialTotal = 0
	mb.maxDrift = 0
	mb.samples = 0
}
