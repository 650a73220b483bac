package metrics

import (
	"math"

	"github.com/san-kum/kinsim/internal/kin"
)

// EquilibriumDistance records the Euclidean distance from the known
// fixed point, and the first time the trajectory settles within 1% of
// its initial distance.
type EquilibriumDistance struct {
	name         string
	eq           kin.Conc
	initialDist  float64
	lastDist     float64
	settlingTime float64
	settled      bool
	samples      int
}

func NewEquilibriumDistance(eq kin.Conc) *EquilibriumDistance {
	return &EquilibriumDistance{
		name:         "eq_distance",
		eq:           eq,
		settlingTime: math.NaN(),
	}
}

func (ed *EquilibriumDistance) Name() string { return ed.name }

func (ed *EquilibriumDistance) Observe(c kin.Conc, t float64) {
	dist := c.Sub(ed.eq).Norm()

	if ed.samples == 0 {
		ed.initialDist = dist
	}
	ed.samples++
	ed.lastDist = dist

	if !ed.settled && ed.initialDist > 0 && dist < 0.01*ed.initialDist {
		ed.settlingTime = t
		ed.settled = true
	}
}

func (ed *EquilibriumDistance) Value() float64 { return ed.lastDist }

// SettlingTime returns NaN when the run never came within 1% of the
// starting distance.
func (ed *EquilibriumDistance) SettlingTime() float64 { return ed.settlingTime }

func (ed *EquilibriumDistance) Reset() {
	ed.initialDist = 0
	ed.lastDist = 0
	ed.settlingTime = math.NaN()
	ed.settled = false
	ed.samples = 0
}
