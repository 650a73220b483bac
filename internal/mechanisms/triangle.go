package mechanisms

import "github.com/san-kum/kinsim/internal/kin"

// Triangle is the three-species reversible scheme
//
//	A <=> B   (k1f, k1r)
//	B <=> C   (k2f, k2r)
//	A <=> C   (k3f, k3r)
//
// Rate law:
//
//	dA/dt = k1r*B + k3r*C - (k1f + k3f)*A
//	dB/dt = k1f*A + k2r*C - (k2f + k1r)*B
//	dC/dt = k3f*A + k2f*B - (k3r + k2r)*C
//
// The system is linear with a unique equilibrium for any total; the
// three rates sum to zero for all inputs (mass balance). Forward rates
// span two orders of magnitude, a mild stiffness explicit integrators
// absorb with a small enough step.
type Triangle struct {
	k1f, k1r float64
	k2f, k2r float64
	k3f, k3r float64
}

func NewTriangle() *Triangle {
	return &Triangle{
		k1f: 900, k1r: 9,
		k2f: 100, k2r: 1,
		k3f: 30, k3r: 3,
	}
}

func (tr *Triangle) Dim() int          { return 3 }
func (tr *Triangle) Species() []string { return []string{"A", "B", "C"} }

func (tr *Triangle) Rates(c kin.Conc, _ float64) kin.Conc {
	a, b, cc := c[0], c[1], c[2]
	return kin.Conc{
		tr.k1r*b + tr.k3r*cc - (tr.k1f+tr.k3f)*a,
		tr.k1f*a + tr.k2r*cc - (tr.k2f+tr.k1r)*b,
		tr.k3f*a + tr.k2f*b - (tr.k3r+tr.k2r)*cc,
	}
}

func (tr *Triangle) DefaultConc() kin.Conc { return kin.Conc{1, 0, 0} }

func (tr *Triangle) Total(c kin.Conc) float64 { return c[0] + c[1] + c[2] }

// Equilibrium solves the steady state by Cramer's rule on two rate
// equations plus the conservation constraint A+B+C = total. The rate
// matrix is singular (columns sum to zero), so conservation supplies
// the third row.
func (tr *Triangle) Equilibrium(total float64) kin.Conc {
	a11, a12, a13 := -(tr.k1f + tr.k3f), tr.k1r, tr.k3r
	a21, a22, a23 := tr.k1f, -(tr.k2f + tr.k1r), tr.k2r
	a31, a32, a33 := 1.0, 1.0, 1.0

	det := a11*(a22*a33-a23*a32) - a12*(a21*a33-a23*a31) + a13*(a21*a32-a22*a31)
	if det == 0 {
		return kin.Conc{0, 0, 0}
	}
	// rhs is (0, 0, total)
	detA := a12*a23*total - a13*a22*total
	detB := a13*a21*total - a11*a23*total
	detC := a11*a22*total - a12*a21*total
	return kin.Conc{detA / det, detB / det, detC / det}
}

func (tr *Triangle) GetParams() map[string]float64 {
	return map[string]float64{
		"k1f": tr.k1f, "k1r": tr.k1r,
		"k2f": tr.k2f, "k2r": tr.k2r,
		"k3f": tr.k3f, "k3r": tr.k3r,
	}
}

func (tr *Triangle) SetParam(name string, value float64) {
	switch name {
	case "k1f":
		tr.k1f = value
	case "k1r":
		tr.k1r = value
	case "k2f":
		tr.k2f = value
	case "k2r":
		tr.k2r = value
	case "k3f":
		tr.k3f = value
	case "k3r":
		tr.k3r = value
	}
}
