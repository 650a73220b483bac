package mechanisms

import "github.com/san-kum/kinsim/internal/kin"

// MichaelisMenten is the enzyme kinetics scheme
//
//	E + S <=> ES   (kf, kr)
//	ES -> E + P    (kcat)
//
// Species order: E, S, ES, P. Total enzyme E+ES is conserved, as is
// substrate material S+ES+P.
type MichaelisMenten struct {
	kf, kr, kcat float64
}

func NewMichaelisMenten() *MichaelisMenten {
	return &MichaelisMenten{kf: 100, kr: 10, kcat: 1}
}

func (mm *MichaelisMenten) Dim() int          { return 4 }
func (mm *MichaelisMenten) Species() []string { return []string{"E", "S", "ES", "P"} }

func (mm *MichaelisMenten) Rates(c kin.Conc, _ float64) kin.Conc {
	e, s, es := c[0], c[1], c[2]
	bind := mm.kf * e * s
	unbind := mm.kr * es
	turn := mm.kcat * es
	return kin.Conc{
		-bind + unbind + turn,
		-bind + unbind,
		bind - unbind - turn,
		turn,
	}
}

func (mm *MichaelisMenten) DefaultConc() kin.Conc { return kin.Conc{0.1, 1.0, 0, 0} }

// Total returns the conserved enzyme material E + ES.
func (mm *MichaelisMenten) Total(c kin.Conc) float64 { return c[0] + c[2] }

func (mm *MichaelisMenten) GetParams() map[string]float64 {
	return map[string]float64{"kf": mm.kf, "kr": mm.kr, "kcat": mm.kcat}
}

func (mm *MichaelisMenten) SetParam(name string, value float64) {
	switch name {
	case "kf":
		mm.kf = value
	case "kr":
		mm.kr = value
	case "kcat":
		mm.kcat = value
	}
}
