package mechanisms

import (
	"fmt"
	"math"

	"github.com/san-kum/kinsim/internal/kin"
)

// Reaction is one elementary mass-action step. Stoichiometric
// coefficients are indexed by species position in the owning network.
type Reaction struct {
	K         float64
	Reactants map[int]int
	Products  map[int]int
}

// Network is a generic mass-action reaction network assembled from
// elementary steps. Rate of each step is K times the product of
// reactant concentrations raised to their stoichiometric coefficients.
type Network struct {
	species   []string
	index     map[string]int
	reactions []Reaction
}

func NewNetwork(species ...string) *Network {
	idx := make(map[string]int, len(species))
	for i, s := range species {
		idx[s] = i
	}
	return &Network{species: species, index: idx}
}

// AddReaction registers an elementary step by species name, e.g.
//
//	n.AddReaction(900, map[string]int{"A": 1}, map[string]int{"B": 1})
func (n *Network) AddReaction(k float64, reactants, products map[string]int) error {
	if k < 0 {
		return fmt.Errorf("rate constant must be non-negative, got %g", k)
	}
	r := Reaction{K: k, Reactants: make(map[int]int), Products: make(map[int]int)}
	for name, coef := range reactants {
		i, ok := n.index[name]
		if !ok {
			return fmt.Errorf("%w: %q", kin.ErrUnknownSpecies, name)
		}
		r.Reactants[i] = coef
	}
	for name, coef := range products {
		i, ok := n.index[name]
		if !ok {
			return fmt.Errorf("%w: %q", kin.ErrUnknownSpecies, name)
		}
		r.Products[i] = coef
	}
	n.reactions = append(n.reactions, r)
	return nil
}

func (n *Network) Dim() int          { return len(n.species) }
func (n *Network) Species() []string { return n.species }

func (n *Network) Rates(c kin.Conc, _ float64) kin.Conc {
	out := make(kin.Conc, len(n.species))
	for _, r := range n.reactions {
		rate := r.K
		for i, coef := range r.Reactants {
			rate *= math.Pow(c[i], float64(coef))
		}
		for i, coef := range r.Reactants {
			out[i] -= float64(coef) * rate
		}
		for i, coef := range r.Products {
			out[i] += float64(coef) * rate
		}
	}
	return out
}

// Conserved reports whether every step preserves the total number of
// molecules; only then is Sum a meaningful invariant.
func (n *Network) Conserved() bool {
	for _, r := range n.reactions {
		in, out := 0, 0
		for _, coef := range r.Reactants {
			in += coef
		}
		for _, coef := range r.Products {
			out += coef
		}
		if in != out {
			return false
		}
	}
	return true
}

func (n *Network) Total(c kin.Conc) float64 { return c.Sum() }

func (n *Network) DefaultConc() kin.Conc {
	c := make(kin.Conc, len(n.species))
	if len(c) > 0 {
		c[0] = 1
	}
	return c
}
