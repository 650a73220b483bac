package mechanisms_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/kinsim/internal/kin"
	"github.com/san-kum/kinsim/internal/mechanisms"
)

var _ = Describe("Conservation laws", func() {
	Describe("Robertson", func() {
		It("conserves total material in the rate law", func() {
			r := mechanisms.NewRobertson()
			for _, c := range []kin.Conc{
				{1, 0, 0},
				{0.9, 1e-5, 0.1},
				{0.5, 3e-5, 0.5},
			} {
				rates := r.Rates(c, 0)
				Expect(rates[0] + rates[1] + rates[2]).To(BeNumerically("~", 0, 1e-9))
			}
		})

		It("consumes A from the initial state", func() {
			r := mechanisms.NewRobertson()
			rates := r.Rates(r.DefaultConc(), 0)
			Expect(rates[0]).To(BeNumerically("<", 0))
			Expect(rates[1]).To(BeNumerically(">", 0))
		})
	})

	Describe("MichaelisMenten", func() {
		It("conserves enzyme material E + ES", func() {
			mm := mechanisms.NewMichaelisMenten()
			for _, c := range []kin.Conc{
				{0.1, 1, 0, 0},
				{0.05, 0.8, 0.05, 0.15},
			} {
				rates := mm.Rates(c, 0)
				Expect(rates[0] + rates[2]).To(BeNumerically("~", 0, 1e-12))
			}
		})

		It("conserves substrate material S + ES + P", func() {
			mm := mechanisms.NewMichaelisMenten()
			c := kin.Conc{0.05, 0.8, 0.05, 0.15}
			rates := mm.Rates(c, 0)
			Expect(rates[1] + rates[2] + rates[3]).To(BeNumerically("~", 0, 1e-12))
		})

		It("only produces product", func() {
			mm := mechanisms.NewMichaelisMenten()
			rates := mm.Rates(kin.Conc{0.05, 0.8, 0.05, 0.15}, 0)
			Expect(rates[3]).To(BeNumerically(">", 0))
		})
	})

	Describe("Cascade", func() {
		It("drains A monotonically", func() {
			cs := mechanisms.NewCascade()
			for _, c := range []kin.Conc{
				{1, 0, 0},
				{0.5, 0.3, 0.2},
				{0.01, 0.01, 0.98},
			} {
				rates := cs.Rates(c, 0)
				Expect(rates[0]).To(BeNumerically("<=", 0))
				Expect(rates[2]).To(BeNumerically(">=", 0))
				Expect(rates[0] + rates[1] + rates[2]).To(BeNumerically("~", 0, 1e-12))
			}
		})

		It("ends with everything in C", func() {
			cs := mechanisms.NewCascade()
			eq := cs.Equilibrium(2.0)
			Expect(eq).To(Equal(kin.Conc{0, 0, 2.0}))
			rates := cs.Rates(eq, 0)
			for _, r := range rates {
				Expect(r).To(BeZero())
			}
		})
	})
})
