package reaction

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/nuckage/internal/nucdata"
)

var _ = Describe("Chain", func() {
	var (
		tbl              *nucdata.Table
		li7, he3, d, be8 nucdata.Nuclide
		he4, p, c12      nucdata.Nuclide
	)

	BeforeEach(func() {
		tbl = mustTable(GinkgoT(), testTable)
		li7, he3, d, be8 = tbl.Nuclide(3, 7), tbl.Nuclide(2, 3), tbl.Nuclide(1, 2), tbl.Nuclide(4, 8)
		he4, p, c12 = tbl.Nuclide(2, 4), tbl.Nuclide(1, 1), tbl.Nuclide(6, 12)
	})

	Context("when empty", func() {
		It("never verifies", func() {
			c := NewChain(nil)
			Expect(c.Verify()).To(BeFalse())
			Expect(c.Validate()).To(MatchError(ErrEmptyChain))
			Expect(c.String()).To(BeEmpty())
		})
	})

	Context("with a continuous two-step chain", func() {
		var c *Chain

		BeforeEach(func() {
			c = NewChain(nil)
			c.AddStep(tbl, []nucdata.Nuclide{li7, he3, d}, 3.03, 0.5, 10, 0.1)
			c.AddStep(tbl, []nucdata.Nuclide{be8, he4}, 0, 0, 0, 0)
		})

		It("verifies", func() {
			Expect(c.Validate()).To(Succeed())
			Expect(c.Verify()).To(BeTrue())
			Expect(c.Len()).To(Equal(2))
		})

		It("renders the chain equation", func() {
			Expect(c.String()).To(Equal("7Li(3He,2H)8Be->4He+4He"))
		})
	})

	Context("when a step target is not the previous residual", func() {
		It("fails regardless of energetics", func() {
			c := NewChain(nil)
			c.AddStep(tbl, []nucdata.Nuclide{c12, d, p}, 0, 0, 50, 0)
			c.AddStep(tbl, []nucdata.Nuclide{be8, he4}, 0, 0, 0, 0)

			Expect(c.Verify()).To(BeFalse())

			err := c.Validate()
			Expect(errors.Is(err, ErrDiscontinuous)).To(BeTrue())
			var se *StepError
			Expect(errors.As(err, &se)).To(BeTrue())
			Expect(se.Index).To(Equal(1))
		})
	})

	Context("when the first step is below threshold", func() {
		It("fails at step 0", func() {
			c := NewChain(nil)
			c.AddStep(tbl, []nucdata.Nuclide{li7, p, tbl.Nuclide(0, 1)}, 0, 0, 1.0, 0)

			err := c.Validate()
			Expect(errors.Is(err, ErrBelowThreshold)).To(BeTrue())
			var se *StepError
			Expect(errors.As(err, &se)).To(BeTrue())
			Expect(se.Index).To(Equal(0))
		})
	})

	Context("when a later step needs the carried excitation", func() {
		// 8Be -> 7Li + p needs about 17.25 MeV of excitation.
		build := func(ex, beam float64) *Chain {
			c := NewChain(nil)
			c.AddStep(tbl, []nucdata.Nuclide{li7, he3, d}, ex, 0, beam, 0)
			c.AddStep(tbl, []nucdata.Nuclide{be8, li7}, 0, 0, 0, 0)
			return c
		}

		It("passes with enough excitation in the previous residual", func() {
			Expect(build(20, 15).Verify()).To(BeTrue())
		})

		It("fails when the previous residual is too cold", func() {
			err := build(10, 15).Validate()
			Expect(errors.Is(err, ErrBelowThreshold)).To(BeTrue())
		})

		It("fails when the beam cannot populate the excitation", func() {
			err := build(20, 5).Validate()
			Expect(errors.Is(err, ErrBelowThreshold)).To(BeTrue())
		})
	})

	Context("with an unknown nuclide", func() {
		It("fails the nuclei check first", func() {
			c := NewChain(nil)
			c.AddStep(tbl, []nucdata.Nuclide{c12, p, tbl.Nuclide(0, 1)}, 0, 0, 100, 0)
			Expect(errors.Is(c.Validate(), ErrUnknownNuclide)).To(BeTrue())
		})
	})

	Context("with a malformed step", func() {
		It("reports the step as invalid", func() {
			c := NewChain(nil)
			c.AddStep(tbl, []nucdata.Nuclide{c12}, 0, 0, 0, 0)
			Expect(errors.Is(c.Validate(), ErrInvalidStep)).To(BeTrue())
		})
	})

	It("copies its step list", func() {
		c := NewChain(nil, NewDecay(tbl, be8, he4, Excitation{}))
		steps := c.Steps()
		steps[0] = Step{}
		Expect(c.Steps()[0].Kind()).To(Equal(Decay))
	})
})

var _ = Describe("Target", func() {
	It("renders its formula", func() {
		tbl := mustTable(GinkgoT(), testTable)
		t, err := NewTarget([]int{6, 1}, []int{1, 2}, 50)
		Expect(err).NotTo(HaveOccurred())
		Expect(t.Formula(tbl)).To(Equal("C1H2"))
	})

	It("rejects mismatched lists", func() {
		_, err := NewTarget([]int{6, 1}, []int{1}, 50)
		Expect(err).To(MatchError(ErrComposition))
	})
})
