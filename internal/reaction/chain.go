package reaction

import (
	"strings"

	"github.com/san-kum/nuckage/internal/nucdata"
)

// Chain is an ordered sequence of steps on one target material.
type Chain struct {
	steps  []Step
	Target *Target
}

func NewChain(target *Target, steps ...Step) *Chain {
	c := &Chain{Target: target}
	c.steps = append(c.steps, steps...)
	return c
}

// AddStep builds a step from raw nuclides and appends it.
func (c *Chain) AddStep(tbl *nucdata.Table, nuclei []nucdata.Nuclide, exMean, exSigma, beamMean, beamSigma float64) {
	c.Append(NewStep(tbl, nuclei, Excitation{Mean: exMean, Sigma: exSigma}, Beam{Mean: beamMean, Sigma: beamSigma}))
}

func (c *Chain) Append(s Step) { c.steps = append(c.steps, s) }

func (c *Chain) Len() int { return len(c.steps) }

// Steps returns a copy of the step list.
func (c *Chain) Steps() []Step {
	out := make([]Step, len(c.steps))
	copy(out, c.steps)
	return out
}

// Verify reports whether the chain is physically continuous and every step
// is kinematically allowed.
func (c *Chain) Verify() bool {
	return c.Validate() == nil
}

// Validate is Verify with the reason for the first failing step.
// The first step starts from a ground-state target; each later step starts
// from the previous residual at its mean excitation.
func (c *Chain) Validate() error {
	if len(c.steps) == 0 {
		return ErrEmptyChain
	}

	incomingEx := 0.0
	for i, s := range c.steps {
		if err := checkStep(s, incomingEx); err != nil {
			return &StepError{Index: i, Step: s.String(), Err: err}
		}
		if i > 0 {
			prev, _ := c.steps[i-1].Residual()
			target, _ := s.Target()
			if !target.Same(prev) {
				return &StepError{Index: i, Step: s.String(), Err: ErrDiscontinuous}
			}
		}
		incomingEx = s.ex.Mean
	}
	return nil
}

func checkStep(s Step, incomingEx float64) error {
	if s.kind == Invalid {
		return ErrInvalidStep
	}
	if !s.CheckNuclei() {
		return ErrUnknownNuclide
	}
	return s.threshold(incomingEx)
}

// String renders the chain equation: the first step in full followed by the
// trailing form of each later step, e.g. "7Li(3He,2H)8Be->4He+4He".
func (c *Chain) String() string {
	if len(c.steps) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(c.steps[0].String())
	for _, s := range c.steps[1:] {
		sb.WriteString(s.Trailing())
	}
	return sb.String()
}
