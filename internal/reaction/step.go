package reaction

import (
	"github.com/san-kum/nuckage/internal/nucdata"
)

// Kind classifies a step. It is fixed when the step is built.
type Kind int

const (
	Invalid Kind = iota
	Decay
	Reaction
)

func (k Kind) String() string {
	switch k {
	case Decay:
		return "decay"
	case Reaction:
		return "reaction"
	default:
		return "invalid"
	}
}

// Excitation is the residual nucleus excitation energy distribution (MeV).
type Excitation struct {
	Mean  float64
	Sigma float64
}

// Beam is the beam kinetic energy distribution (MeV). Decays carry none.
type Beam struct {
	Mean  float64
	Sigma float64
}

// Step is one reaction or decay. The nuclide list holds
// [target, projectile, ejectile, residual] for a reaction,
// [parent, daughter, emitted] for a decay and nothing for an invalid step.
type Step struct {
	kind   Kind
	nuclei []nucdata.Nuclide
	ex     Excitation
	beam   Beam
}

// NewStep dispatches on len(nuclei): two make a decay [parent, daughter],
// three make a reaction [target, projectile, ejectile]. Any other count
// yields an Invalid step.
func NewStep(tbl *nucdata.Table, nuclei []nucdata.Nuclide, ex Excitation, beam Beam) Step {
	switch len(nuclei) {
	case 2:
		return NewDecay(tbl, nuclei[0], nuclei[1], ex)
	case 3:
		return NewReaction(tbl, nuclei[0], nuclei[1], nuclei[2], ex, beam)
	default:
		return Step{kind: Invalid}
	}
}

// NewReaction builds target(projectile,ejectile)residual where
// residual = target + projectile - ejectile.
func NewReaction(tbl *nucdata.Table, target, projectile, ejectile nucdata.Nuclide, ex Excitation, beam Beam) Step {
	residual := tbl.Difference(tbl.Combine(target, projectile), ejectile)
	return Step{
		kind:   Reaction,
		nuclei: []nucdata.Nuclide{target, projectile, ejectile, residual},
		ex:     ex,
		beam:   beam,
	}
}

// NewDecay builds parent->daughter+emitted where emitted = parent - daughter.
func NewDecay(tbl *nucdata.Table, parent, daughter nucdata.Nuclide, ex Excitation) Step {
	emitted := tbl.Difference(parent, daughter)
	return Step{
		kind:   Decay,
		nuclei: []nucdata.Nuclide{parent, daughter, emitted},
		ex:     ex,
	}
}

func (s Step) Kind() Kind { return s.kind }

// Nuclei returns a copy of the full nuclide list, residual last.
func (s Step) Nuclei() []nucdata.Nuclide {
	out := make([]nucdata.Nuclide, len(s.nuclei))
	copy(out, s.nuclei)
	return out
}

// Inputs returns the nuclides the step was built from, without the derived residual.
func (s Step) Inputs() []nucdata.Nuclide {
	if len(s.nuclei) == 0 {
		return nil
	}
	return s.Nuclei()[:len(s.nuclei)-1]
}

func (s Step) Excitation() Excitation { return s.ex }

// WithExcitation returns a copy of s leaving the residual at ex instead.
func (s Step) WithExcitation(ex Excitation) Step {
	s.nuclei = s.Nuclei()
	s.ex = ex
	return s
}

// Beam is zero for decays and invalid steps.
func (s Step) Beam() Beam { return s.beam }

// Target returns the target (reaction) or parent (decay).
func (s Step) Target() (nucdata.Nuclide, bool) {
	if s.kind == Invalid {
		return nucdata.Nuclide{}, false
	}
	return s.nuclei[0], true
}

// Residual returns the derived nuclide that continues a chain.
func (s Step) Residual() (nucdata.Nuclide, bool) {
	if s.kind == Invalid {
		return nucdata.Nuclide{}, false
	}
	return s.nuclei[len(s.nuclei)-1], true
}

// CheckNuclei reports whether every participant is in the mass table.
// Invalid steps never pass.
func (s Step) CheckNuclei() bool {
	if s.kind == Invalid {
		return false
	}
	for _, n := range s.nuclei {
		if !n.Known() {
			return false
		}
	}
	return true
}

// QValue is the energy released by the step when the target (or parent)
// carries incomingEx of excitation and the residual is left at its mean
// excitation.
func (s Step) QValue(incomingEx float64) (float64, error) {
	if s.kind == Invalid {
		return 0, ErrInvalidStep
	}
	if !s.CheckNuclei() {
		return 0, ErrUnknownNuclide
	}

	n := s.nuclei
	switch s.kind {
	case Reaction:
		return incomingEx + n[0].Mass() + n[1].Mass() - n[2].Mass() - n[3].Mass() - s.ex.Mean, nil
	default:
		return incomingEx + n[0].Mass() - n[1].Mass() - n[2].Mass() - s.ex.Mean, nil
	}
}

// ThresholdEnergy is the minimum beam energy for a reaction.
// Exothermic reactions give a negative threshold.
func (s Step) ThresholdEnergy(incomingEx float64) (float64, error) {
	if s.kind != Reaction {
		if s.kind == Invalid {
			return 0, ErrInvalidStep
		}
		return 0, ErrNotReaction
	}

	q, err := s.QValue(incomingEx)
	if err != nil {
		return 0, err
	}

	n := s.nuclei
	outgoing := n[2].Mass() + n[3].Mass()
	denom := outgoing - n[1].Mass()
	if denom <= 0 {
		return 0, ErrUnphysicalKinematics
	}
	return -q * outgoing / denom, nil
}

// CheckThreshold reports whether the step is kinematically allowed with
// incomingEx of excitation on the target (or parent).
func (s Step) CheckThreshold(incomingEx float64) bool {
	return s.threshold(incomingEx) == nil
}

func (s Step) threshold(incomingEx float64) error {
	switch s.kind {
	case Reaction:
		eth, err := s.ThresholdEnergy(incomingEx)
		if err != nil {
			return err
		}
		if s.beam.Mean < eth {
			return ErrBelowThreshold
		}
		return nil
	case Decay:
		q, err := s.QValue(incomingEx)
		if err != nil {
			return err
		}
		if q < 0 {
			return ErrBelowThreshold
		}
		return nil
	default:
		return ErrInvalidStep
	}
}

// String renders "T(p,e)R" for reactions and "P->D+E" for decays.
func (s Step) String() string {
	if s.kind == Invalid {
		return "invalid"
	}
	return s.nuclei[0].String() + s.Trailing()
}

// Trailing renders the step without its target, as used after the first
// step of a chain: "(p,e)R" or "->D+E".
func (s Step) Trailing() string {
	n := s.nuclei
	switch s.kind {
	case Reaction:
		return "(" + n[1].String() + "," + n[2].String() + ")" + n[3].String()
	case Decay:
		return "->" + n[1].String() + "+" + n[2].String()
	default:
		return ""
	}
}
