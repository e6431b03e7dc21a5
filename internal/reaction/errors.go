package reaction

import (
	"errors"
	"fmt"
)

// Domain errors for step and chain evaluation.
var (
	// ErrInvalidStep indicates a step built from neither 2 nor 3 nuclides.
	ErrInvalidStep = errors.New("reaction: invalid step (need 2 or 3 nuclides)")

	// ErrUnknownNuclide indicates a participant missing from the mass table.
	ErrUnknownNuclide = errors.New("reaction: nuclide not in mass table")

	// ErrBelowThreshold indicates a step that is not kinematically allowed.
	ErrBelowThreshold = errors.New("reaction: kinematically forbidden")

	// ErrUnphysicalKinematics indicates masses for which the threshold
	// denominator m2+m3-m1 is zero or negative.
	ErrUnphysicalKinematics = errors.New("reaction: unphysical masses (threshold undefined)")

	// ErrNotReaction indicates a beam threshold requested from a decay.
	ErrNotReaction = errors.New("reaction: step has no beam threshold")

	// ErrEmptyChain indicates a chain with no steps.
	ErrEmptyChain = errors.New("reaction: empty chain")

	// ErrDiscontinuous indicates a step whose target is not the previous residual.
	ErrDiscontinuous = errors.New("reaction: target does not match previous residual")

	// ErrComposition indicates a target with mismatched element and stoichiometry lists.
	ErrComposition = errors.New("reaction: target Z and stoichiometry lengths differ")
)

// StepError wraps a chain failure with the position of the offending step.
type StepError struct {
	Index int
	Step  string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index, e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
