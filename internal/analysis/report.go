package analysis

import (
	"errors"

	"github.com/san-kum/nuckage/internal/nucdata"
	"github.com/san-kum/nuckage/internal/reaction"
)

type StepReport struct {
	Index      int      `json:"index"`
	Equation   string   `json:"equation"`
	Kind       string   `json:"kind"`
	IncomingEx float64  `json:"incoming_ex"`
	ExMean     float64  `json:"ex_mean"`
	ExSigma    float64  `json:"ex_sigma"`
	BeamMean   float64  `json:"beam_mean"`
	BeamSigma  float64  `json:"beam_sigma"`
	QValue     *float64 `json:"q_value,omitempty"`
	Threshold  *float64 `json:"threshold,omitempty"`
	Allowed    bool     `json:"allowed"`
}

type ChainReport struct {
	Equation  string       `json:"equation"`
	Target    string       `json:"target,omitempty"`
	Thickness float64      `json:"thickness"`
	Valid     bool         `json:"valid"`
	Reason    string       `json:"reason,omitempty"`
	Steps     []StepReport `json:"steps"`
}

// Report evaluates every step of c with the excitation carried from the
// step before it. Steps after a failure are still evaluated so the whole
// chain can be inspected at once.
func Report(tbl *nucdata.Table, c *reaction.Chain) ChainReport {
	rep := ChainReport{Equation: c.String(), Valid: true}
	if err := c.Validate(); err != nil {
		rep.Valid = false
		rep.Reason = err.Error()
	}
	if c.Target != nil {
		rep.Target = c.Target.Formula(tbl)
		rep.Thickness = c.Target.Thickness
	}

	incomingEx := 0.0
	for i, s := range c.Steps() {
		ex, beam := s.Excitation(), s.Beam()
		sr := StepReport{
			Index:      i,
			Equation:   s.String(),
			Kind:       s.Kind().String(),
			IncomingEx: incomingEx,
			ExMean:     ex.Mean,
			ExSigma:    ex.Sigma,
			BeamMean:   beam.Mean,
			BeamSigma:  beam.Sigma,
			Allowed:    s.CheckNuclei() && s.CheckThreshold(incomingEx),
		}
		if q, err := s.QValue(incomingEx); err == nil {
			sr.QValue = &q
		}
		if eth, err := s.ThresholdEnergy(incomingEx); err == nil {
			sr.Threshold = &eth
		}
		rep.Steps = append(rep.Steps, sr)
		incomingEx = ex.Mean
	}
	return rep
}

// ScanPoint is one sample of a threshold scan.
type ScanPoint struct {
	Ex        float64 `json:"ex"`
	QValue    float64 `json:"q_value"`
	Threshold float64 `json:"threshold"`
	Allowed   bool    `json:"allowed"`
}

// ThresholdScan sweeps the residual excitation of s over [exMin, exMax]
// in steps points. For decays Threshold is left at zero. Points where the
// kinematics are undefined are dropped.
func ThresholdScan(s reaction.Step, incomingEx, exMin, exMax float64, steps int) ([]ScanPoint, error) {
	if s.Kind() == reaction.Invalid {
		return nil, reaction.ErrInvalidStep
	}
	if steps <= 1 {
		steps = 2
	}
	dx := (exMax - exMin) / float64(steps-1)
	sigma := s.Excitation().Sigma

	points := make([]ScanPoint, 0, steps)
	for i := 0; i < steps; i++ {
		ex := exMin + float64(i)*dx
		at := s.WithExcitation(reaction.Excitation{Mean: ex, Sigma: sigma})

		q, err := at.QValue(incomingEx)
		if err != nil {
			return nil, err
		}
		p := ScanPoint{Ex: ex, QValue: q, Allowed: at.CheckThreshold(incomingEx)}
		if at.Kind() == reaction.Reaction {
			eth, err := at.ThresholdEnergy(incomingEx)
			if errors.Is(err, reaction.ErrUnphysicalKinematics) {
				continue
			}
			if err != nil {
				return nil, err
			}
			p.Threshold = eth
		}
		points = append(points, p)
	}
	return points, nil
}

// MaxExcitation is the largest residual excitation s can populate: the
// ground-state Q for decays, and for reactions the Q plus the part of the
// beam energy left after the recoil takes its share.
func MaxExcitation(s reaction.Step, incomingEx float64) (float64, error) {
	q, err := s.WithExcitation(reaction.Excitation{}).QValue(incomingEx)
	if err != nil {
		return 0, err
	}
	if s.Kind() == reaction.Decay {
		return q, nil
	}

	n := s.Nuclei()
	out := n[2].Mass() + n[3].Mass()
	denom := out - n[1].Mass()
	if denom <= 0 {
		return 0, reaction.ErrUnphysicalKinematics
	}
	// Ethresh = (Ex - Q0) * out/denom
	return q + s.Beam().Mean*denom/out, nil
}
