package viz

import (
	"fmt"
	"strings"

	"github.com/san-kum/nuckage/internal/analysis"
)

// RenderChain lays out a chain report as a bordered panel, one line per step.
func RenderChain(rep analysis.ChainReport) string {
	var b strings.Builder

	b.WriteString(Title.Render(rep.Equation))
	b.WriteString("  ")
	b.WriteString(Verdict(rep.Valid))
	b.WriteString("\n")

	if rep.Target != "" {
		fmt.Fprintf(&b, "%s %s  %s %s\n",
			MetricLabel.Render("target"), MetricValue.Render(rep.Target),
			MetricLabel.Render("thickness"), MetricValue.Render(fmt.Sprintf("%g", rep.Thickness)))
	}

	for _, st := range rep.Steps {
		b.WriteString(renderStep(st))
		b.WriteString("\n")
	}

	if rep.Reason != "" {
		b.WriteString(StatusFail.Render(rep.Reason))
		b.WriteString("\n")
	}

	return Panel.Render(strings.TrimRight(b.String(), "\n"))
}

func renderStep(st analysis.StepReport) string {
	mark := StatusOK.Render("•")
	if !st.Allowed {
		mark = StatusFail.Render("•")
	}

	line := fmt.Sprintf("%s %-24s %s %s", mark, st.Equation,
		MetricLabel.Render("Q"), MetricValue.Render(optional(st.QValue, "%+.4f MeV")))

	if st.Kind == "reaction" {
		line += fmt.Sprintf("  %s %s  %s %s",
			MetricLabel.Render("Eth"), MetricValue.Render(optional(st.Threshold, "%.4f MeV")),
			MetricLabel.Render("beam"), MetricValue.Render(fmt.Sprintf("%.3f MeV", st.BeamMean)))
	}
	if st.ExMean != 0 {
		line += fmt.Sprintf("  %s %s", MetricLabel.Render("Ex"), MetricValue.Render(fmt.Sprintf("%.3f MeV", st.ExMean)))
	}
	return line
}

func optional(v *float64, format string) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf(format, *v)
}

// Summary is the closing line for a batch of chains.
func Summary(reports []analysis.ChainReport) string {
	valid := 0
	for _, r := range reports {
		if r.Valid {
			valid++
		}
	}

	msg := fmt.Sprintf("%d/%d chains valid", valid, len(reports))
	switch {
	case valid == len(reports):
		return StatusOK.Render(msg)
	case valid == 0:
		return StatusFail.Render(msg)
	default:
		return StatusWarn.Render(msg)
	}
}
