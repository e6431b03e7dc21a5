package role

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/san-kum/nuckage/internal/reaction"
)

// Role is everything the simulator needs for one run. Chains are expected
// to have passed Verify; the writer does not check them again.
type Role struct {
	Output  string
	Samples uint64
	Chains  []*reaction.Chain
	Array   DetectorArray
}

// Write renders r in the simulator's block grammar. Each step lists its
// input nuclides only; the simulator derives the residual itself.
func Write(w io.Writer, r *Role) error {
	if err := CheckOutput(r.Output); err != nil {
		return err
	}

	var sb strings.Builder

	line := func(depth int, s string) {
		sb.WriteString(strings.Repeat("\t", depth))
		sb.WriteString(s)
		sb.WriteByte('\n')
	}

	line(0, "begin_simulator")
	line(1, r.Output)
	line(1, strconv.FormatUint(r.Samples, 10))

	for i, chain := range r.Chains {
		if chain.Target == nil {
			return fmt.Errorf("chain %d (%s): %w", i, chain, ErrNoTarget)
		}

		line(1, "begin_reactorchain")
		for _, step := range chain.Steps() {
			ex, beam := step.Excitation(), step.Beam()
			line(2, "begin_reactor")
			line(3, FormatFloat(ex.Mean))
			line(3, FormatFloat(ex.Sigma))
			line(3, FormatFloat(beam.Mean))
			line(3, FormatFloat(beam.Sigma))
			line(3, "begin_nuclei")
			for _, n := range step.Inputs() {
				line(4, strconv.Itoa(n.Z())+" "+strconv.Itoa(n.A()))
			}
			line(3, "end_nuclei")
			line(2, "end_reactor")
		}

		t := chain.Target
		line(2, "begin_target")
		line(3, FormatFloat(t.Thickness))
		line(3, "begin_elements")
		for j := range t.Z {
			line(4, strconv.Itoa(t.Z[j])+" "+strconv.Itoa(t.S[j]))
		}
		line(3, "end_elements")
		line(2, "end_target")
		line(1, "end_reactorchain")
	}

	line(1, "begin_detectorarray")
	for _, d := range r.Array.Detectors {
		line(2, d.Name+" "+d.Args)
	}
	line(1, "end_detectorarray")
	line(0, "end_simulator")

	_, err := io.WriteString(w, sb.String())
	return err
}

// CheckOutput rejects output paths the simulator's token reader would
// misparse: empty ones and ones containing whitespace.
func CheckOutput(path string) error {
	if path == "" || strings.IndexFunc(path, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: %q", ErrOutputPath, path)
	}
	return nil
}

// WriteFile writes r to path, replacing any existing file.
func WriteFile(path string, r *Role) error {
	if err := CheckOutput(r.Output); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
