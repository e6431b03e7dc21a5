package role

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/nuckage/internal/nucdata"
	"github.com/san-kum/nuckage/internal/reaction"
)

// Nucleus is a raw (Z, A) pair as written in a role file.
type Nucleus struct {
	Z, A int
}

// StepRecord is one begin_reactor block.
type StepRecord struct {
	ExMean    float64
	ExSigma   float64
	BeamMean  float64
	BeamSigma float64
	Nuclei    []Nucleus
}

// ChainRecord is one begin_reactorchain block.
type ChainRecord struct {
	Steps  []StepRecord
	Target *reaction.Target
}

// File is a parsed role file.
type File struct {
	Output  string
	Samples uint64
	Chains  []ChainRecord
	Array   DetectorArray
}

type parser struct {
	sc   *bufio.Scanner
	line int
	text string
}

// Read parses a role file written by Write or by hand.
// Blank lines and surrounding whitespace are ignored.
func Read(r io.Reader) (*File, error) {
	p := &parser{sc: bufio.NewScanner(r)}
	f := &File{}

	if err := p.expect("begin_simulator"); err != nil {
		return nil, err
	}
	out, err := p.next()
	if err != nil {
		return nil, err
	}
	f.Output = out
	if f.Samples, err = p.uint(); err != nil {
		return nil, err
	}

	for {
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		switch tok {
		case "begin_reactorchain":
			c, err := p.chain()
			if err != nil {
				return nil, err
			}
			f.Chains = append(f.Chains, c)
		case "begin_detectorarray":
			if err := p.detectors(&f.Array); err != nil {
				return nil, err
			}
		case "end_simulator":
			return f, nil
		default:
			return nil, p.errorf("unexpected %q in simulator block", tok)
		}
	}
}

// ReadFile opens and parses path.
func ReadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	f, err := Read(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

func (p *parser) next() (string, error) {
	for p.sc.Scan() {
		p.line++
		p.text = strings.TrimSpace(p.sc.Text())
		if p.text != "" {
			return p.text, nil
		}
	}
	if err := p.sc.Err(); err != nil {
		return "", err
	}
	return "", p.errorf("unexpected end of file")
}

func (p *parser) expect(tok string) error {
	got, err := p.next()
	if err != nil {
		return err
	}
	if got != tok {
		return p.errorf("expected %s, got %q", tok, got)
	}
	return nil
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{Line: p.line, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) float() (float64, error) {
	tok, err := p.next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, p.errorf("expected number, got %q", tok)
	}
	return v, nil
}

func (p *parser) uint() (uint64, error) {
	tok, err := p.next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(tok, 10, 64)
	if err != nil {
		return 0, p.errorf("expected sample count, got %q", tok)
	}
	return v, nil
}

// pairs reads "<int> <int>" lines until the end keyword.
func (p *parser) pairs(end string) ([][2]int, error) {
	var out [][2]int
	for {
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		if tok == end {
			return out, nil
		}
		fields := strings.Fields(tok)
		if len(fields) != 2 {
			return nil, p.errorf("expected two integers, got %q", tok)
		}
		a, errA := strconv.Atoi(fields[0])
		b, errB := strconv.Atoi(fields[1])
		if errA != nil || errB != nil {
			return nil, p.errorf("expected two integers, got %q", tok)
		}
		out = append(out, [2]int{a, b})
	}
}

func (p *parser) chain() (ChainRecord, error) {
	var c ChainRecord
	for {
		tok, err := p.next()
		if err != nil {
			return c, err
		}
		switch tok {
		case "begin_reactor":
			s, err := p.step()
			if err != nil {
				return c, err
			}
			c.Steps = append(c.Steps, s)
		case "begin_target":
			t, err := p.target()
			if err != nil {
				return c, err
			}
			c.Target = t
		case "end_reactorchain":
			return c, nil
		default:
			return c, p.errorf("unexpected %q in reactor chain", tok)
		}
	}
}

func (p *parser) step() (StepRecord, error) {
	var s StepRecord
	for _, dst := range []*float64{&s.ExMean, &s.ExSigma, &s.BeamMean, &s.BeamSigma} {
		v, err := p.float()
		if err != nil {
			return s, err
		}
		*dst = v
	}
	if err := p.expect("begin_nuclei"); err != nil {
		return s, err
	}
	pairs, err := p.pairs("end_nuclei")
	if err != nil {
		return s, err
	}
	for _, za := range pairs {
		s.Nuclei = append(s.Nuclei, Nucleus{Z: za[0], A: za[1]})
	}
	return s, p.expect("end_reactor")
}

func (p *parser) target() (*reaction.Target, error) {
	thickness, err := p.float()
	if err != nil {
		return nil, err
	}
	if err := p.expect("begin_elements"); err != nil {
		return nil, err
	}
	pairs, err := p.pairs("end_elements")
	if err != nil {
		return nil, err
	}
	t := &reaction.Target{Thickness: thickness}
	for _, zs := range pairs {
		t.Z = append(t.Z, zs[0])
		t.S = append(t.S, zs[1])
	}
	return t, p.expect("end_target")
}

func (p *parser) detectors(a *DetectorArray) error {
	for {
		tok, err := p.next()
		if err != nil {
			return err
		}
		if tok == "end_detectorarray" {
			return nil
		}
		name, args, _ := strings.Cut(tok, " ")
		a.Add(Detector{Name: name, Args: strings.TrimSpace(args)})
	}
}

// Build turns a record back into a chain, resolving nuclides from tbl.
func (c ChainRecord) Build(tbl *nucdata.Table) *reaction.Chain {
	chain := reaction.NewChain(c.Target)
	for _, s := range c.Steps {
		nuclei := make([]nucdata.Nuclide, len(s.Nuclei))
		for i, n := range s.Nuclei {
			nuclei[i] = tbl.Nuclide(n.Z, n.A)
		}
		chain.AddStep(tbl, nuclei, s.ExMean, s.ExSigma, s.BeamMean, s.BeamSigma)
	}
	return chain
}

// Role rebuilds the writer input from a parsed file.
func (f *File) Role(tbl *nucdata.Table) *Role {
	r := &Role{Output: f.Output, Samples: f.Samples, Array: f.Array}
	for _, c := range f.Chains {
		r.Chains = append(r.Chains, c.Build(tbl))
	}
	return r
}
