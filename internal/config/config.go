package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/nuckage/internal/nucdata"
	"github.com/san-kum/nuckage/internal/reaction"
	"github.com/san-kum/nuckage/internal/role"
)

const (
	DefaultOutput  = "./test.root"
	DefaultSamples = 100000

	TypeReaction = "reaction"
	TypeDecay    = "decay"
)

var (
	// ErrUnknownRef indicates a chain naming a reaction or target the plan does not define.
	ErrUnknownRef = errors.New("config: unknown reference")

	// ErrBadReaction indicates a reaction entry that cannot be turned into a step.
	ErrBadReaction = errors.New("config: bad reaction entry")
)

// Plan is the input file for one simulator run: named targets and
// reactions, the chains that combine them, and the detector array.
type Plan struct {
	Output    string           `yaml:"output"`
	Samples   uint64           `yaml:"samples"`
	Targets   []TargetConfig   `yaml:"targets"`
	Reactions []ReactionConfig `yaml:"reactions"`
	Chains    []ChainConfig    `yaml:"chains"`
	Detectors []DetectorConfig `yaml:"detectors"`
}

type NucleusConfig struct {
	Z int `yaml:"z"`
	A int `yaml:"a"`
}

type EnergyConfig struct {
	Mean  float64 `yaml:"mean"`
	Sigma float64 `yaml:"sigma"`
}

type ElementConfig struct {
	Z int `yaml:"z"`
	S int `yaml:"s"`
}

type TargetConfig struct {
	Name      string          `yaml:"name"`
	Thickness float64         `yaml:"thickness"`
	Elements  []ElementConfig `yaml:"elements"`
}

// ReactionConfig describes one step. Reactions use target, projectile and
// ejectile; decays use parent and daughter. Preset fills the nuclides from
// a named entry in Presets.
type ReactionConfig struct {
	Name       string         `yaml:"name"`
	Preset     string         `yaml:"preset,omitempty"`
	Type       string         `yaml:"type,omitempty"`
	Target     *NucleusConfig `yaml:"target,omitempty"`
	Projectile *NucleusConfig `yaml:"projectile,omitempty"`
	Ejectile   *NucleusConfig `yaml:"ejectile,omitempty"`
	Parent     *NucleusConfig `yaml:"parent,omitempty"`
	Daughter   *NucleusConfig `yaml:"daughter,omitempty"`
	Ex         EnergyConfig   `yaml:"ex"`
	Beam       EnergyConfig   `yaml:"beam"`
}

type ChainConfig struct {
	Name      string   `yaml:"name"`
	Reactions []string `yaml:"reactions"`
	Target    string   `yaml:"target"`
}

type DetectorConfig struct {
	Name   string             `yaml:"name"`
	Params map[string]float64 `yaml:"params,omitempty"`
}

func DefaultPlan() *Plan {
	return &Plan{
		Output:  DefaultOutput,
		Samples: DefaultSamples,
	}
}

func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p := DefaultPlan()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, err
	}
	return p, nil
}

func Save(path string, p *Plan) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Build resolves every name in the plan and returns the simulator role.
// Chains are built but not verified.
func (p *Plan) Build(tbl *nucdata.Table, reg *role.Registry, log *slog.Logger) (*role.Role, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if err := role.CheckOutput(p.Output); err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}

	targets := make(map[string]*reaction.Target, len(p.Targets))
	for _, tc := range p.Targets {
		t, err := tc.Build()
		if err != nil {
			return nil, fmt.Errorf("target %s: %w", tc.Name, err)
		}
		targets[tc.Name] = t
	}

	steps := make(map[string]reaction.Step, len(p.Reactions))
	for _, rc := range p.Reactions {
		s, err := rc.Build(tbl)
		if err != nil {
			return nil, fmt.Errorf("reaction %s: %w", rc.Name, err)
		}
		log.Debug("built step", "name", rc.Name, "step", s.String(), "kind", s.Kind())
		steps[rc.Name] = s
	}

	r := &role.Role{Output: p.Output, Samples: p.Samples}
	for i, cc := range p.Chains {
		name := cc.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}

		target, ok := targets[cc.Target]
		if !ok {
			return nil, fmt.Errorf("chain %s: %w: target %q", name, ErrUnknownRef, cc.Target)
		}
		chain := reaction.NewChain(target)
		for _, ref := range cc.Reactions {
			s, ok := steps[ref]
			if !ok {
				return nil, fmt.Errorf("chain %s: %w: reaction %q", name, ErrUnknownRef, ref)
			}
			chain.Append(s)
		}
		log.Debug("built chain", "name", name, "equation", chain.String(), "target", target.Formula(tbl))
		r.Chains = append(r.Chains, chain)
	}

	for _, dc := range p.Detectors {
		d, err := reg.Build(dc.Name, dc.Params)
		if err != nil {
			return nil, err
		}
		r.Array.Add(d)
	}

	return r, nil
}

func (tc TargetConfig) Build() (*reaction.Target, error) {
	z := make([]int, 0, len(tc.Elements))
	s := make([]int, 0, len(tc.Elements))
	for _, e := range tc.Elements {
		z = append(z, e.Z)
		s = append(s, e.S)
	}
	return reaction.NewTarget(z, s, tc.Thickness)
}

// Build turns the entry into a step, filling nuclides from its preset first.
func (rc ReactionConfig) Build(tbl *nucdata.Table) (reaction.Step, error) {
	if rc.Preset != "" {
		preset := GetPreset(rc.Preset)
		if preset == nil {
			return reaction.Step{}, fmt.Errorf("%w: unknown preset %q", ErrBadReaction, rc.Preset)
		}
		rc = rc.withPreset(preset)
	}

	nuc := func(n *NucleusConfig) nucdata.Nuclide { return tbl.Nuclide(n.Z, n.A) }
	ex := reaction.Excitation{Mean: rc.Ex.Mean, Sigma: rc.Ex.Sigma}

	switch rc.Type {
	case TypeReaction, "":
		if rc.Target == nil || rc.Projectile == nil || rc.Ejectile == nil {
			return reaction.Step{}, fmt.Errorf("%w: reaction needs target, projectile and ejectile", ErrBadReaction)
		}
		beam := reaction.Beam{Mean: rc.Beam.Mean, Sigma: rc.Beam.Sigma}
		return reaction.NewReaction(tbl, nuc(rc.Target), nuc(rc.Projectile), nuc(rc.Ejectile), ex, beam), nil
	case TypeDecay:
		if rc.Parent == nil || rc.Daughter == nil {
			return reaction.Step{}, fmt.Errorf("%w: decay needs parent and daughter", ErrBadReaction)
		}
		return reaction.NewDecay(tbl, nuc(rc.Parent), nuc(rc.Daughter), ex), nil
	default:
		return reaction.Step{}, fmt.Errorf("%w: unknown type %q", ErrBadReaction, rc.Type)
	}
}

func (rc ReactionConfig) withPreset(p *ReactionConfig) ReactionConfig {
	rc.Type = p.Type
	rc.Target, rc.Projectile, rc.Ejectile = p.Target, p.Projectile, p.Ejectile
	rc.Parent, rc.Daughter = p.Parent, p.Daughter
	return rc
}
