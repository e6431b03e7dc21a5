package role

import (
	"fmt"
	"sort"
)

// Detector is one entry of the detector array: a name the simulator knows
// and its argument string.
type Detector struct {
	Name string
	Args string
}

type DetectorArray struct {
	Detectors []Detector
}

func (a *DetectorArray) Add(d Detector) {
	a.Detectors = append(a.Detectors, d)
}

func (a *DetectorArray) Len() int { return len(a.Detectors) }

type bound struct {
	name     string
	min, max float64
}

type detectorSpec struct {
	params []bound
}

// Registry holds the detectors the simulator understands and the ordered
// parameters each one takes on its argument line.
type Registry struct {
	detectors map[string]detectorSpec
}

func NewRegistry() *Registry {
	r := &Registry{detectors: make(map[string]detectorSpec)}

	r.detectors["focalplane"] = detectorSpec{params: []bound{
		{name: "angle", min: 0, max: 180},
		{name: "bfield", min: 0, max: 16},
	}}
	r.detectors["sabre"] = detectorSpec{}

	return r
}

// Build validates params against the named detector and renders its
// argument string, parameters in registry order separated by spaces.
func (r *Registry) Build(name string, params map[string]float64) (Detector, error) {
	spec, ok := r.detectors[name]
	if !ok {
		return Detector{}, fmt.Errorf("%w: %s", ErrUnknownDetector, name)
	}

	args := ""
	for i, p := range spec.params {
		v, ok := params[p.name]
		if !ok {
			return Detector{}, fmt.Errorf("detector %s: missing param %s", name, p.name)
		}
		if v < p.min || v > p.max {
			return Detector{}, fmt.Errorf("%w: %s %s=%g not in [%g, %g]", ErrParameterBounds, name, p.name, v, p.min, p.max)
		}
		if i > 0 {
			args += " "
		}
		args += FormatFloat(v)
	}
	for k := range params {
		if !spec.has(k) {
			return Detector{}, fmt.Errorf("detector %s: unknown param %s", name, k)
		}
	}

	return Detector{Name: name, Args: args}, nil
}

// Params lists the parameter names of a detector in argument order.
func (r *Registry) Params(name string) ([]string, error) {
	spec, ok := r.detectors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDetector, name)
	}
	names := make([]string, len(spec.params))
	for i, p := range spec.params {
		names[i] = p.name
	}
	return names, nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.detectors))
	for name := range r.detectors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s detectorSpec) has(name string) bool {
	for _, p := range s.params {
		if p.name == name {
			return true
		}
	}
	return false
}
