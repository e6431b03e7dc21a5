package config

import "sort"

func nucleus(z, a int) *NucleusConfig { return &NucleusConfig{Z: z, A: a} }

// Presets are common steps keyed by their equation.
var Presets = map[string]*ReactionConfig{
	"12C(d,p)13C": {
		Type: TypeReaction, Target: nucleus(6, 12), Projectile: nucleus(1, 2), Ejectile: nucleus(1, 1),
	},
	"7Li(p,n)7Be": {
		Type: TypeReaction, Target: nucleus(3, 7), Projectile: nucleus(1, 1), Ejectile: nucleus(0, 1),
	},
	"7Li(3He,d)8Be": {
		Type: TypeReaction, Target: nucleus(3, 7), Projectile: nucleus(2, 3), Ejectile: nucleus(1, 2),
	},
	"9Be(3He,a)8Be": {
		Type: TypeReaction, Target: nucleus(4, 9), Projectile: nucleus(2, 3), Ejectile: nucleus(2, 4),
	},
	"10B(3He,p)12C": {
		Type: TypeReaction, Target: nucleus(5, 10), Projectile: nucleus(2, 3), Ejectile: nucleus(1, 1),
	},
	"16O(d,p)17O": {
		Type: TypeReaction, Target: nucleus(8, 16), Projectile: nucleus(1, 2), Ejectile: nucleus(1, 1),
	},
	"24Mg(p,p')24Mg": {
		Type: TypeReaction, Target: nucleus(12, 24), Projectile: nucleus(1, 1), Ejectile: nucleus(1, 1),
	},
	"8Be->a+a": {
		Type: TypeDecay, Parent: nucleus(4, 8), Daughter: nucleus(2, 4),
	},
	"8Be->7Li+p": {
		Type: TypeDecay, Parent: nucleus(4, 8), Daughter: nucleus(3, 7),
	},
	"13C->12C+n": {
		Type: TypeDecay, Parent: nucleus(6, 13), Daughter: nucleus(6, 12),
	},
}

func GetPreset(name string) *ReactionConfig {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
