package nucdata

import "fmt"

// Nuclide is one isotope identified by proton count Z and mass number A.
// Symbol and mass are resolved from the table when the value is built and
// cannot be set independently of (Z, A).
type Nuclide struct {
	z, a   int
	symbol string
	mass   float64
	known  bool
}

// Nuclide builds the isotope (z, a), resolving its symbol and mass eagerly.
// Isotopes missing from the table carry the None symbol and report
// Known() == false.
func (t *Table) Nuclide(z, a int) Nuclide {
	n := Nuclide{z: z, a: a, symbol: None}
	if z < 0 || a < 0 {
		return n
	}
	if m, ok := t.Lookup(z, a); ok {
		n.mass = m
		n.known = true
		n.symbol = t.NuclearSymbol(z, a)
	}
	return n
}

// Combine returns the compound nucleus of a and b: protons and nucleons add.
func (t *Table) Combine(a, b Nuclide) Nuclide {
	return t.Nuclide(a.z+b.z, a.a+b.a)
}

// Difference returns what is left of composite once fragment is removed,
// conserving proton and nucleon number. Combine(Difference(c, f), f) == c.
func (t *Table) Difference(composite, fragment Nuclide) Nuclide {
	return t.Nuclide(composite.z-fragment.z, composite.a-fragment.a)
}

func (n Nuclide) Z() int { return n.z }
func (n Nuclide) A() int { return n.a }

// Mass is the nuclear mass-energy in MeV; zero when !Known().
func (n Nuclide) Mass() float64 { return n.mass }

// Symbol is the "<A><element>" label, or None.
func (n Nuclide) Symbol() string { return n.symbol }

// Known reports whether the mass table has an entry for (Z, A).
func (n Nuclide) Known() bool { return n.known }

// Same reports identity on (Z, A).
func (n Nuclide) Same(o Nuclide) bool {
	return n.z == o.z && n.a == o.a
}

func (n Nuclide) String() string { return n.symbol }

// GoString is used in test failures and debug logs.
func (n Nuclide) GoString() string {
	return fmt.Sprintf("Nuclide(Z=%d, A=%d, %s)", n.z, n.a, n.symbol)
}
