package nucdata

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	// U2MeV converts unified atomic mass units to MeV.
	U2MeV = 931.4940954
	// ElectronMass is the electron rest-mass energy in MeV.
	ElectronMass = 0.000548579909

	headerRows = 2
	// None is the symbol reported for nuclides missing from the table.
	None = "none"
)

type key struct {
	z, a int
}

// Table maps (Z, A) to nuclear mass-energy and Z to element symbol.
// It is never mutated after Load returns, so concurrent readers need no locking.
type Table struct {
	masses   map[key]float64
	elements map[int]string
}

// Load reads a whitespace-delimited mass table. The first two rows are a
// header. Each remaining row holds neutron count, Z, A, element symbol, the
// integer mass in u and the fractional part in micro-u.
func Load(r io.Reader) (*Table, error) {
	t := &Table{
		masses:   make(map[key]float64),
		elements: make(map[int]string),
	}

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		if line <= headerRows {
			continue
		}
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if err := t.parseRow(text); err != nil {
			return nil, &LineError{Line: line, Err: err}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read mass table: %w", err)
	}
	if len(t.masses) == 0 {
		return nil, ErrEmptyTable
	}

	return t, nil
}

// LoadFile opens path and loads it with Load.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func (t *Table) parseRow(text string) error {
	fields := strings.Fields(text)
	if len(fields) < 6 {
		return fmt.Errorf("%w: want 6 columns, got %d", ErrMalformedRow, len(fields))
	}

	if _, err := strconv.Atoi(fields[0]); err != nil {
		return fmt.Errorf("%w: neutron count %q", ErrMalformedRow, fields[0])
	}
	z, err := strconv.Atoi(fields[1])
	if err != nil {
		return fmt.Errorf("%w: Z %q", ErrMalformedRow, fields[1])
	}
	a, err := strconv.Atoi(fields[2])
	if err != nil {
		return fmt.Errorf("%w: A %q", ErrMalformedRow, fields[2])
	}
	big, err := strconv.ParseFloat(fields[4], 64)
	if err != nil {
		return fmt.Errorf("%w: mass %q", ErrMalformedRow, fields[4])
	}
	small, err := strconv.ParseFloat(fields[5], 64)
	if err != nil {
		return fmt.Errorf("%w: micro mass %q", ErrMalformedRow, fields[5])
	}

	t.masses[key{z, a}] = NuclearMass(z, big, small)
	t.elements[z] = fields[3]
	return nil
}

// NuclearMass converts a tabulated atomic mass (integer u plus micro-u) into
// the nuclear mass-energy of an isotope with z protons.
func NuclearMass(z int, massU, massMicroU float64) float64 {
	return (massU+massMicroU*1e-6)*U2MeV - float64(z)*ElectronMass
}

// Len reports the number of isotopes in the table.
func (t *Table) Len() int { return len(t.masses) }

// Lookup returns the nuclear mass of (z, a) and whether the table knows it.
func (t *Table) Lookup(z, a int) (float64, bool) {
	m, ok := t.masses[key{z, a}]
	return m, ok
}

// Mass returns the nuclear mass of (z, a), or 0 when it is unknown.
// Use Lookup when zero must be told apart from missing.
func (t *Table) Mass(z, a int) float64 {
	m, _ := t.Lookup(z, a)
	return m
}

// Element returns the element symbol for z and whether it is known.
func (t *Table) Element(z int) (string, bool) {
	s, ok := t.elements[z]
	return s, ok
}

// ElementSymbol returns the bare element symbol for z, or None.
func (t *Table) ElementSymbol(z int) string {
	if s, ok := t.Element(z); ok {
		return s
	}
	return None
}

// NuclearSymbol returns the "<A><symbol>" label of (z, a), e.g. "12C",
// or None when the isotope is not in the table.
func (t *Table) NuclearSymbol(z, a int) string {
	if _, ok := t.Lookup(z, a); !ok {
		return None
	}
	return strconv.Itoa(a) + t.elements[z]
}
