package reaction

import (
	"strconv"
	"strings"

	"github.com/san-kum/nuckage/internal/nucdata"
)

// Target is a stopping-material composition. Z and S are parallel lists of
// element proton counts and stoichiometries; Thickness is the areal density
// in ug/cm^2. It plays no part in kinematics.
type Target struct {
	Z         []int
	S         []int
	Thickness float64
}

func NewTarget(z, s []int, thickness float64) (*Target, error) {
	if len(z) != len(s) {
		return nil, ErrComposition
	}
	t := &Target{
		Z:         append([]int(nil), z...),
		S:         append([]int(nil), s...),
		Thickness: thickness,
	}
	return t, nil
}

// Formula renders the composition as element symbol + stoichiometry per
// component, e.g. "C1H2".
func (t *Target) Formula(tbl *nucdata.Table) string {
	var sb strings.Builder
	for i := range t.Z {
		sb.WriteString(tbl.ElementSymbol(t.Z[i]))
		if i < len(t.S) {
			sb.WriteString(strconv.Itoa(t.S[i]))
		}
	}
	return sb.String()
}
