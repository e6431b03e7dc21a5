package reaction

import (
	"strings"

	"github.com/san-kum/nuckage/internal/nucdata"
)

const testTable = `light isotopes
N Z A El Mass MicroMass
1 0 1 n 1 8664.91582
0 1 1 H 1 7825.03224
1 1 2 H 2 14101.77811
1 2 3 He 3 16029.32265
2 2 4 He 4 2603.25413
4 3 7 Li 7 16003.43426
3 4 7 Be 7 16928.717
4 4 8 Be 8 5305.09982
6 6 12 C 12 0.0
7 6 13 C 13 3354.83507
`

// fataler is satisfied by *testing.T and GinkgoT().
type fataler interface {
	Helper()
	Fatalf(format string, args ...any)
}

func mustTable(t fataler, src string) *nucdata.Table {
	t.Helper()
	tbl, err := nucdata.Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	return tbl
}
