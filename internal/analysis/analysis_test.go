package analysis

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/nuckage/internal/nucdata"
	"github.com/san-kum/nuckage/internal/reaction"
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

func loadTable(t *testing.T) *nucdata.Table {
	t.Helper()
	tbl, err := nucdata.Load(strings.NewReader(testTable))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	return tbl
}

func be8Chain(tbl *nucdata.Table, ex float64) *reaction.Chain {
	target, _ := reaction.NewTarget([]int{3}, []int{1}, 40)
	c := reaction.NewChain(target)
	c.AddStep(tbl, []nucdata.Nuclide{tbl.Nuclide(3, 7), tbl.Nuclide(2, 3), tbl.Nuclide(1, 2)}, ex, 0, 15, 0)
	c.AddStep(tbl, []nucdata.Nuclide{tbl.Nuclide(4, 8), tbl.Nuclide(3, 7)}, 0, 0, 0, 0)
	return c
}

func TestReport(t *testing.T) {
	tbl := loadTable(t)

	rep := Report(tbl, be8Chain(tbl, 20))
	if !rep.Valid {
		t.Fatalf("expected valid chain: %s", rep.Reason)
	}
	if rep.Target != "Li1" || rep.Thickness != 40 {
		t.Errorf("unexpected target %q %f", rep.Target, rep.Thickness)
	}
	if len(rep.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(rep.Steps))
	}

	first, second := rep.Steps[0], rep.Steps[1]
	if first.Threshold == nil || math.Abs(*first.Threshold-11.787) > 1e-2 {
		t.Errorf("unexpected threshold %v", first.Threshold)
	}
	if second.Threshold != nil {
		t.Error("decay should have no threshold")
	}
	if second.IncomingEx != 20 {
		t.Errorf("expected carried excitation 20, got %f", second.IncomingEx)
	}
	if second.QValue == nil || math.Abs(*second.QValue-2.7456) > 1e-2 {
		t.Errorf("unexpected decay Q %v", second.QValue)
	}
}

func TestReportInvalid(t *testing.T) {
	tbl := loadTable(t)

	rep := Report(tbl, be8Chain(tbl, 10))
	if rep.Valid {
		t.Fatal("expected invalid chain")
	}
	if rep.Reason == "" {
		t.Error("expected a reason")
	}
	if !rep.Steps[0].Allowed || rep.Steps[1].Allowed {
		t.Errorf("unexpected verdicts %v %v", rep.Steps[0].Allowed, rep.Steps[1].Allowed)
	}
}

func TestThresholdScan(t *testing.T) {
	tbl := loadTable(t)
	s := reaction.NewReaction(tbl, tbl.Nuclide(3, 7), tbl.Nuclide(1, 1), tbl.Nuclide(0, 1), reaction.Excitation{}, reaction.Beam{Mean: 3})

	points, err := ThresholdScan(s, 0, 0, 2, 5)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(points) != 5 {
		t.Fatalf("expected 5 points, got %d", len(points))
	}
	for i := 1; i < len(points); i++ {
		if points[i].Threshold <= points[i-1].Threshold {
			t.Errorf("threshold should grow with excitation: %v", points)
		}
	}
	if !points[0].Allowed || points[len(points)-1].Allowed {
		t.Errorf("expected allowed at ground state only near the start: %+v", points)
	}
}

func TestThresholdScanInvalid(t *testing.T) {
	tbl := loadTable(t)
	s := reaction.NewStep(tbl, nil, reaction.Excitation{}, reaction.Beam{})

	if _, err := ThresholdScan(s, 0, 0, 1, 3); !errors.Is(err, reaction.ErrInvalidStep) {
		t.Errorf("expected ErrInvalidStep, got %v", err)
	}
}

func TestMaxExcitation(t *testing.T) {
	tbl := loadTable(t)
	s := reaction.NewReaction(tbl, tbl.Nuclide(3, 7), tbl.Nuclide(1, 1), tbl.Nuclide(0, 1), reaction.Excitation{}, reaction.Beam{Mean: 3})

	exMax, err := MaxExcitation(s, 0)
	if err != nil {
		t.Fatalf("max excitation: %v", err)
	}

	at := s.WithExcitation(reaction.Excitation{Mean: exMax - 1e-6})
	if !at.CheckThreshold(0) {
		t.Error("expected step allowed just below max excitation")
	}
	at = s.WithExcitation(reaction.Excitation{Mean: exMax + 1e-6})
	if at.CheckThreshold(0) {
		t.Error("expected step forbidden just above max excitation")
	}

	d := reaction.NewDecay(tbl, tbl.Nuclide(4, 8), tbl.Nuclide(2, 4), reaction.Excitation{})
	q, _ := d.QValue(0)
	if got, _ := MaxExcitation(d, 0); got != q {
		t.Errorf("decay max excitation %f != Q %f", got, q)
	}
}

func TestVerifyAll(t *testing.T) {
	tbl := loadTable(t)

	chains := []*reaction.Chain{
		be8Chain(tbl, 20),
		be8Chain(tbl, 10),
		reaction.NewChain(nil),
		be8Chain(tbl, 18),
	}

	results, err := VerifyAll(context.Background(), chains, 2)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if len(results) != len(chains) {
		t.Fatalf("expected %d results, got %d", len(chains), len(results))
	}
	if results[0] != nil || results[3] != nil {
		t.Errorf("expected valid chains: %v", results)
	}
	if !errors.Is(results[1], reaction.ErrBelowThreshold) {
		t.Errorf("expected ErrBelowThreshold, got %v", results[1])
	}
	if !errors.Is(results[2], reaction.ErrEmptyChain) {
		t.Errorf("expected ErrEmptyChain, got %v", results[2])
	}
	if AllValid(results) {
		t.Error("AllValid should be false")
	}
}

func TestVerifyAllCanceled(t *testing.T) {
	tbl := loadTable(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := VerifyAll(ctx, []*reaction.Chain{be8Chain(tbl, 20)}, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
