package ism

import "testing"

func TestClassify_MutualPair(t *testing.T) {
	j := Judgments{}
	j.Set("a", "b", SymbolX)
	frm := Closure(BuildIRM([]string{"a", "b"}, j))

	points, split := Classify(frm)

	if split != 1.0 {
		t.Errorf("split = %v, want 1.0", split)
	}
	for _, p := range points {
		if p.Driving != 2 || p.Dependence != 2 {
			t.Errorf("factor %d powers = (%d, %d), want (2, 2)", p.Factor, p.Driving, p.Dependence)
		}
		if p.Quadrant != QuadrantLinkage {
			t.Errorf("factor %d quadrant = %q, want linkage", p.Factor, p.Quadrant)
		}
	}
}

func TestClassify_AllUnrelatedAutonomous(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e"}
	frm := Closure(BuildIRM(ids, Judgments{}))

	points, split := Classify(frm)

	if split != 2.5 {
		t.Errorf("split = %v, want 2.5", split)
	}
	for _, p := range points {
		if p.Driving != 1 || p.Dependence != 1 {
			t.Errorf("factor %d powers = (%d, %d), want (1, 1)", p.Factor, p.Driving, p.Dependence)
		}
		if p.Quadrant != QuadrantAutonomous {
			t.Errorf("factor %d quadrant = %q, want autonomous", p.Factor, p.Quadrant)
		}
	}
}

func TestClassify_Chain(t *testing.T) {
	frm := Closure(chainIRM()) // a→b→c, N=3, split=1.5

	points, _ := Classify(frm)

	tests := []struct {
		factor     int
		driving    int
		dependence int
		quadrant   Quadrant
	}{
		{0, 3, 1, QuadrantDriver},    // a reaches all, only itself reaches it
		{1, 2, 2, QuadrantLinkage},   // b relays
		{2, 1, 3, QuadrantDependent}, // c is reached by all
	}
	for _, tt := range tests {
		p := points[tt.factor]
		if p.Driving != tt.driving || p.Dependence != tt.dependence {
			t.Errorf("factor %d powers = (%d, %d), want (%d, %d)",
				tt.factor, p.Driving, p.Dependence, tt.driving, tt.dependence)
		}
		if p.Quadrant != tt.quadrant {
			t.Errorf("factor %d quadrant = %q, want %q", tt.factor, p.Quadrant, tt.quadrant)
		}
	}
}

func TestClassify_SplitBoundaryIsLow(t *testing.T) {
	// Powers exactly at the split must classify as low: with an even N,
	// a factor whose driving power equals N/2 sits on the boundary.
	tests := []struct {
		name       string
		driving    int
		dependence int
		split      float64
		want       Quadrant
	}{
		{"BothAtSplit", 2, 2, 2.0, QuadrantAutonomous},
		{"DrivingAtSplit", 2, 3, 2.0, QuadrantDependent},
		{"DependenceAtSplit", 3, 2, 2.0, QuadrantDriver},
		{"BothAboveSplit", 3, 3, 2.0, QuadrantLinkage},
		{"JustBelowFractionalSplit", 5, 5, 5.5, QuadrantAutonomous},
		{"JustAboveFractionalSplit", 6, 6, 5.5, QuadrantLinkage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := quadrantFor(tt.driving, tt.dependence, tt.split)
			if got != tt.want {
				t.Errorf("quadrantFor(%d, %d, %v) = %q, want %q",
					tt.driving, tt.dependence, tt.split, got, tt.want)
			}
		})
	}
}

func TestClassify_PowerTotalsBalance(t *testing.T) {
	j := Judgments{}
	j.Set("a", "b", SymbolV)
	j.Set("a", "c", SymbolX)
	j.Set("b", "d", SymbolA)
	frm := Closure(BuildIRM([]string{"a", "b", "c", "d"}, j))

	points, _ := Classify(frm)

	var driving, dependence int
	for _, p := range points {
		if p.Driving < 1 || p.Dependence < 1 {
			t.Errorf("factor %d powers = (%d, %d), want both ≥ 1", p.Factor, p.Driving, p.Dependence)
		}
		driving += p.Driving
		dependence += p.Dependence
	}
	if driving != dependence {
		t.Errorf("sum of driving powers %d != sum of dependence powers %d", driving, dependence)
	}
	if driving != frm.Ones() {
		t.Errorf("sum of driving powers %d != total 1-cells %d", driving, frm.Ones())
	}
}
