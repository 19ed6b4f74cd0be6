package ism

import (
	"errors"
	"testing"
)

func TestPartition_Chain(t *testing.T) {
	// a→b→c: c is most dependent (level 1), a drives everything (level 3).
	frm := Closure(chainIRM())

	levels, err := Partition(frm)
	if err != nil {
		t.Fatalf("Partition() error: %v", err)
	}

	want := [][]int{{2}, {1}, {0}}
	if len(levels) != len(want) {
		t.Fatalf("got %d levels, want %d", len(levels), len(want))
	}
	for i, lv := range levels {
		if lv.Number != i+1 {
			t.Errorf("levels[%d].Number = %d, want %d", i, lv.Number, i+1)
		}
		if !equalInts(lv.Elements, want[i]) {
			t.Errorf("level %d elements = %v, want %v", lv.Number, lv.Elements, want[i])
		}
	}
}

func TestPartition_MutualPairSingleLevel(t *testing.T) {
	j := Judgments{}
	j.Set("a", "b", SymbolX)
	frm := Closure(BuildIRM([]string{"a", "b"}, j))

	levels, err := Partition(frm)
	if err != nil {
		t.Fatalf("Partition() error: %v", err)
	}

	if len(levels) != 1 {
		t.Fatalf("got %d levels, want 1", len(levels))
	}
	if !equalInts(levels[0].Elements, []int{0, 1}) {
		t.Errorf("level 1 elements = %v, want [0 1]", levels[0].Elements)
	}
}

func TestPartition_AllUnrelated(t *testing.T) {
	// All judgments O: FRM is the identity and every factor satisfies
	// the level condition in the first pass.
	ids := []string{"a", "b", "c", "d"}
	frm := Closure(BuildIRM(ids, Judgments{}))

	levels, err := Partition(frm)
	if err != nil {
		t.Fatalf("Partition() error: %v", err)
	}

	if len(levels) != 1 {
		t.Fatalf("got %d levels, want 1 (isolated factors all satisfy the level condition at once)", len(levels))
	}
	if !equalInts(levels[0].Elements, []int{0, 1, 2, 3}) {
		t.Errorf("level 1 elements = %v, want [0 1 2 3]", levels[0].Elements)
	}
}

func TestPartition_Complete(t *testing.T) {
	// Every index appears in exactly one level.
	j := Judgments{}
	j.Set("a", "b", SymbolV)
	j.Set("a", "c", SymbolV)
	j.Set("b", "d", SymbolX)
	j.Set("c", "d", SymbolA)
	frm := Closure(BuildIRM([]string{"a", "b", "c", "d"}, j))

	levels, err := Partition(frm)
	if err != nil {
		t.Fatalf("Partition() error: %v", err)
	}

	seen := make(map[int]int)
	for _, lv := range levels {
		for _, e := range lv.Elements {
			seen[e]++
		}
	}
	for i := 0; i < 4; i++ {
		if seen[i] != 1 {
			t.Errorf("index %d assigned %d times, want exactly 1", i, seen[i])
		}
	}
}

func TestPartition_LevelValidity(t *testing.T) {
	// For every factor at level L, its reachability set restricted to
	// levels ≥ L must equal its antecedent intersection at removal time.
	j := Judgments{}
	j.Set("a", "b", SymbolV)
	j.Set("b", "c", SymbolV)
	j.Set("b", "d", SymbolX)
	frm := Closure(BuildIRM([]string{"a", "b", "c", "d"}, j))

	levels, err := Partition(frm)
	if err != nil {
		t.Fatalf("Partition() error: %v", err)
	}

	levelOf := make(map[int]int)
	for _, lv := range levels {
		for _, e := range lv.Elements {
			levelOf[e] = lv.Number
		}
	}

	for _, lv := range levels {
		for _, i := range lv.Elements {
			for j := range frm {
				if levelOf[j] < lv.Number {
					continue // removed before i's iteration
				}
				if frm[i][j] == 1 && frm[j][i] == 0 {
					t.Errorf("factor %d at level %d still reaches %d (level %d) without a return path",
						i, lv.Number, j, levelOf[j])
				}
			}
		}
	}
}

func TestPartition_NotPreorder(t *testing.T) {
	// A 3-cycle without reflexivity: no index ever satisfies the level
	// condition, which a valid closure output can never produce.
	frm := Matrix{
		{0, 1, 0},
		{0, 0, 1},
		{1, 0, 0},
	}

	_, err := Partition(frm)
	if !errors.Is(err, ErrNotPreorder) {
		t.Errorf("Partition() error = %v, want ErrNotPreorder", err)
	}
}

func TestPartition_Empty(t *testing.T) {
	levels, err := Partition(NewMatrix(0))
	if err != nil {
		t.Fatalf("Partition() error: %v", err)
	}
	if len(levels) != 0 {
		t.Errorf("got %d levels, want 0", len(levels))
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
