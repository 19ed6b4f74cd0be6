package ism

import "testing"

func TestBuildIRM_SymbolConsistency(t *testing.T) {
	tests := []struct {
		symbol  Symbol
		wantIJ  int
		wantJI  int
	}{
		{SymbolV, 1, 0},
		{SymbolA, 0, 1},
		{SymbolX, 1, 1},
		{SymbolO, 0, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.symbol), func(t *testing.T) {
			j := Judgments{}
			j.Set("a", "b", tt.symbol)

			irm := BuildIRM([]string{"a", "b"}, j)

			if irm[0][1] != tt.wantIJ {
				t.Errorf("IRM[0][1] = %d, want %d", irm[0][1], tt.wantIJ)
			}
			if irm[1][0] != tt.wantJI {
				t.Errorf("IRM[1][0] = %d, want %d", irm[1][0], tt.wantJI)
			}
		})
	}
}

func TestBuildIRM_Reflexive(t *testing.T) {
	irm := BuildIRM([]string{"a", "b", "c"}, Judgments{})

	for i := 0; i < 3; i++ {
		if irm[i][i] != 1 {
			t.Errorf("IRM[%d][%d] = %d, want 1", i, i, irm[i][i])
		}
	}
}

func TestBuildIRM_AbsentDefaultsToO(t *testing.T) {
	irm := BuildIRM([]string{"a", "b"}, Judgments{})

	if irm[0][1] != 0 || irm[1][0] != 0 {
		t.Errorf("absent judgment: IRM off-diagonal = (%d, %d), want (0, 0)", irm[0][1], irm[1][0])
	}
}

func TestBuildIRM_IgnoresLowerTriangleAndDiagonal(t *testing.T) {
	j := Judgments{}
	j.Set("b", "a", SymbolX) // lower triangle: never consulted
	j.Set("a", "a", SymbolV) // diagonal: never consulted

	irm := BuildIRM([]string{"a", "b"}, j)

	if irm[0][1] != 0 || irm[1][0] != 0 {
		t.Errorf("lower-triangle input leaked: IRM = %v", irm)
	}
	if irm[0][0] != 1 || irm[1][1] != 1 {
		t.Errorf("diagonal not reflexive: IRM = %v", irm)
	}
}

func TestBuildIRM_Empty(t *testing.T) {
	irm := BuildIRM(nil, Judgments{})
	if irm.N() != 0 {
		t.Errorf("N() = %d, want 0", irm.N())
	}
}

func TestParseSymbol(t *testing.T) {
	tests := []struct {
		raw     string
		want    Symbol
		wantErr bool
	}{
		{"V", SymbolV, false},
		{"a", SymbolA, false},
		{" x ", SymbolX, false},
		{"O", SymbolO, false},
		{"", SymbolO, false},
		{"Z", "", true},
		{"VA", "", true},
	}

	for _, tt := range tests {
		got, err := ParseSymbol(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseSymbol(%q) = %q, want error", tt.raw, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSymbol(%q) error: %v", tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSymbol(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestJudgments_Lookup(t *testing.T) {
	j := Judgments{}
	j.Set("a", "b", SymbolV)

	if got := j.Lookup("a", "b"); got != SymbolV {
		t.Errorf("Lookup(a, b) = %q, want V", got)
	}
	if got := j.Lookup("a", "c"); got != SymbolO {
		t.Errorf("Lookup(a, c) = %q, want O (default)", got)
	}
	if got := j.Lookup("z", "b"); got != SymbolO {
		t.Errorf("Lookup(z, b) = %q, want O (default)", got)
	}
}

func TestJudgments_Validate(t *testing.T) {
	ids := []string{"a", "b"}

	valid := Judgments{}
	valid.Set("a", "b", SymbolX)
	if err := valid.Validate(ids); err != nil {
		t.Errorf("Validate() error: %v", err)
	}

	unknownRow := Judgments{}
	unknownRow.Set("z", "b", SymbolV)
	if err := unknownRow.Validate(ids); err == nil {
		t.Error("Validate() accepted unknown row factor")
	}

	unknownCol := Judgments{}
	unknownCol.Set("a", "z", SymbolV)
	if err := unknownCol.Validate(ids); err == nil {
		t.Error("Validate() accepted unknown column factor")
	}

	badSymbol := Judgments{}
	badSymbol.Set("a", "b", Symbol("Q"))
	if err := badSymbol.Validate(ids); err == nil {
		t.Error("Validate() accepted symbol outside V/A/X/O")
	}
}
