package render

import (
	"strings"
	"testing"

	"github.com/clhatlas/reco4011-ssim/pkg/ism"
)

func TestMICMACSVG_Structure(t *testing.T) {
	svg := string(MICMACSVG(chainResult(t), 800, 600))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Errorf("missing svg root:\n%s", svg[:80])
	}
	if !strings.HasSuffix(strings.TrimSpace(svg), "</svg>") {
		t.Error("svg not closed")
	}

	for _, q := range []string{"AUTONOMOUS", "DEPENDENT", "LINKAGE", "DRIVER"} {
		if !strings.Contains(svg, q) {
			t.Errorf("missing quadrant label %s", q)
		}
	}
	if !strings.Contains(svg, "dependence power") || !strings.Contains(svg, "driving power") {
		t.Error("missing axis labels")
	}

	// Three factors with distinct powers give three points.
	if got := strings.Count(svg, "<circle"); got != 3 {
		t.Errorf("point count = %d, want 3", got)
	}
	for _, label := range []string{"F1", "F2", "F3"} {
		if !strings.Contains(svg, label) {
			t.Errorf("missing factor label %s", label)
		}
	}
}

func TestMICMACSVG_CoincidentFactorsShareAPoint(t *testing.T) {
	j := ism.Judgments{}
	j.Set("a", "b", ism.SymbolX)
	res, err := ism.Analyze([]ism.Factor{{ID: "a"}, {ID: "b"}}, j)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	svg := string(MICMACSVG(res, 800, 600))
	if got := strings.Count(svg, "<circle"); got != 1 {
		t.Errorf("point count = %d, want 1 shared point", got)
	}
	if !strings.Contains(svg, "a, b") {
		t.Errorf("combined label missing:\n%s", svg)
	}
}

func TestMICMACSVG_EscapesLabels(t *testing.T) {
	res, err := ism.Analyze([]ism.Factor{{ID: "r&d", Code: "R&D"}}, ism.Judgments{})
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	svg := string(MICMACSVG(res, 800, 600))
	if !strings.Contains(svg, "R&amp;D") {
		t.Error("label ampersand not escaped")
	}
}
