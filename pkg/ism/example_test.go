package ism_test

import (
	"fmt"

	"github.com/clhatlas/reco4011-ssim/pkg/ism"
)

func ExampleAnalyze() {
	factors := []ism.Factor{
		{ID: "cost", Code: "C"},
		{ID: "quality", Code: "Q"},
		{ID: "demand", Code: "D"},
	}

	judgments := ism.Judgments{}
	judgments.Set("cost", "quality", ism.SymbolV)   // cost influences quality
	judgments.Set("quality", "demand", ism.SymbolV) // quality influences demand

	result, err := ism.Analyze(factors, judgments)
	if err != nil {
		panic(err)
	}

	for _, lv := range result.Levels {
		fmt.Printf("level %d:", lv.Number)
		for _, i := range lv.Elements {
			fmt.Printf(" %s", result.Factors[i].Code)
		}
		fmt.Println()
	}
	fmt.Printf("closure added cost→demand: %d\n", result.FRM[0][2])
	// Output:
	// level 1: D
	// level 2: Q
	// level 3: C
	// closure added cost→demand: 1
}

func ExampleClassify() {
	judgments := ism.Judgments{}
	judgments.Set("a", "b", ism.SymbolX)

	irm := ism.BuildIRM([]string{"a", "b"}, judgments)
	points, split := ism.Classify(ism.Closure(irm))

	fmt.Printf("split: %.1f\n", split)
	for _, p := range points {
		fmt.Printf("factor %d: driving=%d dependence=%d %s\n", p.Factor, p.Driving, p.Dependence, p.Quadrant)
	}
	// Output:
	// split: 1.0
	// factor 0: driving=2 dependence=2 linkage
	// factor 1: driving=2 dependence=2 linkage
}
