package ism

import (
	apperrors "github.com/clhatlas/reco4011-ssim/pkg/errors"
)

// Result is the complete output of one analysis run. All fields are
// derived from the factor list and judgment map passed to [Analyze];
// nothing is mutated incrementally and no field outlives the run that
// produced it.
type Result struct {
	Factors []Factor `json:"factors" bson:"factors"`

	// IRM is the Initial Reachability Matrix encoded from the SSIM.
	IRM Matrix `json:"irm" bson:"irm"`
	// FRM is the Final Reachability Matrix, the transitive closure of IRM.
	FRM Matrix `json:"frm" bson:"frm"`

	// Levels is the hierarchy partition; level 1 is the most dependent
	// stratum. Every factor index appears in exactly one level.
	Levels []Level `json:"levels" bson:"levels"`

	// MICMAC holds per-factor driving/dependence powers and quadrants,
	// in factor-index order. Split is the N/2 threshold used.
	MICMAC []Power `json:"micmac" bson:"micmac"`
	Split  float64 `json:"split" bson:"split"`

	// Permutation lists factor indices level by level (elements of level
	// 1 first). Canonical is the FRM with rows and columns reordered by
	// that permutation, the conical matrix of the ISM literature. Both
	// are derived diagramming views; the hierarchy renderer draws edges
	// from [Skeleton] instead and no consumer should treat Canonical as
	// part of the reachability contract.
	Permutation []int  `json:"permutation" bson:"permutation"`
	Canonical   Matrix `json:"canonical" bson:"canonical"`
}

// N returns the factor count of the analysis.
func (r *Result) N() int { return len(r.Factors) }

// LevelOf returns the level number assigned to the factor index, or 0
// if the index is out of range.
func (r *Result) LevelOf(index int) int {
	for _, lv := range r.Levels {
		for _, e := range lv.Elements {
			if e == index {
				return lv.Number
			}
		}
	}
	return 0
}

// Analyze runs the full ISM pipeline: SSIM encoding, transitive closure,
// level partitioning, and MICMAC classification.
//
// Factor identifiers must be well-formed and unique, and every judgment
// entry must reference known factors with a symbol in the V/A/X/O
// alphabet; violations surface as validation errors before any matrix
// is built. Absent judgments are valid input and resolve to O.
//
// Degenerate inputs are accepted: an empty factor list yields an empty
// result and a single factor yields a one-level, autonomous result.
//
// The computation is pure and deterministic: identical inputs produce
// byte-identical results. The only non-validation failure is an
// internal-consistency error from the partitioner, which indicates a
// closure bug rather than bad input.
func Analyze(factors []Factor, judgments Judgments) (*Result, error) {
	if err := ValidateFactors(factors); err != nil {
		return nil, err
	}
	ids := FactorIDs(factors)
	if err := judgments.Validate(ids); err != nil {
		return nil, err
	}

	irm := BuildIRM(ids, judgments)
	frm := Closure(irm)

	levels, err := Partition(frm)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternalPartition, err,
			"level partition failed for %d factors", len(factors))
	}

	points, split := Classify(frm)

	perm := make([]int, 0, len(factors))
	for _, lv := range levels {
		perm = append(perm, lv.Elements...)
	}

	return &Result{
		Factors:     factors,
		IRM:         irm,
		FRM:         frm,
		Levels:      levels,
		MICMAC:      points,
		Split:       split,
		Permutation: perm,
		Canonical:   frm.Permute(perm),
	}, nil
}
