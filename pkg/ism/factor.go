package ism

import (
	apperrors "github.com/clhatlas/reco4011-ssim/pkg/errors"
)

// Factor is one element of the system under study. Factors are supplied
// as an ordered list; a factor's position in that list is its index, and
// all matrices are indexed positionally.
type Factor struct {
	ID          string `json:"id" bson:"id"`                                     // stable identifier, unique within a study
	Code        string `json:"code,omitempty" bson:"code,omitempty"`             // short display name
	Description string `json:"description,omitempty" bson:"description,omitempty"` // free text
	Category    string `json:"category,omitempty" bson:"category,omitempty"`     // optional grouping label
}

// Label returns the display code if set, otherwise the identifier.
func (f Factor) Label() string {
	if f.Code != "" {
		return f.Code
	}
	return f.ID
}

// FactorIDs extracts the identifier from each factor in order.
func FactorIDs(factors []Factor) []string {
	ids := make([]string, len(factors))
	for i, f := range factors {
		ids[i] = f.ID
	}
	return ids
}

// ValidateFactors checks that every factor has a well-formed identifier
// and that identifiers are unique. An empty list is valid (it yields a
// degenerate empty analysis, not an error).
func ValidateFactors(factors []Factor) error {
	seen := make(map[string]int, len(factors))
	for i, f := range factors {
		if err := apperrors.ValidateFactorID(f.ID); err != nil {
			return err
		}
		if prev, dup := seen[f.ID]; dup {
			return apperrors.New(apperrors.ErrCodeDuplicateFactor,
				"duplicate factor id %q at positions %d and %d", f.ID, prev, i)
		}
		seen[f.ID] = i
	}
	return nil
}
