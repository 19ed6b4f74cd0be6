package ism

import (
	"strings"

	apperrors "github.com/clhatlas/reco4011-ssim/pkg/errors"
)

// Symbol is one of the four SSIM judgment codes for an ordered factor
// pair (row, column) in the upper triangle.
type Symbol string

const (
	// SymbolV means the row factor influences the column factor.
	SymbolV Symbol = "V"
	// SymbolA means the column factor influences the row factor.
	SymbolA Symbol = "A"
	// SymbolX means mutual influence in both directions.
	SymbolX Symbol = "X"
	// SymbolO means no relationship. Absent judgments default to O.
	SymbolO Symbol = "O"
)

// ParseSymbol parses a raw judgment string into a Symbol.
// Input is trimmed and case-insensitive; an empty string parses to
// SymbolO ("not yet judged" means "no relationship"). Anything outside
// the V/A/X/O alphabet is a validation error.
func ParseSymbol(raw string) (Symbol, error) {
	switch s := strings.ToUpper(strings.TrimSpace(raw)); s {
	case "":
		return SymbolO, nil
	case "V", "A", "X", "O":
		return Symbol(s), nil
	default:
		return "", apperrors.New(apperrors.ErrCodeInvalidSymbol,
			"unknown judgment symbol %q (expected V, A, X, or O)", raw)
	}
}

// Valid reports whether s is one of the four judgment symbols.
func (s Symbol) Valid() bool {
	switch s {
	case SymbolV, SymbolA, SymbolX, SymbolO:
		return true
	}
	return false
}

// Forward reports whether the judgment asserts row → column influence.
func (s Symbol) Forward() bool { return s == SymbolV || s == SymbolX }

// Backward reports whether the judgment asserts column → row influence.
func (s Symbol) Backward() bool { return s == SymbolA || s == SymbolX }

// Judgments is the SSIM judgment map, keyed first by row factor id and
// then by column factor id. Only upper-triangle pairs (row preceding
// column in the factor ordering) are meaningful; other entries are
// ignored by the encoder.
type Judgments map[string]map[string]Symbol

// Lookup resolves the judgment for (row, col), defaulting to SymbolO
// when the entry is absent. The map is treated as a total function.
func (j Judgments) Lookup(row, col string) Symbol {
	if cols, ok := j[row]; ok {
		if s, ok := cols[col]; ok {
			return s
		}
	}
	return SymbolO
}

// Set records a judgment for (row, col), allocating inner maps as needed.
func (j Judgments) Set(row, col string, s Symbol) {
	cols, ok := j[row]
	if !ok {
		cols = make(map[string]Symbol)
		j[row] = cols
	}
	cols[col] = s
}

// Validate checks every entry against the known factor ids and the
// V/A/X/O alphabet. Entries for unknown factors or with symbols outside
// the alphabet are boundary validation errors; the engine itself assumes
// pre-validated input.
func (j Judgments) Validate(ids []string) error {
	known := make(map[string]bool, len(ids))
	for _, id := range ids {
		known[id] = true
	}
	for row, cols := range j {
		if !known[row] {
			return apperrors.New(apperrors.ErrCodeInvalidStudy,
				"judgment references unknown factor %q", row)
		}
		for col, s := range cols {
			if !known[col] {
				return apperrors.New(apperrors.ErrCodeInvalidStudy,
					"judgment %s/%s references unknown factor %q", row, col, col)
			}
			if !s.Valid() {
				return apperrors.New(apperrors.ErrCodeInvalidSymbol,
					"judgment %s/%s has unknown symbol %q (expected V, A, X, or O)", row, col, string(s))
			}
		}
	}
	return nil
}
