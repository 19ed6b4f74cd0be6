package study

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	apperrors "github.com/clhatlas/reco4011-ssim/pkg/errors"
	"github.com/clhatlas/reco4011-ssim/pkg/ism"
)

// Study is a named factor list plus the SSIM judgment map collected for
// it. The factor order is significant: it fixes the matrix indices of
// every downstream artifact.
type Study struct {
	Name      string        `json:"name,omitempty" bson:"name,omitempty"`
	Factors   []ism.Factor  `json:"factors" bson:"factors"`
	Judgments ism.Judgments `json:"judgments,omitempty" bson:"judgments,omitempty"`
}

// Validate checks the study at the boundary: a well-formed optional name,
// well-formed unique factor ids, and judgment entries that reference
// known factors with symbols in the V/A/X/O alphabet.
func (s *Study) Validate() error {
	if s.Name != "" {
		if err := apperrors.ValidateStudyName(s.Name); err != nil {
			return err
		}
	}
	if err := ism.ValidateFactors(s.Factors); err != nil {
		return err
	}
	return s.Judgments.Validate(ism.FactorIDs(s.Factors))
}

// Analyze validates the study and runs the full analysis pipeline.
func (s *Study) Analyze() (*ism.Result, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return ism.Analyze(s.Factors, s.Judgments)
}

// ReadJSON decodes a study from r and validates it.
//
// The input must be a JSON object with a "factors" array and an optional
// "judgments" object keyed by row factor id, then column factor id:
//
//	{
//	  "factors": [{"id": "a"}, {"id": "b"}],
//	  "judgments": {"a": {"b": "V"}}
//	}
//
// Malformed JSON, duplicate factor ids, judgments referencing unknown
// factors, and symbols outside V/A/X/O are all reported as errors.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Study, error) {
	var s Study
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "decode study")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// WriteJSON encodes the study as indented JSON to w. The output can be
// re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(s *Study, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ImportJSON reads a study JSON file at path.
func ImportJSON(path string) (*Study, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "study file %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// ExportJSON writes the study to a JSON file at path.
func ExportJSON(s *Study, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(s, f)
}

// CanonicalJSON returns a compact, deterministic encoding of the study
// used for cache keys. encoding/json sorts map keys, so two studies with
// the same factors (in order) and the same judgment entries encode to
// identical bytes regardless of map insertion order.
func CanonicalJSON(s *Study) ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return b, nil
}
