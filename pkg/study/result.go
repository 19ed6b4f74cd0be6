package study

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	apperrors "github.com/clhatlas/reco4011-ssim/pkg/errors"
	"github.com/clhatlas/reco4011-ssim/pkg/ism"
)

// WriteResultJSON encodes an analysis result as indented JSON to w.
func WriteResultJSON(res *ism.Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadResultJSON decodes a previously exported analysis result from r.
// No re-validation is performed; the result is trusted as engine output.
func ReadResultJSON(r io.Reader) (*ism.Result, error) {
	var res ism.Result
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "decode result")
	}
	return &res, nil
}

// ExportResultJSON writes an analysis result to a JSON file at path.
func ExportResultJSON(res *ism.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteResultJSON(res, f)
}
