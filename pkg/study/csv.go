package study

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	apperrors "github.com/clhatlas/reco4011-ssim/pkg/errors"
	"github.com/clhatlas/reco4011-ssim/pkg/ism"
)

var factorHeader = []string{"id", "code", "description", "category"}

// ReadFactorsCSV decodes a factor list from CSV. The first record must be
// the header "id,code,description,category"; trailing columns beyond "id"
// may be omitted per row. Factor order follows record order.
func ReadFactorsCSV(r io.Reader) ([]ism.Factor, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "read factor header")
	}
	if len(header) == 0 || strings.TrimSpace(strings.ToLower(header[0])) != "id" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidFormat,
			"factor CSV must start with header %q", strings.Join(factorHeader, ","))
	}

	var factors []ism.Factor
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "read factor record")
		}
		f := ism.Factor{ID: strings.TrimSpace(rec[0])}
		if len(rec) > 1 {
			f.Code = strings.TrimSpace(rec[1])
		}
		if len(rec) > 2 {
			f.Description = strings.TrimSpace(rec[2])
		}
		if len(rec) > 3 {
			f.Category = strings.TrimSpace(rec[3])
		}
		factors = append(factors, f)
	}

	if err := ism.ValidateFactors(factors); err != nil {
		return nil, err
	}
	return factors, nil
}

// ImportFactorsCSV reads a factor CSV file at path.
func ImportFactorsCSV(path string) ([]ism.Factor, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "factor file %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadFactorsCSV(f)
}

// WriteFactorsCSV encodes the factor list as CSV with the standard header.
func WriteFactorsCSV(factors []ism.Factor, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(factorHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, f := range factors {
		if err := cw.Write([]string{f.ID, f.Code, f.Description, f.Category}); err != nil {
			return fmt.Errorf("write factor %s: %w", f.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadGridCSV decodes an SSIM grid for a known factor list. The grid is
// a square table: a header row of factor labels after one corner cell,
// then one row per factor with its label followed by judgment cells.
// Labels match factor ids or display codes. Only upper-triangle cells
// are read; empty cells mean O, and anything outside V/A/X/O is a
// validation error. Lower-triangle and diagonal cells are ignored.
func ReadGridCSV(r io.Reader, factors []ism.Factor) (ism.Judgments, error) {
	if err := ism.ValidateFactors(factors); err != nil {
		return nil, err
	}
	index := labelIndex(factors)

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "read grid header")
	}
	cols, err := resolveLabels(header[1:], index, factors)
	if err != nil {
		return nil, err
	}

	judgments := ism.Judgments{}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "read grid row")
		}
		if len(rec) == 0 {
			continue
		}
		row, ok := index[strings.TrimSpace(rec[0])]
		if !ok {
			return nil, apperrors.New(apperrors.ErrCodeInvalidStudy,
				"grid row label %q matches no factor", rec[0])
		}
		for c, cell := range rec[1:] {
			if c >= len(cols) {
				break
			}
			col := cols[c]
			if col <= row {
				continue
			}
			s, err := ism.ParseSymbol(cell)
			if err != nil {
				return nil, apperrors.Wrap(apperrors.ErrCodeInvalidSymbol, err,
					"grid cell %s/%s", factors[row].ID, factors[col].ID)
			}
			if s != ism.SymbolO {
				judgments.Set(factors[row].ID, factors[col].ID, s)
			}
		}
	}
	return judgments, nil
}

// WriteGridCSV encodes the SSIM grid for the factor list: labels on the
// header row and first column, upper-triangle judgment symbols, and "-"
// on the diagonal. Lower-triangle cells are left empty.
func WriteGridCSV(factors []ism.Factor, judgments ism.Judgments, w io.Writer) error {
	cw := csv.NewWriter(w)

	header := make([]string, len(factors)+1)
	for i, f := range factors {
		header[i+1] = f.Label()
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, f := range factors {
		rec := make([]string, len(factors)+1)
		rec[0] = f.Label()
		rec[i+1] = "-"
		for j := i + 1; j < len(factors); j++ {
			rec[j+1] = string(judgments.Lookup(f.ID, factors[j].ID))
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %s: %w", f.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMatrixCSV encodes a 0/1 matrix as CSV with factor labels on the
// header row and first column.
func WriteMatrixCSV(factors []ism.Factor, m ism.Matrix, w io.Writer) error {
	cw := csv.NewWriter(w)

	header := make([]string, len(factors)+1)
	for i, f := range factors {
		header[i+1] = f.Label()
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, f := range factors {
		rec := make([]string, len(factors)+1)
		rec[0] = f.Label()
		for j, v := range m[i] {
			rec[j+1] = strconv.Itoa(v)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %s: %w", f.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePowersCSV encodes the MICMAC table: one record per factor with its
// driving power, dependence power, quadrant, and hierarchy level.
func WritePowersCSV(res *ism.Result, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "code", "driving", "dependence", "quadrant", "level"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, p := range res.MICMAC {
		f := res.Factors[p.Factor]
		rec := []string{
			f.ID,
			f.Code,
			strconv.Itoa(p.Driving),
			strconv.Itoa(p.Dependence),
			string(p.Quadrant),
			strconv.Itoa(res.LevelOf(p.Factor)),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write factor %s: %w", f.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func labelIndex(factors []ism.Factor) map[string]int {
	index := make(map[string]int, len(factors)*2)
	for i, f := range factors {
		index[f.ID] = i
		if f.Code != "" {
			index[f.Code] = i
		}
	}
	return index
}

func resolveLabels(labels []string, index map[string]int, factors []ism.Factor) ([]int, error) {
	cols := make([]int, 0, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		i, ok := index[l]
		if !ok {
			return nil, apperrors.New(apperrors.ErrCodeInvalidStudy,
				"grid column label %q matches no factor", l)
		}
		cols = append(cols, i)
	}
	if len(cols) != len(factors) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidFormat,
			"grid has %d column labels, want %d", len(cols), len(factors))
	}
	return cols, nil
}
