package pipeline

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/clhatlas/reco4011-ssim/pkg/cache"
	"github.com/clhatlas/reco4011-ssim/pkg/ism"
	"github.com/clhatlas/reco4011-ssim/pkg/study"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func chainStudy() *study.Study {
	j := ism.Judgments{}
	j.Set("a", "b", ism.SymbolV)
	j.Set("b", "c", ism.SymbolV)
	return &study.Study{
		Name: "chain",
		Factors: []ism.Factor{
			{ID: "a", Code: "F1"},
			{ID: "b", Code: "F2"},
			{ID: "c", Code: "F3"},
		},
		Judgments: j,
	}
}

func TestOptionsValidation(t *testing.T) {
	t.Run("DefaultFormat", func(t *testing.T) {
		opts := Options{}
		if err := opts.ValidateAndSetDefaults(); err != nil {
			t.Fatalf("ValidateAndSetDefaults() error: %v", err)
		}
		if len(opts.Formats) != 1 || opts.Formats[0] != FormatJSON {
			t.Errorf("Formats = %v, want [json]", opts.Formats)
		}
		if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
			t.Errorf("size = %vx%v, want defaults", opts.Width, opts.Height)
		}
	})

	t.Run("InvalidFormat", func(t *testing.T) {
		opts := Options{Formats: []string{"pdf"}}
		if err := opts.ValidateAndSetDefaults(); err == nil {
			t.Error("expected error for unsupported format")
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		opts := Options{Width: 1024}
		if err := opts.ValidateAndSetDefaults(); err != nil {
			t.Fatal(err)
		}
		if err := opts.ValidateAndSetDefaults(); err != nil {
			t.Fatal(err)
		}
		if opts.Width != 1024 {
			t.Errorf("Width = %v, want 1024 preserved", opts.Width)
		}
	})
}

func TestRunnerExecute(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, quietLogger())
	defer runner.Close()

	res, err := runner.Execute(context.Background(), chainStudy(), Options{
		Formats: []string{FormatJSON, FormatDOT, FormatCSV, FormatMICMAC},
		Logger:  quietLogger(),
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if res.Analysis == nil || res.Analysis.N() != 3 {
		t.Fatalf("missing analysis: %+v", res.Analysis)
	}
	if res.Stats.FactorCount != 3 || res.Stats.LevelCount != 3 {
		t.Errorf("Stats = %+v, want 3 factors and 3 levels", res.Stats)
	}
	if res.StudyHash == "" {
		t.Error("missing study hash")
	}

	for _, format := range []string{FormatJSON, FormatDOT, FormatCSV, FormatMICMAC} {
		if len(res.Artifacts[format]) == 0 {
			t.Errorf("missing %s artifact", format)
		}
	}
	if !strings.HasPrefix(string(res.Artifacts[FormatDOT]), "digraph ISM") {
		t.Error("dot artifact malformed")
	}

	// Analysis JSON artifact must decode back to the same matrices.
	decoded, err := study.ReadResultJSON(bytes.NewReader(res.Artifacts[FormatJSON]))
	if err != nil {
		t.Fatalf("decode json artifact: %v", err)
	}
	if !decoded.FRM.Equal(res.Analysis.FRM) {
		t.Error("json artifact does not match analysis")
	}
}

func TestRunnerExecute_CacheHits(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	runner := NewRunner(c, nil, quietLogger())
	defer runner.Close()

	opts := Options{Formats: []string{FormatJSON, FormatDOT}, Logger: quietLogger()}

	first, err := runner.Execute(context.Background(), chainStudy(), opts)
	if err != nil {
		t.Fatalf("first Execute() error: %v", err)
	}
	if first.CacheInfo.AnalyzeHit || first.CacheInfo.RenderHit {
		t.Errorf("first run should miss: %+v", first.CacheInfo)
	}

	second, err := runner.Execute(context.Background(), chainStudy(), opts)
	if err != nil {
		t.Fatalf("second Execute() error: %v", err)
	}
	if !second.CacheInfo.AnalyzeHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit: %+v", second.CacheInfo)
	}
	if !second.Analysis.FRM.Equal(first.Analysis.FRM) {
		t.Error("cached analysis differs from computed analysis")
	}
	if !bytes.Equal(second.Artifacts[FormatDOT], first.Artifacts[FormatDOT]) {
		t.Error("cached dot artifact differs")
	}
}

func TestRunnerExecute_RefreshBypassesCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	runner := NewRunner(c, nil, quietLogger())
	defer runner.Close()

	if _, err := runner.Execute(context.Background(), chainStudy(), Options{
		Formats: []string{FormatJSON},
		Logger:  quietLogger(),
	}); err != nil {
		t.Fatal(err)
	}

	res, err := runner.Execute(context.Background(), chainStudy(), Options{
		Formats: []string{FormatJSON},
		Refresh: true,
		Logger:  quietLogger(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.AnalyzeHit || res.CacheInfo.RenderHit {
		t.Errorf("refresh run should not report cache hits: %+v", res.CacheInfo)
	}
}

func TestRunnerExecute_InvalidStudy(t *testing.T) {
	runner := NewRunner(nil, nil, quietLogger())
	defer runner.Close()

	bad := &study.Study{Factors: []ism.Factor{{ID: "a"}, {ID: "a"}}}
	if _, err := runner.Execute(context.Background(), bad, Options{Logger: quietLogger()}); err == nil {
		t.Error("expected error for duplicate factors")
	}
}

func TestDifferentStudiesGetDifferentHashes(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, quietLogger())
	defer runner.Close()

	a, err := runner.Execute(context.Background(), chainStudy(), Options{Logger: quietLogger()})
	if err != nil {
		t.Fatal(err)
	}

	other := chainStudy()
	other.Judgments.Set("a", "c", ism.SymbolX)
	b, err := runner.Execute(context.Background(), other, Options{Logger: quietLogger()})
	if err != nil {
		t.Fatal(err)
	}

	if a.StudyHash == b.StudyHash {
		t.Error("different studies share a hash")
	}
}
