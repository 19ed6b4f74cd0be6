package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/clhatlas/reco4011-ssim/pkg/cache"
	"github.com/clhatlas/reco4011-ssim/pkg/ism"
	"github.com/clhatlas/reco4011-ssim/pkg/observability"
	"github.com/clhatlas/reco4011-ssim/pkg/render"
	"github.com/clhatlas/reco4011-ssim/pkg/study"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store run results. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete analyze → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, st *study.Study, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	studyHash, err := studyHash(st)
	if err != nil {
		return nil, err
	}
	result := &Result{
		StudyHash: studyHash,
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Analyze
	analyzeStart := time.Now()
	analysis, analyzeHit, err := r.AnalyzeWithCacheInfo(ctx, st, studyHash, opts)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	result.Analysis = analysis
	result.Stats.AnalyzeTime = time.Since(analyzeStart)
	result.Stats.FactorCount = analysis.N()
	result.Stats.LevelCount = len(analysis.Levels)
	result.CacheInfo.AnalyzeHit = analyzeHit

	r.Logger.Info("analyzed study",
		"factors", analysis.N(),
		"levels", len(analysis.Levels),
		"duration", result.Stats.AnalyzeTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, st, analysis, studyHash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// AnalyzeWithCacheInfo runs the engine with caching and reports whether
// the result came from cache.
func (r *Runner) AnalyzeWithCacheInfo(ctx context.Context, st *study.Study, studyHash string, opts Options) (*ism.Result, bool, error) {
	cacheKey := r.Keyer.ResultKey(studyHash)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if res, err := study.ReadResultJSON(bytes.NewReader(data)); err == nil {
				observability.Cache().OnCacheHit(ctx, "result")
				return res, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "result")
	}

	observability.Analysis().OnAnalyzeStart(ctx, st.Name, len(st.Factors))
	start := time.Now()
	res, err := st.Analyze()
	observability.Analysis().OnAnalyzeComplete(ctx, st.Name, levelCount(res), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if !opts.Refresh {
		var buf bytes.Buffer
		if err := study.WriteResultJSON(res, &buf); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, buf.Bytes(), cache.TTLResult)
			observability.Cache().OnCacheSet(ctx, "result", buf.Len())
		}
	}

	return res, false, nil
}

// Analyze is a convenience wrapper that discards the cache hit info.
func (r *Runner) Analyze(ctx context.Context, st *study.Study, opts Options) (*ism.Result, error) {
	hash, err := studyHash(st)
	if err != nil {
		return nil, err
	}
	res, _, err := r.AnalyzeWithCacheInfo(ctx, st, hash, opts)
	return res, err
}

// RenderWithCacheInfo generates artifacts with caching and reports
// whether all of them came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, st *study.Study, res *ism.Result, studyHash string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	allCached := true
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(studyHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	observability.Analysis().OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := renderFormats(ctx, res, opts)
	observability.Analysis().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if !opts.Refresh {
		for format, data := range rendered {
			cacheKey := r.Keyer.ArtifactKey(studyHash, opts.ArtifactKeyOpts(format))
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		}
	}

	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func studyHash(st *study.Study) (string, error) {
	data, err := study.CanonicalJSON(st)
	if err != nil {
		return "", fmt.Errorf("hash study: %w", err)
	}
	return cache.Hash(data), nil
}

func levelCount(res *ism.Result) int {
	if res == nil {
		return 0
	}
	return len(res.Levels)
}

// renderFormats produces every requested artifact. The DOT string is
// built once and shared by the dot/svg/png formats.
func renderFormats(ctx context.Context, res *ism.Result, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	renderOpts := render.Options{Detailed: opts.Detailed}

	var dot string
	needDOT := false
	for _, f := range opts.Formats {
		if f == FormatDOT || f == FormatSVG || f == FormatPNG {
			needDOT = true
		}
	}
	if needDOT {
		dot = render.ToDOT(res, renderOpts)
	}

	for _, format := range opts.Formats {
		switch format {
		case FormatJSON:
			var buf bytes.Buffer
			if err := study.WriteResultJSON(res, &buf); err != nil {
				return nil, err
			}
			artifacts[format] = buf.Bytes()
		case FormatCSV:
			var buf bytes.Buffer
			if err := study.WritePowersCSV(res, &buf); err != nil {
				return nil, err
			}
			artifacts[format] = buf.Bytes()
		case FormatDOT:
			artifacts[format] = []byte(dot)
		case FormatSVG:
			svg, err := render.RenderSVG(ctx, dot)
			if err != nil {
				return nil, err
			}
			artifacts[format] = svg
		case FormatPNG:
			png, err := render.RenderPNG(ctx, dot)
			if err != nil {
				return nil, err
			}
			artifacts[format] = png
		case FormatMICMAC:
			artifacts[format] = render.MICMACSVG(res, opts.Width, opts.Height)
		default:
			return nil, fmt.Errorf("invalid format: %q", format)
		}
	}
	return artifacts, nil
}
