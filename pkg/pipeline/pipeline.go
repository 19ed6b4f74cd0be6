// Package pipeline provides the analyze → render pipeline shared by the
// CLI and the HTTP API. Centralizing this logic keeps caching behavior
// identical across entry points.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Analyze: run the ISM engine on a validated study
//  2. Render: generate output artifacts in the requested formats
//
// Each stage can be run independently or as part of the complete
// pipeline, and each is cached under the SHA-256 hash of the study's
// canonical encoding.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Formats: []string{"svg", "json"}}
//	result, err := runner.Execute(ctx, st, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/clhatlas/reco4011-ssim/pkg/cache"
	"github.com/clhatlas/reco4011-ssim/pkg/ism"
)

// Format constants for output formats.
const (
	FormatJSON   = "json"
	FormatCSV    = "csv"
	FormatDOT    = "dot"
	FormatSVG    = "svg"
	FormatPNG    = "png"
	FormatMICMAC = "micmac"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON:   true,
	FormatCSV:    true,
	FormatDOT:    true,
	FormatSVG:    true,
	FormatPNG:    true,
	FormatMICMAC: true,
}

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Formats selects the artifacts to render.
	Formats []string `json:"formats,omitempty"`

	// Detailed includes descriptions and power values in diagram labels.
	Detailed bool `json:"detailed,omitempty"`

	// Width and Height size the MICMAC chart.
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Refresh bypasses the cache and recomputes everything.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Analysis is the full engine output.
	Analysis *ism.Result

	// StudyHash is the content hash of the study.
	StudyHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	FactorCount int
	LevelCount  int
	AnalyzeTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	AnalyzeHit bool // Whether the analysis came from cache
	RenderHit  bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: json, csv, dot, svg, png, micmac)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Default sizing for the MICMAC chart.
const (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
)

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Detail: o.Detailed,
	}
}
