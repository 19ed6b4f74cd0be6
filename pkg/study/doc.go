// Package study defines the on-disk study model and its codecs.
//
// A study is the unit of input to the analysis engine: an ordered factor
// list plus the SSIM judgment map. The package provides a JSON codec for
// whole studies and results, CSV import for factor lists and SSIM grids,
// and CSV export for matrices and MICMAC tables.
//
// JSON is the primary interchange format. CSV exists for spreadsheet
// workflows: workshop facilitators typically collect factors and pairwise
// judgments in a sheet before running the analysis.
package study
