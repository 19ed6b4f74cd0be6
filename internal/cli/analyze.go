package cli

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clhatlas/reco4011-ssim/pkg/pipeline"
	"github.com/clhatlas/reco4011-ssim/pkg/study"
)

// analyzeCommand creates the analyze command.
func (c *CLI) analyzeCommand() *cobra.Command {
	var (
		output  string
		format  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <study.json>",
		Short: "Run the ISM engine on a study file",
		Long: `Analyze reads a study JSON file (factors plus V/A/X/O judgments),
computes the reachability matrices, the level hierarchy, and the MICMAC
classification, and writes the result to stdout or a file.

Formats:
  json    full result (matrices, levels, micmac, canonical form)
  csv     MICMAC table (id, code, driving, dependence, quadrant, level)
  matrix  final reachability matrix as CSV`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			st, err := study.ImportJSON(args[0])
			if err != nil {
				return err
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(logger)
			opts := pipeline.Options{
				Formats: []string{pipeline.FormatJSON},
				Refresh: refresh,
				Logger:  logger,
			}
			result, err := runner.Execute(cmd.Context(), st, opts)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Analyzed %d factors", result.Stats.FactorCount))

			var buf bytes.Buffer
			switch strings.ToLower(format) {
			case "json":
				buf.Write(result.Artifacts[pipeline.FormatJSON])
			case "csv":
				if err := study.WritePowersCSV(result.Analysis, &buf); err != nil {
					return err
				}
			case "matrix":
				if err := study.WriteMatrixCSV(result.Analysis.Factors, result.Analysis.FRM, &buf); err != nil {
					return err
				}
			default:
				return fmt.Errorf("invalid format: %q (must be one of: json, csv, matrix)", format)
			}

			if output == "" || output == "-" {
				_, err = os.Stdout.Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}

			printSuccess("Wrote analysis")
			printFile(output)
			printStats(result.Stats.FactorCount, result.Stats.LevelCount, result.CacheInfo.AnalyzeHit)
			printNextStep("Render the hierarchy diagram", fmt.Sprintf("%s render %s", appName, args[0]))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&format, "format", "json", "output format: json, csv, or matrix")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if cached")

	return cmd
}
