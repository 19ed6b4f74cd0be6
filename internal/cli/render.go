package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clhatlas/reco4011-ssim/pkg/pipeline"
	"github.com/clhatlas/reco4011-ssim/pkg/study"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formats   string
		outputDir string
		detailed  bool
		noCache   bool
		refresh   bool
	)

	cmd := &cobra.Command{
		Use:   "render <study.json>",
		Short: "Render diagram artifacts for a study",
		Long: `Render analyzes the study and writes the requested artifacts next to
each other in the output directory. Available formats: json, csv, dot,
svg, png, micmac (the MICMAC driving/dependence chart as SVG).`,
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

			defaultFormat := "svg"
			if len(c.Config.Render.Formats) > 0 {
				defaultFormat = strings.Join(c.Config.Render.Formats, ",")
			}

			opts := pipeline.Options{
				Formats:  parseFormats(formats, defaultFormat),
				Detailed: detailed || c.Config.Render.Detailed,
				Refresh:  refresh,
				Logger:   logger,
			}

			prog := newProgress(logger)
			result, err := runner.Execute(cmd.Context(), st, opts)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Rendered %d artifacts", len(result.Artifacts)))

			if err := os.MkdirAll(outputDir, 0755); err != nil {
				return fmt.Errorf("create %s: %w", outputDir, err)
			}

			base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			printSuccess("Wrote artifacts")
			for _, format := range opts.Formats {
				path := filepath.Join(outputDir, base+"."+artifactExt(format))
				if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				printFile(path)
			}
			printStats(result.Stats.FactorCount, result.Stats.LevelCount, result.CacheInfo.RenderHit)
			return nil
		},
	}

	cmd.Flags().StringVarP(&formats, "formats", "f", "", "comma-separated formats: json,csv,dot,svg,png,micmac")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", ".", "output directory")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include descriptions and powers in labels")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "re-render even if cached")

	return cmd
}

// artifactExt maps a pipeline format to a file extension. The MICMAC
// chart is SVG content, so it gets a compound extension.
func artifactExt(format string) string {
	if format == pipeline.FormatMICMAC {
		return "micmac.svg"
	}
	return format
}
