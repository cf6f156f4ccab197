package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/propscan/ddrgen/internal/pipeline"
)

var (
	runInspectionPDF string
	runThermalPDF    string
	runOutDir        string
	runProperty      string
	runFormats       []string
	runThreshold     float64
)

// runCmd represents the run command (all stages)
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: ingest, extract, merge, analyze, report",
	Long: `Run executes all pipeline stages in order and writes every
intermediate artifact plus the final DDR to the output directory.

At least one of --inspection and --thermal must be given. Requires
GROQ_API_KEY (or OPENAI_API_KEY with a matching --config base_url).

Example:
  ddrgen run --inspection inspection.pdf --thermal thermal.pdf --property "12 Elm Street"
  ddrgen run --inspection inspection.pdf --format markdown --format json`,
	RunE: runPipeline,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runInspectionPDF, "inspection", "", "path to the inspection report PDF")
	runCmd.Flags().StringVar(&runThermalPDF, "thermal", "", "path to the thermal imaging report PDF")
	runCmd.Flags().StringVar(&runOutDir, "out", "", "output directory (default from config)")
	runCmd.Flags().StringVar(&runProperty, "property", "", "property name for the report header")
	runCmd.Flags().StringSliceVar(&runFormats, "format", []string{"markdown"}, "output formats: markdown, text, json")
	runCmd.Flags().Float64Var(&runThreshold, "similarity-threshold", 0, "similarity threshold for de-duplication, 0-1 (default from config)")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	if runInspectionPDF == "" && runThermalPDF == "" {
		return fmt.Errorf("at least one of --inspection and --thermal is required")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if runOutDir != "" {
		cfg.Output.Dir = runOutDir
	}
	if runThreshold > 0 {
		cfg.Merge.SimilarityThreshold = runThreshold
	}

	p := pipeline.NewPipeline(cfg)
	result, err := p.Run(context.Background(), runInspectionPDF, runThermalPDF, runProperty, runFormats)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Pipeline complete in %s\n\n", result.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(os.Stdout, "Input layer:  %s\n", result.InputLayerPath)
	if result.InspectionPath != "" {
		fmt.Fprintf(os.Stdout, "Inspection:   %s\n", result.InspectionPath)
	}
	if result.ThermalPath != "" {
		fmt.Fprintf(os.Stdout, "Thermal:      %s\n", result.ThermalPath)
	}
	fmt.Fprintf(os.Stdout, "Merged areas: %s\n", result.MergedPath)
	fmt.Fprintf(os.Stdout, "Analysis:     %s\n", result.AnalysisPath)

	formats := make([]string, 0, len(result.ReportPaths))
	for format := range result.ReportPaths {
		formats = append(formats, format)
	}
	sort.Strings(formats)
	for _, format := range formats {
		fmt.Fprintf(os.Stdout, "Report (%s): %s\n", format, result.ReportPaths[format])
	}
	return nil
}
