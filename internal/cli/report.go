package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/propscan/ddrgen/internal/llm"
	"github.com/propscan/ddrgen/internal/report"
)

var (
	reportAnalysisPath string
	reportOutDir       string
	reportProperty     string
	reportFormats      []string
	reportNoFooter     bool
)

// reportCmd represents the report command (Stage 4)
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the Detailed Diagnostic Report",
	Long: `Report aggregates the analytical reasoning into the final DDR:
property issue summary, area-wise observations with conflict flags,
probable root causes, severity assessments, prioritized actions, and
missing information. Aggregation is deterministic; no LLM calls.

Example:
  ddrgen report --property "12 Elm Street"
  ddrgen report --format markdown --format text --format json`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportAnalysisPath, "analysis", "", "path to analytical_reasoning.json (default <out>/analytical_reasoning.json)")
	reportCmd.Flags().StringVar(&reportOutDir, "out", "", "output directory (default from config)")
	reportCmd.Flags().StringVar(&reportProperty, "property", "", "property name for the report header")
	reportCmd.Flags().StringSliceVar(&reportFormats, "format", []string{"markdown"}, "output formats: markdown, text, json")
	reportCmd.Flags().BoolVar(&reportNoFooter, "no-footer", false, "disable footer in Markdown reports")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	outDir := cfg.Output.Dir
	if reportOutDir != "" {
		outDir = reportOutDir
	}
	analysisPath := reportAnalysisPath
	if analysisPath == "" {
		analysisPath = filepath.Join(outDir, llm.ReasoningFileName)
	}

	opts := report.MarkdownOptions{IncludeFooter: cfg.Output.IncludeFooter && !reportNoFooter}
	saved, err := report.Run(analysisPath, outDir, reportProperty, reportFormats, opts)
	if err != nil {
		return err
	}

	formats := make([]string, 0, len(saved))
	for format := range saved {
		formats = append(formats, format)
	}
	sort.Strings(formats)
	for _, format := range formats {
		fmt.Fprintf(os.Stdout, "%s report written to: %s\n", format, saved[format])
	}
	return nil
}
