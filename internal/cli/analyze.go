package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/propscan/ddrgen/internal/llm"
	"github.com/propscan/ddrgen/internal/merge"
)

var (
	analyzeMergedPath string
	analyzeOutDir     string
)

// analyzeCmd represents the analyze command (Stage 3)
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run evidence-constrained reasoning over the merged area data",
	Long: `Analyze sends each merged area to the reasoning model with strict
constraints: only the provided facts may be referenced, every inference
must cite evidence, and insufficient evidence must yield sentinels
instead of speculation. Results are written to analytical_reasoning.json.

Requires GROQ_API_KEY (or OPENAI_API_KEY with a matching --config base_url).

Example:
  ddrgen analyze --merged ./outputs/merged_area_data.json`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeMergedPath, "merged", "", "path to merged_area_data.json (default <out>/merged_area_data.json)")
	analyzeCmd.Flags().StringVar(&analyzeOutDir, "out", "", "output directory (default from config)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	outDir := cfg.Output.Dir
	if analyzeOutDir != "" {
		outDir = analyzeOutDir
	}
	mergedPath := analyzeMergedPath
	if mergedPath == "" {
		mergedPath = filepath.Join(outDir, merge.MergedFileName)
	}

	client, respCache, err := newClientAndCache(cfg)
	if err != nil {
		return err
	}

	analyzer := llm.NewAnalyzer(client, cfg.LLM, respCache, cfg.Concurrency.ReasoningWorkers, cfg.Output.Verbose)
	outPath, err := analyzer.Run(context.Background(), mergedPath, outDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Analytical reasoning written to: %s\n", outPath)
	return nil
}
