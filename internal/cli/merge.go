package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/propscan/ddrgen/internal/llm"
	"github.com/propscan/ddrgen/internal/merge"
)

var (
	mergeInspectionPath string
	mergeThermalPath    string
	mergeOutDir         string
	mergeThreshold      float64
)

// mergeCmd represents the merge command (Stage 2 merge layer)
var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge extracted facts by area, de-duplicate, and detect conflicts",
	Long: `Merge groups the extracted inspection and thermal facts by normalized
area name, removes near-duplicate facts within each source, and flags
contradictions between the two sources. Conflicts are surfaced with full
evidence from both sides, never resolved. The result is written to
merged_area_data.json.

This stage is deterministic and makes no LLM calls. Either facts file may
be absent; its areas are simply not represented.

Example:
  ddrgen merge
  ddrgen merge --inspection facts/inspection_facts.json --similarity-threshold 0.95`,
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().StringVar(&mergeInspectionPath, "inspection", "", "path to inspection_facts.json (default <out>/inspection_facts.json)")
	mergeCmd.Flags().StringVar(&mergeThermalPath, "thermal", "", "path to thermal_facts.json (default <out>/thermal_facts.json)")
	mergeCmd.Flags().StringVar(&mergeOutDir, "out", "", "output directory (default from config)")
	mergeCmd.Flags().Float64Var(&mergeThreshold, "similarity-threshold", 0, "similarity threshold for de-duplication, 0-1 (default from config)")
}

func runMerge(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	outDir := cfg.Output.Dir
	if mergeOutDir != "" {
		outDir = mergeOutDir
	}
	inspPath := mergeInspectionPath
	if inspPath == "" {
		inspPath = filepath.Join(outDir, llm.InspectionFactsFileName)
	}
	thermPath := mergeThermalPath
	if thermPath == "" {
		thermPath = filepath.Join(outDir, llm.ThermalFactsFileName)
	}
	threshold := cfg.Merge.SimilarityThreshold
	if mergeThreshold > 0 {
		threshold = mergeThreshold
	}

	if !fileExists(inspPath) && !fileExists(thermPath) {
		return fmt.Errorf("no facts files found at %s or %s\nTip: run 'ddrgen extract' first with GROQ_API_KEY set", inspPath, thermPath)
	}

	outPath, err := merge.Run(inspPath, thermPath, outDir, threshold)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Merged area data written to: %s\n", outPath)
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
