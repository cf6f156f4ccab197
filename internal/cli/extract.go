package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/propscan/ddrgen/internal/ingest"
	"github.com/propscan/ddrgen/internal/llm"
)

var (
	extractInputPath string
	extractOutDir    string
)

// extractCmd represents the extract command (Stage 2)
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract structured facts from the ingested document text",
	Long: `Extract prompts the extraction model over the cleaned, chunked
document text and validates its output against a JSON schema, retrying
with a repair instruction on validation failure. Facts are written to
inspection_facts.json and thermal_facts.json.

Requires GROQ_API_KEY (or OPENAI_API_KEY with a matching --config base_url).

Example:
  ddrgen extract --input ./outputs/input_layer.json`,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&extractInputPath, "input", "", "path to input_layer.json (default <out>/input_layer.json)")
	extractCmd.Flags().StringVar(&extractOutDir, "out", "", "output directory (default from config)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	outDir := cfg.Output.Dir
	if extractOutDir != "" {
		outDir = extractOutDir
	}
	inputPath := extractInputPath
	if inputPath == "" {
		inputPath = filepath.Join(outDir, ingest.InputLayerFileName)
	}

	client, respCache, err := newClientAndCache(cfg)
	if err != nil {
		return err
	}

	extractor := llm.NewExtractor(client, cfg.LLM, respCache, cfg.Output.Verbose)
	inspPath, thermPath, err := extractor.Run(context.Background(), inputPath, outDir)
	if err != nil {
		return err
	}

	if inspPath != "" {
		fmt.Fprintf(os.Stdout, "Inspection facts written to: %s\n", inspPath)
	}
	if thermPath != "" {
		fmt.Fprintf(os.Stdout, "Thermal facts written to: %s\n", thermPath)
	}
	return nil
}
