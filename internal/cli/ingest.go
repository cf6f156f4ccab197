package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/propscan/ddrgen/internal/ingest"
)

var (
	ingestInspectionPDF string
	ingestThermalPDF    string
	ingestOutDir        string
	ingestDPI           int
)

// ingestCmd represents the ingest command (Stage 1)
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Extract text, page images, and OCR from the source PDFs",
	Long: `Ingest reads the inspection and/or thermal PDF, extracts selectable
text, renders each page to an image, and runs OCR over the images. The
combined result is written to input_layer.json for the extract stage.

At least one of --inspection and --thermal must be given.

Example:
  ddrgen ingest --inspection inspection.pdf --thermal thermal.pdf
  ddrgen ingest --inspection inspection.pdf --out ./outputs --dpi 200`,
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringVar(&ingestInspectionPDF, "inspection", "", "path to the inspection report PDF")
	ingestCmd.Flags().StringVar(&ingestThermalPDF, "thermal", "", "path to the thermal imaging report PDF")
	ingestCmd.Flags().StringVar(&ingestOutDir, "out", "", "output directory (default from config)")
	ingestCmd.Flags().IntVar(&ingestDPI, "dpi", 0, "page render resolution (default from config)")
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestInspectionPDF == "" && ingestThermalPDF == "" {
		return fmt.Errorf("at least one of --inspection and --thermal is required")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if ingestDPI > 0 {
		cfg.Ingest.DPI = ingestDPI
	}
	outDir := cfg.Output.Dir
	if ingestOutDir != "" {
		outDir = ingestOutDir
	}

	extractor := ingest.NewExtractor(cfg.Ingest, cfg.Concurrency.PageWorkers, cfg.Output.Verbose)
	outPath, err := extractor.Run(context.Background(), ingestInspectionPDF, ingestThermalPDF, outDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Input layer written to: %s\n", outPath)
	return nil
}
