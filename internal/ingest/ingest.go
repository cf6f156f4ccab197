// Package ingest is Stage 1: it turns the two source PDFs into per-page
// text, OCR spans, and rendered page images, with no interpretation of the
// content.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/propscan/ddrgen/internal/model"
	"github.com/propscan/ddrgen/internal/worker"
)

// InputLayerFileName is the fixed Stage 1 output filename.
const InputLayerFileName = "input_layer.json"

// Extractor runs per-page extraction for one or both source PDFs.
type Extractor struct {
	cfg     model.IngestConfig
	workers int
	verbose bool
}

// NewExtractor creates a Stage 1 extractor.
func NewExtractor(cfg model.IngestConfig, workers int, verbose bool) *Extractor {
	if workers <= 0 {
		workers = 1
	}
	return &Extractor{cfg: cfg, workers: workers, verbose: verbose}
}

// pageJob renders and OCRs a single page. Each job opens its own document
// handle: MuPDF handles are not safe for concurrent use, so pages share
// nothing but the input file.
type pageJob struct {
	pdfPath             string
	source              string
	pageIndex           int
	selectableText      string
	imagePath           string
	dpi                 int
	confidenceThreshold float64
}

// pageResult carries one extracted page back from the pool.
type pageResult struct {
	page model.PageExtraction
	err  error
}

func (r *pageResult) GetError() error { return r.err }

func (j *pageJob) Execute(ctx context.Context) worker.Result {
	if err := ctx.Err(); err != nil {
		return &pageResult{err: err}
	}

	doc, err := OpenPDF(j.pdfPath)
	if err != nil {
		return &pageResult{err: err}
	}
	defer doc.Close()

	if err := doc.RenderPageToPNG(j.pageIndex, j.dpi, j.imagePath); err != nil {
		return &pageResult{err: err}
	}

	ocr, err := OCRImageFile(j.imagePath, j.confidenceThreshold)
	if err != nil {
		return &pageResult{err: err}
	}

	spans := ocr.Spans
	if spans == nil {
		spans = []model.OCRSpan{}
	}

	return &pageResult{page: model.PageExtraction{
		Source:        j.source,
		PDFPath:       j.pdfPath,
		PageNumber:    j.pageIndex + 1,
		RawText:       j.selectableText,
		OCRText:       ocr.Text,
		OCRSpans:      spans,
		PageImagePath: j.imagePath,
	}}
}

// ExtractDocument extracts every page of one PDF: selectable text up front
// with a single handle, then render+OCR per page on the worker pool.
func (e *Extractor) ExtractDocument(ctx context.Context, pdfPath, source, outDir string) (*model.DocumentExtraction, error) {
	imagesDir := filepath.Join(outDir, e.cfg.ImagesSubdir)
	if err := os.MkdirAll(imagesDir, 0o755); err != nil {
		return nil, fmt.Errorf("create images dir: %w", err)
	}

	doc, err := OpenPDF(pdfPath)
	if err != nil {
		return nil, err
	}

	numPages := doc.NumPages()
	if e.cfg.MaxPages > 0 && numPages > e.cfg.MaxPages {
		numPages = e.cfg.MaxPages
	}

	selectable := make([]string, numPages)
	for i := 0; i < numPages; i++ {
		text, err := doc.PageText(i)
		if err != nil {
			doc.Close()
			return nil, err
		}
		selectable[i] = text
	}
	if err := doc.Close(); err != nil {
		return nil, fmt.Errorf("close %s: %w", pdfPath, err)
	}

	pool := worker.NewPool(e.workers)
	pool.Start()
	for i := 0; i < numPages; i++ {
		pool.Submit(&pageJob{
			pdfPath:             pdfPath,
			source:              source,
			pageIndex:           i,
			selectableText:      selectable[i],
			imagePath:           filepath.Join(imagesDir, fmt.Sprintf("page_%03d.png", i+1)),
			dpi:                 e.cfg.DPI,
			confidenceThreshold: e.cfg.OCRConfidenceThreshold,
		})
	}

	results := pool.Wait()

	pages := make([]model.PageExtraction, 0, len(results))
	for _, res := range results {
		pr := res.(*pageResult)
		if pr.err != nil {
			return nil, fmt.Errorf("extract page: %w", pr.err)
		}
		pages = append(pages, pr.page)
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].PageNumber < pages[j].PageNumber })

	if e.verbose {
		fmt.Fprintf(os.Stderr, "✓ Extracted %d pages from %s\n", len(pages), pdfPath)
	}

	return &model.DocumentExtraction{
		Source:  source,
		PDFPath: pdfPath,
		Pages:   pages,
	}, nil
}

// Run extracts both source PDFs (either path may be empty, meaning that
// source is absent) and writes input_layer.json under outDir.
func (e *Extractor) Run(ctx context.Context, inspectionPDF, thermalPDF, outDir string) (string, error) {
	if inspectionPDF == "" && thermalPDF == "" {
		return "", fmt.Errorf("no input PDFs: provide at least one of --inspection, --thermal")
	}

	out := &model.InputLayerDoc{}

	if inspectionPDF != "" {
		doc, err := e.ExtractDocument(ctx, inspectionPDF, model.SourceInspection, filepath.Join(outDir, "inspection"))
		if err != nil {
			return "", fmt.Errorf("inspection report: %w", err)
		}
		out.Inspection = doc
	}
	if thermalPDF != "" {
		doc, err := e.ExtractDocument(ctx, thermalPDF, model.SourceThermal, filepath.Join(outDir, "thermal"))
		if err != nil {
			return "", fmt.Errorf("thermal report: %w", err)
		}
		out.Thermal = doc
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	outFile := filepath.Join(outDir, InputLayerFileName)
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal input layer: %w", err)
	}
	if err := os.WriteFile(outFile, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", outFile, err)
	}
	return outFile, nil
}
