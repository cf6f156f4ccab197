// Package pipeline orchestrates the four document-analysis stages end to
// end: PDF ingestion, fact extraction, area merging, analytical reasoning,
// and DDR rendering.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/propscan/ddrgen/internal/cache"
	"github.com/propscan/ddrgen/internal/ingest"
	"github.com/propscan/ddrgen/internal/llm"
	"github.com/propscan/ddrgen/internal/merge"
	"github.com/propscan/ddrgen/internal/model"
	"github.com/propscan/ddrgen/internal/report"
	"github.com/propscan/ddrgen/internal/worker"
)

// Pipeline wires the per-stage runners behind one Run call
type Pipeline struct {
	config    *model.Config
	extractor *ingest.Extractor
	llmClient llm.Client
	respCache cache.Cache
}

// NewPipeline creates a pipeline from configuration. The LLM client is
// created lazily on first use so ingest-only runs work without an API key.
func NewPipeline(cfg *model.Config) *Pipeline {
	var respCache cache.Cache
	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			dir = filepath.Join(cfg.Output.Dir, ".cache")
		}
		respCache = cache.NewLayeredCache(cfg.Cache.TTL, dir, cfg.Cache.TTL)
	}

	return &Pipeline{
		config:    cfg,
		extractor: ingest.NewExtractor(cfg.Ingest, cfg.Concurrency.PageWorkers, cfg.Output.Verbose),
		respCache: respCache,
	}
}

func (p *Pipeline) client() (llm.Client, error) {
	if p.llmClient != nil {
		return p.llmClient, nil
	}
	limiter := worker.NewLimiter(p.config.Concurrency.RequestsPerSecond, p.config.Concurrency.Burst)
	c, err := llm.NewOpenAIClient(p.config.LLM, limiter)
	if err != nil {
		return nil, err
	}
	p.llmClient = c
	return c, nil
}

func (p *Pipeline) logf(format string, args ...any) {
	if p.config.Output.Verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

// Result records where each stage wrote its output
type Result struct {
	InputLayerPath string
	InspectionPath string
	ThermalPath    string
	MergedPath     string
	AnalysisPath   string
	ReportPaths    map[string]string
	Elapsed        time.Duration
}

// Run executes all four stages for the given PDFs. At least one of
// inspectionPDF and thermalPDF must be provided.
func (p *Pipeline) Run(ctx context.Context, inspectionPDF, thermalPDF, propertyName string, formats []string) (*Result, error) {
	start := time.Now()
	outDir := p.config.Output.Dir
	result := &Result{}

	// 1. Ingest PDFs (text, rendered pages, OCR)
	inputPath, err := p.extractor.Run(ctx, inspectionPDF, thermalPDF, outDir)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	result.InputLayerPath = inputPath
	p.logf("stage 1 complete: %s", inputPath)

	// 2. Extract structured facts
	client, err := p.client()
	if err != nil {
		return nil, err
	}
	extractor := llm.NewExtractor(client, p.config.LLM, p.respCache, p.config.Output.Verbose)
	inspPath, thermPath, err := extractor.Run(ctx, inputPath, outDir)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	result.InspectionPath = inspPath
	result.ThermalPath = thermPath
	p.logf("stage 2 complete: %s %s", inspPath, thermPath)

	// 3. Merge facts by area, de-duplicate, detect conflicts
	mergedPath, err := merge.Run(inspPath, thermPath, outDir, p.config.Merge.SimilarityThreshold)
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	result.MergedPath = mergedPath
	p.logf("stage 2.5 complete: %s", mergedPath)

	// 4. Analytical reasoning per area
	analyzer := llm.NewAnalyzer(client, p.config.LLM, p.respCache, p.config.Concurrency.ReasoningWorkers, p.config.Output.Verbose)
	analysisPath, err := analyzer.Run(ctx, mergedPath, outDir)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	result.AnalysisPath = analysisPath
	p.logf("stage 3 complete: %s", analysisPath)

	// 5. Build and render the DDR
	opts := report.MarkdownOptions{IncludeFooter: p.config.Output.IncludeFooter}
	reportPaths, err := report.Run(analysisPath, outDir, propertyName, formats, opts)
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	result.ReportPaths = reportPaths
	result.Elapsed = time.Since(start)
	p.logf("stage 4 complete in %s", result.Elapsed.Round(time.Millisecond))

	return result, nil
}
