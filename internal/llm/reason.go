package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/propscan/ddrgen/internal/cache"
	"github.com/propscan/ddrgen/internal/model"
	"github.com/propscan/ddrgen/internal/worker"
)

// ReasoningFileName is the Stage 3 output document
const ReasoningFileName = "analytical_reasoning.json"

// reasoningTemperature is kept low for more deterministic reasoning
const reasoningTemperature = 0.1

const reasoningSystemPrompt = "You are a precise analytical assistant that only uses provided " +
	"evidence and never invents information. Always respond with valid JSON."

// Analyzer runs evidence-constrained reasoning over merged area data. Each
// area gets one LLM call; the analysis must cite provided evidence or fall
// back to sentinels.
type Analyzer struct {
	client  Client
	cfg     model.LLMConfig
	cache   cache.Cache
	workers int
	verbose bool
}

// NewAnalyzer creates a Stage 3 analyzer. cache may be nil to disable
// response caching.
func NewAnalyzer(client Client, cfg model.LLMConfig, c cache.Cache, workers int, verbose bool) *Analyzer {
	return &Analyzer{
		client:  client,
		cfg:     cfg,
		cache:   c,
		workers: workers,
		verbose: verbose,
	}
}

func (a *Analyzer) logf(format string, args ...any) {
	if a.verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

func (a *Analyzer) reasoningModel() string {
	if a.cfg.ReasoningModel != "" {
		return a.cfg.ReasoningModel
	}
	return a.cfg.Model
}

func formatPages(pages []int) string {
	parts := make([]string, len(pages))
	for i, p := range pages {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ", ")
}

// BuildReasoningPrompt serializes one merged area into a strict
// evidence-only reasoning prompt.
func BuildReasoningPrompt(area model.MergedArea) string {
	inspectionText := "NONE"
	if len(area.InspectionFacts) > 0 {
		items := make([]string, 0, len(area.InspectionFacts))
		for i, fact := range area.InspectionFacts {
			lines := []string{
				fmt.Sprintf("  Observation: %s", fact.Observation),
				fmt.Sprintf("  Visible Issue: %s", fact.VisibleIssue),
				fmt.Sprintf("  Moisture Signs: %s", fact.MoistureSigns),
				fmt.Sprintf("  Notes: %s", fact.Notes),
				fmt.Sprintf("  Evidence: Pages [%s], Quote: %q", formatPages(fact.Evidence.PageNumbers), fact.Evidence.Quote),
			}
			items = append(items, fmt.Sprintf("Inspection Fact #%d:\n%s", i+1, strings.Join(lines, "\n")))
		}
		inspectionText = strings.Join(items, "\n\n")
	}

	thermalText := "NONE"
	if len(area.ThermalFacts) > 0 {
		items := make([]string, 0, len(area.ThermalFacts))
		for i, fact := range area.ThermalFacts {
			var temps []string
			for _, t := range fact.TemperatureReadings {
				if model.IsAvailable(t.Label) || model.IsAvailable(t.Value) {
					temps = append(temps, fmt.Sprintf("%s: %s", t.Label, t.Value))
				}
			}
			tempText := model.NotAvailable
			if len(temps) > 0 {
				tempText = strings.Join(temps, ", ")
			}
			lines := []string{
				fmt.Sprintf("  Thermal Anomaly: %s", fact.ThermalAnomaly),
				fmt.Sprintf("  Temperature Readings: %s", tempText),
				fmt.Sprintf("  Suspected Issue: %s", fact.SuspectedIssue),
				fmt.Sprintf("  Notes: %s", fact.Notes),
				fmt.Sprintf("  Evidence: Pages [%s], Quote: %q", formatPages(fact.Evidence.PageNumbers), fact.Evidence.Quote),
			}
			items = append(items, fmt.Sprintf("Thermal Fact #%d:\n%s", i+1, strings.Join(lines, "\n")))
		}
		thermalText = strings.Join(items, "\n\n")
	}

	conflictText := "NONE"
	if len(area.Conflicts) > 0 {
		items := make([]string, 0, len(area.Conflicts))
		for i, conflict := range area.Conflicts {
			lines := []string{
				fmt.Sprintf("  Type: %s", conflict.Type),
				fmt.Sprintf("  Inspection Statement: %s", conflict.InspectionStatement),
				fmt.Sprintf("  Thermal Statement: %s", conflict.ThermalStatement),
			}
			items = append(items, fmt.Sprintf("Conflict #%d:\n%s", i+1, strings.Join(lines, "\n")))
		}
		conflictText = strings.Join(items, "\n\n")
	}

	var b strings.Builder
	b.WriteString("You are an analytical reasoning assistant for building inspection reports. ")
	b.WriteString("Your task is to analyze the provided structured data for a specific area and produce a JSON response ")
	b.WriteString("with root cause inference, severity assessment, and missing information identification.\n\n")
	b.WriteString("CRITICAL CONSTRAINTS:\n")
	b.WriteString("1. You may ONLY reference facts explicitly provided in the data below\n")
	b.WriteString("2. If evidence is insufficient to make a determination, you MUST use \"Not Available\" or \"insufficient_evidence\"\n")
	b.WriteString("3. You MUST cite specific evidence (page numbers, quotes) for all inferences\n")
	b.WriteString("4. You MUST NOT invent, assume, or hallucinate any information\n")
	b.WriteString("5. If information conflicts, acknowledge the conflict and explain both sides\n\n")
	fmt.Fprintf(&b, "AREA: %s\n\n", area.Area)
	fmt.Fprintf(&b, "INSPECTION FACTS:\n%s\n\n", inspectionText)
	fmt.Fprintf(&b, "THERMAL FACTS:\n%s\n\n", thermalText)
	fmt.Fprintf(&b, "CONFLICTS DETECTED:\n%s\n\n", conflictText)
	b.WriteString("YOUR TASK:\nAnalyze the above data and respond with a single JSON object matching this schema exactly:\n\n")
	b.WriteString(SchemaJSON(AreaAnalysisSchema))
	b.WriteString("\n\nRespond with ONLY valid JSON, no other text.")
	return b.String()
}

// parseAreaAnalysis leniently decodes a reasoning response. Missing fields
// fall back to sentinels; an unparseable response yields an all-sentinel
// analysis that records the parse failure in the reasoning field.
func parseAreaAnalysis(raw, areaName string) model.AreaAnalysis {
	out := model.AreaAnalysis{
		Area:               areaName,
		ConflictSummary:    model.NotAvailable,
		RootCause:          model.NewRootCauseInference(),
		Severity:           model.NewSeverityAssessment(),
		MissingInformation: []model.MissingInformation{},
		InspectionSummary:  model.NotAvailable,
		ThermalSummary:     model.NotAvailable,
	}

	data := []byte(stripJSONFences(raw))
	if err := json.Unmarshal(data, &out); err != nil {
		fallback := model.NewRootCauseInference()
		fallback.Reasoning = fmt.Sprintf("Failed to parse model response: %v", err)
		return model.AreaAnalysis{
			Area:               areaName,
			ConflictSummary:    model.NotAvailable,
			RootCause:          fallback,
			Severity:           model.NewSeverityAssessment(),
			MissingInformation: []model.MissingInformation{},
			InspectionSummary:  model.NotAvailable,
			ThermalSummary:     model.NotAvailable,
		}
	}

	out.Area = areaName
	out.ConflictSummary = orNotAvailable(out.ConflictSummary)
	out.InspectionSummary = orNotAvailable(out.InspectionSummary)
	out.ThermalSummary = orNotAvailable(out.ThermalSummary)
	out.RootCause.ProbableCause = orNotAvailable(out.RootCause.ProbableCause)
	out.RootCause.Reasoning = orNotAvailable(out.RootCause.Reasoning)
	if out.RootCause.Confidence == "" {
		out.RootCause.Confidence = model.ConfidenceInsufficient
	}
	if out.RootCause.SupportingEvidence == nil {
		out.RootCause.SupportingEvidence = []string{}
	}
	if out.RootCause.EvidenceGaps == nil {
		out.RootCause.EvidenceGaps = []string{}
	}
	if out.Severity.SeverityLevel == "" {
		out.Severity.SeverityLevel = model.SeverityNotAvailable
	}
	out.Severity.Reasoning = orNotAvailable(out.Severity.Reasoning)
	if out.Severity.RiskFactors == nil {
		out.Severity.RiskFactors = []string{}
	}
	if out.Severity.SupportingEvidence == nil {
		out.Severity.SupportingEvidence = []string{}
	}
	if out.MissingInformation == nil {
		out.MissingInformation = []model.MissingInformation{}
	}
	return out
}

func orNotAvailable(s string) string {
	if strings.TrimSpace(s) == "" {
		return model.NotAvailable
	}
	return s
}

type areaJob struct {
	analyzer *Analyzer
	index    int
	area     model.MergedArea
}

type areaResult struct {
	index    int
	analysis model.AreaAnalysis
	err      error
}

func (r *areaResult) GetError() error { return r.err }

func (j *areaJob) Execute(ctx context.Context) worker.Result {
	analysis := j.analyzer.AnalyzeArea(ctx, j.area)
	return &areaResult{index: j.index, analysis: analysis}
}

// AnalyzeArea reasons over one merged area. Call failures degrade to an
// all-sentinel analysis instead of failing the whole run; the conflict flag
// and summary always come from the merged data, not the model.
func (a *Analyzer) AnalyzeArea(ctx context.Context, area model.MergedArea) model.AreaAnalysis {
	a.logf("  analyzing area: %s", area.Area)

	prompt := BuildReasoningPrompt(area)
	mdl := a.reasoningModel()

	var raw string
	cacheKey := cache.CacheKey(mdl, reasoningSystemPrompt, prompt)
	if a.cache != nil {
		if data, found := a.cache.Get(cacheKey); found {
			raw = string(data)
		}
	}

	if raw == "" {
		resp, err := a.client.CompleteJSON(ctx, CompletionRequest{
			System:      reasoningSystemPrompt,
			Messages:    []string{prompt},
			Model:       mdl,
			MaxTokens:   2000,
			Temperature: reasoningTemperature,
		})
		if err != nil {
			a.logf("  reasoning call failed for %s: %v", area.Area, err)
			resp = "{}"
		} else if a.cache != nil {
			_ = a.cache.Set(cacheKey, []byte(resp), 0)
		}
		raw = resp
	}

	analysis := parseAreaAnalysis(raw, area.Area)

	analysis.HasConflict = area.ConflictDetected
	if area.ConflictDetected && len(area.Conflicts) > 0 {
		summaries := make([]string, 0, len(area.Conflicts))
		for _, c := range area.Conflicts {
			summaries = append(summaries, fmt.Sprintf("%s: %s vs %s", c.Type, c.InspectionStatement, c.ThermalStatement))
		}
		analysis.ConflictSummary = strings.Join(summaries, "; ")
	}

	return analysis
}

// Analyze reasons over every merged area concurrently and assembles the
// reasoning document. Area order follows the merged document.
func (a *Analyzer) Analyze(ctx context.Context, merged *model.MergedAreaDoc) *model.ReasoningDoc {
	analyses := make([]model.AreaAnalysis, len(merged.MergedAreas))

	pool := worker.NewPool(a.workers)
	pool.Start()
	for i, area := range merged.MergedAreas {
		pool.Submit(&areaJob{analyzer: a, index: i, area: area})
	}
	for _, res := range pool.Wait() {
		r := res.(*areaResult)
		analyses[r.index] = r.analysis
	}

	return &model.ReasoningDoc{
		Areas:                     analyses,
		OverallMissingInformation: crossCuttingGaps(analyses),
		AnalysisMetadata: map[string]string{
			"run_id":         uuid.NewString(),
			"timestamp":      time.Now().Format(time.RFC3339),
			"model":          a.reasoningModel(),
			"areas_analyzed": strconv.Itoa(len(analyses)),
		},
	}
}

// crossCuttingGaps surfaces missing-information categories reported for two
// or more areas.
func crossCuttingGaps(analyses []model.AreaAnalysis) []string {
	counts := make(map[string]int)
	for _, analysis := range analyses {
		for _, missing := range analysis.MissingInformation {
			counts[missing.Category]++
		}
	}

	categories := make([]string, 0, len(counts))
	for category, n := range counts {
		if n >= 2 {
			categories = append(categories, category)
		}
	}
	sort.Strings(categories)

	overall := make([]string, 0, len(categories))
	for _, category := range categories {
		overall = append(overall, fmt.Sprintf("%s: affects %d areas", category, counts[category]))
	}
	return overall
}

// Run loads merged area data, analyzes every area, and writes the reasoning
// document. Returns the output file path.
func (a *Analyzer) Run(ctx context.Context, mergedPath, outDir string) (string, error) {
	data, err := os.ReadFile(mergedPath)
	if err != nil {
		return "", fmt.Errorf("read merged data: %w", err)
	}

	var merged model.MergedAreaDoc
	if err := json.Unmarshal(data, &merged); err != nil {
		return "", fmt.Errorf("parse merged data: %w", err)
	}

	a.logf("loaded %d areas to analyze", len(merged.MergedAreas))
	doc := a.Analyze(ctx, &merged)
	doc.AnalysisMetadata["input_file"] = mergedPath

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	outPath := filepath.Join(outDir, ReasoningFileName)
	if err := writeJSON(outPath, doc); err != nil {
		return "", err
	}
	a.logf("wrote %s (%d areas)", outPath, len(doc.Areas))
	return outPath, nil
}
