package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/propscan/ddrgen/internal/cache"
	"github.com/propscan/ddrgen/internal/model"
	"github.com/propscan/ddrgen/internal/preprocess"
)

const (
	// InspectionFactsFileName is the Stage 2 output for the inspection report
	InspectionFactsFileName = "inspection_facts.json"
	// ThermalFactsFileName is the Stage 2 output for the thermal report
	ThermalFactsFileName = "thermal_facts.json"

	// boilerplateMinFraction is the share of pages a line must repeat on
	// before it is treated as header/footer boilerplate
	boilerplateMinFraction = 0.6

	repairMessage = "Your previous output did not validate against the required JSON schema. " +
		"Error: %s\nRespond again with a single JSON object that conforms exactly to the schema. " +
		"Do not include any text outside the JSON object."
)

// Extractor turns Stage 1 page extractions into structured fact documents
// by prompting the extraction model chunk by chunk and validating its output
// against a JSON schema.
type Extractor struct {
	client  Client
	cfg     model.LLMConfig
	cache   cache.Cache
	verbose bool
}

// NewExtractor creates a Stage 2 extractor. cache may be nil to disable
// response caching.
func NewExtractor(client Client, cfg model.LLMConfig, c cache.Cache, verbose bool) *Extractor {
	return &Extractor{
		client:  client,
		cfg:     cfg,
		cache:   c,
		verbose: verbose,
	}
}

func (e *Extractor) logf(format string, args ...any) {
	if e.verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

// preprocessPages combines raw and OCR text per page, strips repeated
// header/footer lines across pages, and returns cleaned pages ready for
// chunking.
func preprocessPages(doc *model.DocumentExtraction) []preprocess.Page {
	texts := make([]string, 0, len(doc.Pages))
	numbers := make([]int, 0, len(doc.Pages))
	for _, p := range doc.Pages {
		texts = append(texts, preprocess.CombineRawAndOCR(p.RawText, p.OCRText))
		numbers = append(numbers, p.PageNumber)
	}

	texts = preprocess.RemoveCommonBoilerplate(texts, boilerplateMinFraction)

	pages := make([]preprocess.Page, 0, len(texts))
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		pages = append(pages, preprocess.Page{Number: numbers[i], Text: text})
	}
	return pages
}

// buildChunkPrompt renders chunks with page provenance headers so the model
// can cite page numbers in evidence.
func buildChunkPrompt(chunks []preprocess.TextChunk) string {
	var b strings.Builder
	for i, chunk := range chunks {
		pages := make([]string, len(chunk.PageNumbers))
		for j, n := range chunk.PageNumbers {
			pages[j] = fmt.Sprintf("%d", n)
		}
		fmt.Fprintf(&b, "[CHUNK %d | pages=%s]\n%s\n\n", i+1, strings.Join(pages, ","), chunk.Text)
	}
	return strings.TrimRight(b.String(), "\n")
}

func extractionSystemPrompt(docLabel, sourceValue string, schema map[string]any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a careful information extraction system for property %s documents.\n\n", docLabel)
	b.WriteString("Extract structured facts from the document text below. Rules:\n")
	b.WriteString("- Extract only what the text states. Never infer, diagnose, or speculate.\n")
	b.WriteString("- Group facts by the physical area they describe (e.g. Living Room, Master Bedroom Ceiling).\n")
	b.WriteString("- Use the literal string \"Not Available\" for any text field the document does not provide.\n")
	b.WriteString("- Use \"not_mentioned\" for yes/no fields the document does not address.\n")
	b.WriteString("- Every fact must carry evidence: the page numbers (from the chunk headers) and a short verbatim quote.\n")
	b.WriteString("- List anything unclear or missing in missing_or_unclear_information.\n")
	fmt.Fprintf(&b, "- The source field must be %q.\n\n", sourceValue)
	b.WriteString("Respond with a single JSON object matching this schema exactly:\n\n")
	b.WriteString(SchemaJSON(schema))
	b.WriteString("\n\nRespond with JSON only. No prose, no markdown fences.")
	return b.String()
}

// completeValidated runs the completion with schema-validation retries.
// On validation failure the invalid output and a repair instruction are
// appended as further user turns, up to cfg.MaxRetries attempts total.
func (e *Extractor) completeValidated(ctx context.Context, system, userPrompt string, schema map[string]any) ([]byte, error) {
	cacheKey := cache.CacheKey(e.cfg.Model, system, userPrompt)
	if e.cache != nil {
		if data, found := e.cache.Get(cacheKey); found {
			if err := ValidateAgainstSchema(schema, data); err == nil {
				e.logf("  cache hit for %s", e.cfg.Model)
				return data, nil
			}
			_ = e.cache.Delete(cacheKey)
		}
	}

	attempts := e.cfg.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	messages := []string{userPrompt}
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		raw, err := e.client.CompleteJSON(ctx, CompletionRequest{
			System:      system,
			Messages:    messages,
			Model:       e.cfg.Model,
			Temperature: 0,
		})
		if err != nil {
			return nil, fmt.Errorf("extraction call (attempt %d): %w", attempt, err)
		}

		data := []byte(stripJSONFences(raw))
		if err := ValidateAgainstSchema(schema, data); err != nil {
			lastErr = err
			e.logf("  attempt %d/%d failed validation: %v", attempt, attempts, err)
			messages = append(messages, raw, fmt.Sprintf(repairMessage, err))
			continue
		}

		if e.cache != nil {
			_ = e.cache.Set(cacheKey, data, 0)
		}
		return data, nil
	}

	return nil, fmt.Errorf("extraction output failed schema validation after %d attempts: %w", attempts, lastErr)
}

// stripJSONFences removes markdown code fences some models wrap around JSON
// despite instructions.
func stripJSONFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

// ExtractInspectionFacts runs extraction over the inspection document.
func (e *Extractor) ExtractInspectionFacts(ctx context.Context, doc *model.DocumentExtraction) (*model.InspectionFactsDoc, error) {
	pages := preprocessPages(doc)
	chunks := preprocess.ChunkPages(doc.Source, pages, preprocess.DefaultMaxChunkChars)
	e.logf("inspection report: %d pages, %d chunks", len(pages), len(chunks))

	system := extractionSystemPrompt("inspection", model.SourceInspection, InspectionFactsSchema)
	data, err := e.completeValidated(ctx, system, buildChunkPrompt(chunks), InspectionFactsSchema)
	if err != nil {
		return nil, fmt.Errorf("inspection extraction: %w", err)
	}

	var out model.InspectionFactsDoc
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode inspection facts: %w", err)
	}
	out.Source = model.SourceInspection
	return &out, nil
}

// ExtractThermalFacts runs extraction over the thermal document.
func (e *Extractor) ExtractThermalFacts(ctx context.Context, doc *model.DocumentExtraction) (*model.ThermalFactsDoc, error) {
	pages := preprocessPages(doc)
	chunks := preprocess.ChunkPages(doc.Source, pages, preprocess.DefaultMaxChunkChars)
	e.logf("thermal report: %d pages, %d chunks", len(pages), len(chunks))

	system := extractionSystemPrompt("thermal imaging", model.SourceThermal, ThermalFactsSchema)
	data, err := e.completeValidated(ctx, system, buildChunkPrompt(chunks), ThermalFactsSchema)
	if err != nil {
		return nil, fmt.Errorf("thermal extraction: %w", err)
	}

	var out model.ThermalFactsDoc
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode thermal facts: %w", err)
	}
	out.Source = model.SourceThermal
	return &out, nil
}

// Run reads the Stage 1 input layer and writes the fact documents for
// whichever source documents are present. Returned paths are empty for
// absent documents.
func (e *Extractor) Run(ctx context.Context, inputLayerPath, outDir string) (string, string, error) {
	data, err := os.ReadFile(inputLayerPath)
	if err != nil {
		return "", "", fmt.Errorf("read input layer: %w", err)
	}

	var input model.InputLayerDoc
	if err := json.Unmarshal(data, &input); err != nil {
		return "", "", fmt.Errorf("parse input layer: %w", err)
	}
	if input.Inspection == nil && input.Thermal == nil {
		return "", "", fmt.Errorf("input layer %s contains no documents", inputLayerPath)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", "", fmt.Errorf("create output dir: %w", err)
	}

	var inspPath, thermPath string
	if input.Inspection != nil {
		facts, err := e.ExtractInspectionFacts(ctx, input.Inspection)
		if err != nil {
			return "", "", err
		}
		inspPath = filepath.Join(outDir, InspectionFactsFileName)
		if err := writeJSON(inspPath, facts); err != nil {
			return "", "", err
		}
		e.logf("wrote %s (%d facts)", inspPath, len(facts.Facts))
	}
	if input.Thermal != nil {
		facts, err := e.ExtractThermalFacts(ctx, input.Thermal)
		if err != nil {
			return "", "", err
		}
		thermPath = filepath.Join(outDir, ThermalFactsFileName)
		if err := writeJSON(thermPath, facts); err != nil {
			return "", "", err
		}
		e.logf("wrote %s (%d facts)", thermPath, len(facts.Facts))
	}

	return inspPath, thermPath, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
