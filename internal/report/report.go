package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/propscan/ddrgen/internal/model"
)

// Output file names, one per format
const (
	MarkdownFileName = "DDR_Report.md"
	TextFileName     = "DDR_Report.txt"
	JSONFileName     = "DDR_Report.json"
)

// Save writes the report in the requested formats ("markdown"/"md",
// "text"/"txt", "json") and returns format -> path for what was written.
func Save(r *model.DDRReport, outDir string, formats []string, opts MarkdownOptions) (map[string]string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	want := make(map[string]bool)
	for _, f := range formats {
		switch f {
		case "markdown", "md":
			want["markdown"] = true
		case "text", "txt":
			want["text"] = true
		case "json":
			want["json"] = true
		default:
			return nil, fmt.Errorf("unknown report format %q (expected markdown, text, or json)", f)
		}
	}
	if len(want) == 0 {
		want["markdown"] = true
	}

	saved := make(map[string]string)

	if want["markdown"] {
		path := filepath.Join(outDir, MarkdownFileName)
		if err := os.WriteFile(path, []byte(FormatMarkdown(r, opts)), 0644); err != nil {
			return nil, fmt.Errorf("write markdown report: %w", err)
		}
		saved["markdown"] = path
	}
	if want["text"] {
		path := filepath.Join(outDir, TextFileName)
		if err := os.WriteFile(path, []byte(FormatText(r)), 0644); err != nil {
			return nil, fmt.Errorf("write text report: %w", err)
		}
		saved["text"] = path
	}
	if want["json"] {
		path := filepath.Join(outDir, JSONFileName)
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal report: %w", err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("write json report: %w", err)
		}
		saved["json"] = path
	}

	return saved, nil
}

// Run loads an analytical reasoning document, builds the DDR, and saves it
// in the requested formats.
func Run(analysisPath, outDir, propertyName string, formats []string, opts MarkdownOptions) (map[string]string, error) {
	data, err := os.ReadFile(analysisPath)
	if err != nil {
		return nil, fmt.Errorf("read analysis: %w", err)
	}

	var doc model.ReasoningDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse analysis: %w", err)
	}

	ddr := NewBuilder(propertyName).Build(&doc)
	return Save(ddr, outDir, formats, opts)
}
