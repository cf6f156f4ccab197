package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/propscan/ddrgen/internal/model"
)

func sampleReport() *model.DDRReport {
	doc := &model.ReasoningDoc{
		Areas: []model.AreaAnalysis{
			func() model.AreaAnalysis {
				a := areaWithSeverity("Living Room", model.SeverityHigh, "Hidden moisture behind wall")
				a.HasConflict = true
				a.ConflictSummary = "inspection says dry, thermal shows anomaly"
				return a
			}(),
			areaWithSeverity("Kitchen", model.SeverityLow, model.NotAvailable),
		},
	}
	return fixedBuilder("Test Property").Build(doc)
}

func TestFormatMarkdown_SectionOrder(t *testing.T) {
	md := FormatMarkdown(sampleReport(), MarkdownOptions{})

	sections := []string{
		"## 1. Property Issue Summary",
		"## 2. Area-wise Observations",
		"## 3. Probable Root Cause",
		"## 4. Severity Assessment (with Reasoning)",
		"## 5. Recommended Actions",
		"## 6. Additional Notes",
		"## 7. Missing or Unclear Information",
	}

	last := -1
	for _, section := range sections {
		idx := strings.Index(md, section)
		if idx < 0 {
			t.Fatalf("missing section %q", section)
		}
		if idx < last {
			t.Errorf("section %q out of order", section)
		}
		last = idx
	}
}

func TestFormatMarkdown_ConflictMarker(t *testing.T) {
	md := FormatMarkdown(sampleReport(), MarkdownOptions{})

	if !strings.Contains(md, "**⚠️ CONFLICT DETECTED:** inspection says dry, thermal shows anomaly") {
		t.Errorf("missing conflict marker:\n%s", md)
	}
	// Only the conflicted area gets the marker
	if strings.Count(md, "CONFLICT DETECTED") != 1 {
		t.Errorf("conflict marker count = %d, want 1", strings.Count(md, "CONFLICT DETECTED"))
	}
}

func TestFormatMarkdown_Footer(t *testing.T) {
	r := sampleReport()

	without := FormatMarkdown(r, MarkdownOptions{})
	if strings.Contains(without, "Generated by ddrgen") {
		t.Errorf("footer present without option")
	}

	with := FormatMarkdown(r, MarkdownOptions{IncludeFooter: true})
	if !strings.Contains(with, "*Generated by ddrgen on 2026-03-14*") {
		t.Errorf("footer missing")
	}
}

func TestFormatText(t *testing.T) {
	text := FormatText(sampleReport())

	for _, want := range []string{
		"1. PROPERTY ISSUE SUMMARY",
		"2. AREA-WISE OBSERVATIONS",
		"*** CONFLICT DETECTED: inspection says dry, thermal shows anomaly",
		"5. RECOMMENDED ACTIONS",
		"END OF REPORT",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("text report missing %q", want)
		}
	}

	lines := strings.Split(text, "\n")
	if len(lines[0]) != 80 || strings.Trim(lines[0], "=") != "" {
		t.Errorf("header rule = %q", lines[0])
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()

	saved, err := Save(sampleReport(), dir, []string{"md", "txt", "json"}, MarkdownOptions{})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if len(saved) != 3 {
		t.Fatalf("saved = %v", saved)
	}

	for format, path := range saved {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("%s output missing: %v", format, err)
		}
	}

	var round model.DDRReport
	data, err := os.ReadFile(saved["json"])
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(data, &round); err != nil {
		t.Fatalf("json report does not round-trip: %v", err)
	}
	if round.PropertyName != "Test Property" {
		t.Errorf("property name = %q", round.PropertyName)
	}
}

func TestSave_UnknownFormat(t *testing.T) {
	if _, err := Save(sampleReport(), t.TempDir(), []string{"pdf"}, MarkdownOptions{}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestSave_DefaultsToMarkdown(t *testing.T) {
	dir := t.TempDir()
	saved, err := Save(sampleReport(), dir, nil, MarkdownOptions{})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if len(saved) != 1 || saved["markdown"] == "" {
		t.Errorf("saved = %v", saved)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()

	doc := model.ReasoningDoc{
		Areas: []model.AreaAnalysis{areaWithSeverity("Basement", model.SeverityCritical, "Foundation seepage")},
	}
	analysisPath := filepath.Join(dir, "analytical_reasoning.json")
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(analysisPath, data, 0644); err != nil {
		t.Fatal(err)
	}

	saved, err := Run(analysisPath, dir, "My Property", []string{"markdown"}, MarkdownOptions{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	content, err := os.ReadFile(saved["markdown"])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "# My Property") {
		t.Errorf("report missing property name")
	}
	if !strings.Contains(string(content), "Basement: Foundation seepage") {
		t.Errorf("report missing key finding")
	}
}
