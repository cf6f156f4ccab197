package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/propscan/ddrgen/internal/model"
)

func sampleMergedArea() model.MergedArea {
	return model.MergedArea{
		Area: "Living Room",
		InspectionFacts: []model.InspectionFact{
			{
				Area:          "Living Room",
				Observation:   "No dampness observed on walls",
				VisibleIssue:  model.NotAvailable,
				MoistureSigns: model.TriNo,
				Measurements:  []model.Measurement{},
				Notes:         model.NotAvailable,
				Evidence:      model.Evidence{PageNumbers: []int{2}, Quote: "no dampness observed"},
			},
		},
		ThermalFacts: []model.ThermalFact{
			{
				Area:                "Living Room",
				ThermalAnomaly:      model.TriYes,
				TemperatureReadings: []model.TemperatureReading{{Label: "hotspot", Value: "15.2°C"}},
				SuspectedIssue:      "moisture intrusion",
				Notes:               model.NotAvailable,
				Evidence:            model.Evidence{PageNumbers: []int{3}, Quote: "cold spot consistent with moisture"},
			},
		},
		Conflicts: []model.Conflict{
			{
				Type:                "inspection_no_moisture_vs_thermal_moisture_anomaly",
				InspectionStatement: "No dampness observed on walls | moisture_signs=no",
				ThermalStatement:    "moisture intrusion | thermal_anomaly=yes",
				ConflictDetected:    true,
			},
		},
		ConflictDetected: true,
	}
}

func validAnalysisJSON() string {
	return `{
		"root_cause": {
			"probable_cause": "Possible moisture behind wall surface",
			"reasoning": "Thermal imaging shows a cold spot (page 3) while visual inspection found no surface dampness (page 2)",
			"supporting_evidence": ["page 3: cold spot consistent with moisture"],
			"confidence": "medium",
			"evidence_gaps": ["moisture meter readings"]
		},
		"severity": {
			"severity_level": "high",
			"reasoning": "Hidden moisture risks structural damage",
			"risk_factors": ["concealed moisture"],
			"supporting_evidence": ["page 3"]
		},
		"missing_information": [
			{"category": "moisture measurements", "description": "no meter readings", "impact": "cannot confirm moisture levels"}
		],
		"inspection_summary": "No visible dampness",
		"thermal_summary": "Cold spot at skirting level",
		"conflict_summary": "model-written summary"
	}`
}

func TestBuildReasoningPrompt(t *testing.T) {
	prompt := BuildReasoningPrompt(sampleMergedArea())

	for _, want := range []string{
		"AREA: Living Room",
		"Inspection Fact #1:",
		"Thermal Fact #1:",
		"Conflict #1:",
		"Moisture Signs: no",
		"Thermal Anomaly: yes",
		"Temperature Readings: hotspot: 15.2°C",
		"CRITICAL CONSTRAINTS:",
		"Pages [2]",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildReasoningPrompt_EmptySections(t *testing.T) {
	prompt := BuildReasoningPrompt(model.MergedArea{Area: "Attic"})

	if !strings.Contains(prompt, "INSPECTION FACTS:\nNONE") {
		t.Errorf("expected NONE for absent inspection facts")
	}
	if !strings.Contains(prompt, "THERMAL FACTS:\nNONE") {
		t.Errorf("expected NONE for absent thermal facts")
	}
	if !strings.Contains(prompt, "CONFLICTS DETECTED:\nNONE") {
		t.Errorf("expected NONE for absent conflicts")
	}
}

func TestParseAreaAnalysis(t *testing.T) {
	analysis := parseAreaAnalysis(validAnalysisJSON(), "Living Room")

	if analysis.Area != "Living Room" {
		t.Errorf("area = %q", analysis.Area)
	}
	if analysis.RootCause.Confidence != model.ConfidenceMedium {
		t.Errorf("confidence = %q", analysis.RootCause.Confidence)
	}
	if analysis.Severity.SeverityLevel != model.SeverityHigh {
		t.Errorf("severity = %q", analysis.Severity.SeverityLevel)
	}
	if len(analysis.MissingInformation) != 1 {
		t.Errorf("missing info entries = %d", len(analysis.MissingInformation))
	}
}

func TestParseAreaAnalysis_MissingFields(t *testing.T) {
	analysis := parseAreaAnalysis(`{}`, "Attic")

	if analysis.RootCause.ProbableCause != model.NotAvailable {
		t.Errorf("probable cause = %q, want sentinel", analysis.RootCause.ProbableCause)
	}
	if analysis.RootCause.Confidence != model.ConfidenceInsufficient {
		t.Errorf("confidence = %q, want insufficient_evidence", analysis.RootCause.Confidence)
	}
	if analysis.Severity.SeverityLevel != model.SeverityNotAvailable {
		t.Errorf("severity = %q, want not_available", analysis.Severity.SeverityLevel)
	}
	if analysis.InspectionSummary != model.NotAvailable {
		t.Errorf("inspection summary = %q, want sentinel", analysis.InspectionSummary)
	}
	if analysis.MissingInformation == nil {
		t.Errorf("missing information should be empty, not nil")
	}
}

func TestParseAreaAnalysis_InvalidJSON(t *testing.T) {
	analysis := parseAreaAnalysis("not json at all", "Attic")

	if analysis.Area != "Attic" {
		t.Errorf("area = %q", analysis.Area)
	}
	if analysis.RootCause.Confidence != model.ConfidenceInsufficient {
		t.Errorf("confidence = %q", analysis.RootCause.Confidence)
	}
	if !strings.Contains(analysis.RootCause.Reasoning, "Failed to parse") {
		t.Errorf("reasoning should record parse failure: %q", analysis.RootCause.Reasoning)
	}
}

func TestAnalyzeArea_ConflictSummaryFromMergedData(t *testing.T) {
	client := &stubClient{responses: []string{validAnalysisJSON()}}
	a := NewAnalyzer(client, testLLMConfig(), nil, 1, false)

	analysis := a.AnalyzeArea(context.Background(), sampleMergedArea())

	if !analysis.HasConflict {
		t.Errorf("expected conflict flag from merged data")
	}
	// The merged data summary overrides whatever the model wrote
	want := "inspection_no_moisture_vs_thermal_moisture_anomaly: " +
		"No dampness observed on walls | moisture_signs=no vs moisture intrusion | thermal_anomaly=yes"
	if analysis.ConflictSummary != want {
		t.Errorf("conflict summary = %q, want %q", analysis.ConflictSummary, want)
	}
}

func TestAnalyzeArea_CallFailureDegrades(t *testing.T) {
	client := &stubClient{err: fmt.Errorf("connection refused")}
	a := NewAnalyzer(client, testLLMConfig(), nil, 1, false)

	analysis := a.AnalyzeArea(context.Background(), model.MergedArea{Area: "Attic"})

	if analysis.Area != "Attic" {
		t.Errorf("area = %q", analysis.Area)
	}
	if analysis.Severity.SeverityLevel != model.SeverityNotAvailable {
		t.Errorf("severity = %q, want not_available fallback", analysis.Severity.SeverityLevel)
	}
	if analysis.HasConflict {
		t.Errorf("conflict flag should stay false")
	}
}

func TestAnalyze_PreservesAreaOrder(t *testing.T) {
	client := &stubClient{responses: []string{`{}`}}
	a := NewAnalyzer(client, testLLMConfig(), nil, 4, false)

	merged := &model.MergedAreaDoc{
		MergedAreas: []model.MergedArea{
			{Area: "Attic"}, {Area: "Basement"}, {Area: "Kitchen"}, {Area: "Living Room"},
		},
	}

	doc := a.Analyze(context.Background(), merged)

	if len(doc.Areas) != 4 {
		t.Fatalf("expected 4 analyses, got %d", len(doc.Areas))
	}
	for i, want := range []string{"Attic", "Basement", "Kitchen", "Living Room"} {
		if doc.Areas[i].Area != want {
			t.Errorf("areas[%d] = %q, want %q", i, doc.Areas[i].Area, want)
		}
	}

	for _, key := range []string{"run_id", "timestamp", "model", "areas_analyzed"} {
		if doc.AnalysisMetadata[key] == "" {
			t.Errorf("metadata missing %s", key)
		}
	}
	if doc.AnalysisMetadata["areas_analyzed"] != "4" {
		t.Errorf("areas_analyzed = %q", doc.AnalysisMetadata["areas_analyzed"])
	}
}

func TestCrossCuttingGaps(t *testing.T) {
	analyses := []model.AreaAnalysis{
		{MissingInformation: []model.MissingInformation{
			{Category: "moisture measurements"},
			{Category: "structural details"},
		}},
		{MissingInformation: []model.MissingInformation{
			{Category: "moisture measurements"},
		}},
	}

	gaps := crossCuttingGaps(analyses)
	if len(gaps) != 1 {
		t.Fatalf("expected 1 cross-cutting gap, got %d: %v", len(gaps), gaps)
	}
	if gaps[0] != "moisture measurements: affects 2 areas" {
		t.Errorf("gap = %q", gaps[0])
	}
}

func TestAnalyzerRun(t *testing.T) {
	dir := t.TempDir()

	merged := model.MergedAreaDoc{MergedAreas: []model.MergedArea{sampleMergedArea()}}
	mergedPath := filepath.Join(dir, "merged_area_data.json")
	data, err := json.Marshal(merged)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(mergedPath, data, 0644); err != nil {
		t.Fatal(err)
	}

	client := &stubClient{responses: []string{validAnalysisJSON()}}
	a := NewAnalyzer(client, testLLMConfig(), nil, 2, false)

	outPath, err := a.Run(context.Background(), mergedPath, dir)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if filepath.Base(outPath) != ReasoningFileName {
		t.Errorf("output file = %s", outPath)
	}

	var doc model.ReasoningDoc
	readJSONFile(t, outPath, &doc)
	if len(doc.Areas) != 1 || doc.Areas[0].Area != "Living Room" {
		t.Errorf("unexpected reasoning doc: %+v", doc)
	}
	if doc.AnalysisMetadata["input_file"] != mergedPath {
		t.Errorf("metadata input_file = %q", doc.AnalysisMetadata["input_file"])
	}
}
