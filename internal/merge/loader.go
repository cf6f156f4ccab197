package merge

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/propscan/ddrgen/internal/model"
)

// MergedFileName is the fixed output filename written under the output dir.
const MergedFileName = "merged_area_data.json"

// LoadFactsDocs loads the two fact documents. A missing file is not an
// error: the corresponding document comes back nil and the merge pass treats
// it as an empty fact list. Malformed JSON is an error, surfaced to the
// caller untouched.
func LoadFactsDocs(inspectionPath, thermalPath string) (*model.InspectionFactsDoc, *model.ThermalFactsDoc, error) {
	var inspection *model.InspectionFactsDoc
	var thermal *model.ThermalFactsDoc

	if data, err := os.ReadFile(inspectionPath); err == nil {
		doc := &model.InspectionFactsDoc{}
		if err := json.Unmarshal(data, doc); err != nil {
			return nil, nil, fmt.Errorf("parse %s: %w", inspectionPath, err)
		}
		applyInspectionDefaults(doc)
		inspection = doc
	} else if !os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("read %s: %w", inspectionPath, err)
	}

	if data, err := os.ReadFile(thermalPath); err == nil {
		doc := &model.ThermalFactsDoc{}
		if err := json.Unmarshal(data, doc); err != nil {
			return nil, nil, fmt.Errorf("parse %s: %w", thermalPath, err)
		}
		applyThermalDefaults(doc)
		thermal = doc
	} else if !os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("read %s: %w", thermalPath, err)
	}

	return inspection, thermal, nil
}

// applyInspectionDefaults fills absent wire fields with the sentinels the
// schema defines, so partially-populated documents behave like fully
// populated ones.
func applyInspectionDefaults(doc *model.InspectionFactsDoc) {
	if doc.Source == "" {
		doc.Source = model.SourceInspection
	}
	if doc.Facts == nil {
		doc.Facts = []model.InspectionFact{}
	}
	if doc.MissingOrUnclearInformation == nil {
		doc.MissingOrUnclearInformation = []string{}
	}
	for i := range doc.Facts {
		f := &doc.Facts[i]
		f.Area = defaultString(f.Area)
		f.Observation = defaultString(f.Observation)
		f.VisibleIssue = defaultString(f.VisibleIssue)
		f.Notes = defaultString(f.Notes)
		if f.MoistureSigns == "" {
			f.MoistureSigns = model.TriNotMentioned
		}
		if f.Measurements == nil {
			f.Measurements = []model.Measurement{}
		}
		applyEvidenceDefaults(&f.Evidence)
	}
}

func applyThermalDefaults(doc *model.ThermalFactsDoc) {
	if doc.Source == "" {
		doc.Source = model.SourceThermal
	}
	if doc.Facts == nil {
		doc.Facts = []model.ThermalFact{}
	}
	if doc.MissingOrUnclearInformation == nil {
		doc.MissingOrUnclearInformation = []string{}
	}
	for i := range doc.Facts {
		f := &doc.Facts[i]
		f.Area = defaultString(f.Area)
		f.SuspectedIssue = defaultString(f.SuspectedIssue)
		f.Notes = defaultString(f.Notes)
		if f.ThermalAnomaly == "" {
			f.ThermalAnomaly = model.TriNotMentioned
		}
		if f.TemperatureReadings == nil {
			f.TemperatureReadings = []model.TemperatureReading{}
		}
		for j := range f.TemperatureReadings {
			t := &f.TemperatureReadings[j]
			t.Label = defaultString(t.Label)
			t.Value = defaultString(t.Value)
		}
		applyEvidenceDefaults(&f.Evidence)
	}
}

func applyEvidenceDefaults(e *model.Evidence) {
	if e.PageNumbers == nil {
		e.PageNumbers = []int{}
	}
	if e.Quote == "" {
		e.Quote = model.NotAvailable
	}
}

func defaultString(s string) string {
	if s == "" {
		return model.NotAvailable
	}
	return s
}

// Run is the file-level entrypoint: load both documents, merge, and write
// merged_area_data.json under outDir. Returns the output file path.
func Run(inspectionPath, thermalPath, outDir string, similarityThreshold float64) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	inspection, thermal, err := LoadFactsDocs(inspectionPath, thermalPath)
	if err != nil {
		return "", err
	}

	merged := Merge(inspection, thermal, similarityThreshold)

	out := filepath.Join(outDir, MergedFileName)
	data, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal merged dataset: %w", err)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", out, err)
	}
	return out, nil
}
