package preprocess

import (
	"strings"
	"testing"
)

func TestNormalizeUnits(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"degrees tight", "Hotspot 15.2°C on wall", "Hotspot 15.2 °C on wall"},
		{"deg C word form", "reading of 18 degC ambient", "reading of 18 °C ambient"},
		{"percent", "humidity 65% indoors", "humidity 65 % indoors"},
		{"millimeters", "crack width 3mm at base", "crack width 3 mm at base"},
		{"no conversion", "15.2 °C stays 15.2 °C", "15.2 °C stays 15.2 °C"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeUnits(tt.in); got != tt.want {
				t.Errorf("NormalizeUnits(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanText(t *testing.T) {
	in := "Line one \x07with bell  \n\n\n\nLine two\t\n"
	got := CleanText(in)
	if strings.Contains(got, "\x07") {
		t.Error("Expected control characters stripped")
	}
	if strings.Contains(got, "\n\n\n") {
		t.Error("Expected blank-line runs collapsed")
	}
	if strings.HasSuffix(got, "\n") {
		t.Error("Expected trailing whitespace trimmed")
	}
}

func TestRemoveCommonBoilerplate(t *testing.T) {
	pages := []string{
		"ACME Inspections Ltd\nKitchen findings\nACME Inspections Ltd footer",
		"ACME Inspections Ltd\nBedroom findings\nACME Inspections Ltd footer",
		"ACME Inspections Ltd\nGarage findings\nACME Inspections Ltd footer",
	}

	cleaned := RemoveCommonBoilerplate(pages, 0.6)
	if len(cleaned) != 3 {
		t.Fatalf("Expected 3 pages back, got %d", len(cleaned))
	}
	for i, page := range cleaned {
		if strings.Contains(page, "ACME Inspections Ltd") {
			t.Errorf("Page %d still contains boilerplate: %q", i, page)
		}
	}
	if !strings.Contains(cleaned[0], "Kitchen findings") {
		t.Errorf("Page content was removed: %q", cleaned[0])
	}
}

func TestRemoveCommonBoilerplate_KeepsUncommonLines(t *testing.T) {
	pages := []string{
		"Header\nKitchen findings",
		"Bedroom findings",
		"Garage findings",
	}

	cleaned := RemoveCommonBoilerplate(pages, 0.6)
	if !strings.Contains(cleaned[0], "Header") {
		t.Error("Expected single-page header kept (appears on one page only)")
	}
}

func TestRemovePageNumbers(t *testing.T) {
	in := "Findings summary\nPage 3 of 12\n4 / 12\nDamp patch noted"
	got := RemovePageNumbers(in)
	if strings.Contains(got, "Page 3") || strings.Contains(got, "4 / 12") {
		t.Errorf("Expected page-number lines removed, got %q", got)
	}
	if !strings.Contains(got, "Findings summary") || !strings.Contains(got, "Damp patch noted") {
		t.Errorf("Expected content lines kept, got %q", got)
	}
}

func TestDedupeLines(t *testing.T) {
	in := "Damp patch noted\nDamp patch noted\nSecond finding\n  Damp patch noted  "
	got := DedupeLines(in)
	if strings.Count(got, "Damp patch noted") != 1 {
		t.Errorf("Expected repeated lines collapsed, got %q", got)
	}
	if !strings.Contains(got, "Second finding") {
		t.Errorf("Expected distinct lines kept, got %q", got)
	}
}

func TestCombineRawAndOCR(t *testing.T) {
	raw := "Kitchen section\nDamp patch at 15.2°C"
	ocr := "Damp patch at 15.2°C\nOCR-only line\nPage 2 of 9"

	got := CombineRawAndOCR(raw, ocr)
	if strings.Count(got, "Damp patch") != 1 {
		t.Errorf("Expected overlapping lines deduped, got %q", got)
	}
	if !strings.Contains(got, "OCR-only line") {
		t.Errorf("Expected OCR-only content kept, got %q", got)
	}
	if strings.Contains(got, "Page 2 of 9") {
		t.Errorf("Expected page footer removed, got %q", got)
	}
	if !strings.Contains(got, "15.2 °C") {
		t.Errorf("Expected unit spacing normalized, got %q", got)
	}
}

func TestCombineRawAndOCR_EmptyRaw(t *testing.T) {
	got := CombineRawAndOCR("", "OCR text only")
	if got != "OCR text only" {
		t.Errorf("Expected OCR text used when raw is empty, got %q", got)
	}
}
