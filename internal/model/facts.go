package model

// NotAvailable is the wire sentinel for an absent free-text field.
// Upstream extraction emits it instead of omitting fields, so it must
// round-trip through JSON exactly.
const NotAvailable = "Not Available"

// IsAvailable reports whether a free-text field carries real content
// (non-empty and not the "Not Available" sentinel).
func IsAvailable(s string) bool {
	return s != "" && s != NotAvailable
}

// TriState is the enumerated yes/no/not_mentioned signal used for
// moisture_signs and thermal_anomaly fields.
type TriState string

const (
	TriYes          TriState = "yes"
	TriNo           TriState = "no"
	TriNotMentioned TriState = "not_mentioned"
)

// Mentioned reports whether the signal was explicitly stated in the source.
func (t TriState) Mentioned() bool {
	return t == TriYes || t == TriNo
}

// Evidence backs a fact or conflict with page numbers and an exact quote
type Evidence struct {
	PageNumbers []int  `json:"page_numbers"` // 1-based pages the quote came from
	Quote       string `json:"quote"`        // Exact quote, or "Not Available"
}

// NewEvidence returns an empty evidence record with the quote sentinel set
func NewEvidence() Evidence {
	return Evidence{PageNumbers: []int{}, Quote: NotAvailable}
}

// Measurement is a named reading taken during visual inspection (kept as
// strings, values are never converted)
type Measurement struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// TemperatureReading is a labeled thermal reading (e.g., Hotspot: 15.2 °C).
// Values stay strings; no unit conversion happens anywhere in the pipeline.
type TemperatureReading struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// InspectionFact is one evidence-backed observation from the visual
// inspection report, tied to a single area
type InspectionFact struct {
	Area          string        `json:"area"`
	Observation   string        `json:"observation"`
	VisibleIssue  string        `json:"visible_issue"`
	MoistureSigns TriState      `json:"moisture_signs"`
	Measurements  []Measurement `json:"measurements"`
	Notes         string        `json:"notes"`
	Evidence      Evidence      `json:"evidence"`
}

// ThermalFact is one evidence-backed observation from the thermal-imaging
// report, tied to a single area
type ThermalFact struct {
	Area                string               `json:"area"`
	ThermalAnomaly      TriState             `json:"thermal_anomaly"`
	TemperatureReadings []TemperatureReading `json:"temperature_readings"`
	SuspectedIssue      string               `json:"suspected_issue"`
	Notes               string               `json:"notes"`
	Evidence            Evidence             `json:"evidence"`
}

// InspectionFactsDoc is the Stage 2 extraction output for the inspection report
type InspectionFactsDoc struct {
	Source                      string           `json:"source"` // always "inspection_report"
	Facts                       []InspectionFact `json:"facts"`
	MissingOrUnclearInformation []string         `json:"missing_or_unclear_information"`
}

// ThermalFactsDoc is the Stage 2 extraction output for the thermal report
type ThermalFactsDoc struct {
	Source                      string        `json:"source"` // always "thermal_report"
	Facts                       []ThermalFact `json:"facts"`
	MissingOrUnclearInformation []string      `json:"missing_or_unclear_information"`
}

// Source names used in the facts documents and page extractions
const (
	SourceInspection = "inspection_report"
	SourceThermal    = "thermal_report"
)
