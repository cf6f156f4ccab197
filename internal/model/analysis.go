package model

// Confidence expresses how well an inference is supported by the evidence
type Confidence string

const (
	ConfidenceHigh         Confidence = "high"
	ConfidenceMedium       Confidence = "medium"
	ConfidenceLow          Confidence = "low"
	ConfidenceInsufficient Confidence = "insufficient_evidence"
)

// Severity is the per-area severity rating assigned during reasoning
type Severity string

const (
	SeverityCritical     Severity = "critical"
	SeverityHigh         Severity = "high"
	SeverityMedium       Severity = "medium"
	SeverityLow          Severity = "low"
	SeverityNotAvailable Severity = "not_available"
)

// RootCauseInference is the inferred probable root cause for an area.
// Every inference must cite evidence or fall back to the sentinel.
type RootCauseInference struct {
	ProbableCause      string     `json:"probable_cause"`
	Reasoning          string     `json:"reasoning"`
	SupportingEvidence []string   `json:"supporting_evidence"` // quotes or page references
	Confidence         Confidence `json:"confidence"`
	EvidenceGaps       []string   `json:"evidence_gaps"` // what would strengthen the inference
}

// NewRootCauseInference returns an all-sentinel inference
func NewRootCauseInference() RootCauseInference {
	return RootCauseInference{
		ProbableCause:      NotAvailable,
		Reasoning:          NotAvailable,
		SupportingEvidence: []string{},
		Confidence:         ConfidenceInsufficient,
		EvidenceGaps:       []string{},
	}
}

// SeverityAssessment is the severity rating plus the reasoning behind it
type SeverityAssessment struct {
	SeverityLevel      Severity `json:"severity_level"`
	Reasoning          string   `json:"reasoning"`
	RiskFactors        []string `json:"risk_factors"`
	SupportingEvidence []string `json:"supporting_evidence"`
}

// NewSeverityAssessment returns an all-sentinel assessment
func NewSeverityAssessment() SeverityAssessment {
	return SeverityAssessment{
		SeverityLevel:      SeverityNotAvailable,
		Reasoning:          NotAvailable,
		RiskFactors:        []string{},
		SupportingEvidence: []string{},
	}
}

// MissingInformation names a gap in the source data and its impact on analysis
type MissingInformation struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
}

// AreaAnalysis is the complete Stage 3 reasoning output for one area
type AreaAnalysis struct {
	Area            string `json:"area"`
	HasConflict     bool   `json:"has_conflict"`
	ConflictSummary string `json:"conflict_summary"`

	RootCause RootCauseInference `json:"root_cause"`
	Severity  SeverityAssessment `json:"severity"`

	MissingInformation []MissingInformation `json:"missing_information"`

	InspectionSummary string `json:"inspection_summary"`
	ThermalSummary    string `json:"thermal_summary"`
}

// ReasoningDoc is the Stage 3 output document covering all areas
type ReasoningDoc struct {
	Areas                     []AreaAnalysis    `json:"areas"`
	OverallMissingInformation []string          `json:"overall_missing_information"`
	AnalysisMetadata          map[string]string `json:"analysis_metadata"` // run id, model, timestamp
}
