package model

// RiskLevel is the property-wide risk rating shown in the DDR summary
type RiskLevel string

const (
	RiskCritical     RiskLevel = "Critical"
	RiskHigh         RiskLevel = "High"
	RiskMedium       RiskLevel = "Medium"
	RiskLow          RiskLevel = "Low"
	RiskNotAvailable RiskLevel = "Not Available"
)

// ActionPriority orders recommended actions by urgency
type ActionPriority string

const (
	PriorityImmediate  ActionPriority = "Immediate"
	PriorityShortTerm  ActionPriority = "Short-term"
	PriorityMediumTerm ActionPriority = "Medium-term"
	PriorityMonitoring ActionPriority = "Monitoring"
)

// PropertyIssueSummary is the high-level overview across all areas
type PropertyIssueSummary struct {
	TotalAreasInspected int       `json:"total_areas_inspected"`
	AreasWithIssues     int       `json:"areas_with_issues"`
	CriticalCount       int       `json:"critical_count"`
	HighCount           int       `json:"high_count"`
	MediumCount         int       `json:"medium_count"`
	LowCount            int       `json:"low_count"`
	KeyFindings         []string  `json:"key_findings"`
	OverallRiskLevel    RiskLevel `json:"overall_risk_level"`
}

// AreaObservation is the per-area findings section of the DDR
type AreaObservation struct {
	AreaName            string `json:"area_name"`
	InspectionSummary   string `json:"inspection_summary"`
	ThermalSummary      string `json:"thermal_summary"`
	HasConflict         bool   `json:"has_conflict"`
	ConflictDescription string `json:"conflict_description"`
}

// RootCauseSection presents a root cause inference in the DDR
type RootCauseSection struct {
	AreaName           string   `json:"area_name"`
	ProbableCause      string   `json:"probable_cause"`
	Reasoning          string   `json:"reasoning"`
	Confidence         string   `json:"confidence"`
	SupportingEvidence []string `json:"supporting_evidence"`
	EvidenceGaps       []string `json:"evidence_gaps"`
}

// SeveritySection presents a severity assessment in the DDR
type SeveritySection struct {
	AreaName      string   `json:"area_name"`
	SeverityLevel string   `json:"severity_level"`
	Reasoning     string   `json:"reasoning"`
	RiskFactors   []string `json:"risk_factors"`
}

// RecommendedAction is a single prioritized action item
type RecommendedAction struct {
	Priority  ActionPriority `json:"priority"`
	Area      string         `json:"area"`
	Action    string         `json:"action"`
	Rationale string         `json:"rationale"`
}

// MissingInfoSection lists missing or unclear information with affected areas
type MissingInfoSection struct {
	Category      string   `json:"category"`
	Description   string   `json:"description"`
	Impact        string   `json:"impact"`
	AffectedAreas []string `json:"affected_areas"`
}

// DDRReport is the complete Detailed Diagnostic Report structure, in the
// section order the rendered report uses.
type DDRReport struct {
	PropertyName string `json:"property_name"`
	ReportDate   string `json:"report_date"`

	PropertyIssueSummary PropertyIssueSummary `json:"property_issue_summary"`
	AreaObservations     []AreaObservation    `json:"area_observations"`
	RootCauses           []RootCauseSection   `json:"root_causes"`
	SeverityAssessments  []SeveritySection    `json:"severity_assessments"`
	RecommendedActions   []RecommendedAction  `json:"recommended_actions"`
	AdditionalNotes      []string             `json:"additional_notes"`
	MissingInformation   []MissingInfoSection `json:"missing_information"`
}
