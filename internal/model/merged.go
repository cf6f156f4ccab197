package model

// Conflict pairs one inspection fact and one thermal fact from the same
// area whose projected statements contradict each other. Conflicts are
// surfaced with full evidence from both sides and never resolved or ranked.
type Conflict struct {
	Type                string   `json:"type"`
	InspectionStatement string   `json:"inspection_statement"`
	ThermalStatement    string   `json:"thermal_statement"`
	InspectionEvidence  Evidence `json:"inspection_evidence"`
	ThermalEvidence     Evidence `json:"thermal_evidence"`
	ConflictDetected    bool     `json:"conflict_detected"` // always true on a created record
}

// MergedArea aggregates the de-duplicated inspection and thermal facts for
// one physical area, plus any conflicts detected between the two sources.
// The area label keeps the display casing of whichever fact appeared first.
type MergedArea struct {
	Area             string           `json:"area"`
	InspectionFacts  []InspectionFact `json:"inspection_facts"`
	ThermalFacts     []ThermalFact    `json:"thermal_facts"`
	Conflicts        []Conflict       `json:"conflicts"`
	ConflictDetected bool             `json:"conflict_detected"`
}

// MergedAreaDoc is the merge-layer output document, ordered by normalized
// area key ascending so repeated runs emit byte-identical JSON.
type MergedAreaDoc struct {
	MergedAreas []MergedArea `json:"merged_areas"`
}
