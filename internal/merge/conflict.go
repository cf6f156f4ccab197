package merge

import (
	"strings"

	"github.com/propscan/ddrgen/internal/model"
)

// ConflictTypeMoisture is the single conflict taxonomy entry currently in the
// rule table: an inspection fact reporting no moisture against a thermal fact
// reporting a moisture-related anomaly in the same area.
const ConflictTypeMoisture = "inspection_no_moisture_vs_thermal_moisture_anomaly"

// negMoisturePatterns mark an inspection statement as indicating no moisture.
var negMoisturePatterns = []string{
	"no damp",
	"no moisture",
	"no leak",
	"no leakage",
	"no water",
	"dry",
	"not damp",
	"not wet",
	"no sign of moisture",
}

// posMoisturePatterns mark a thermal statement as moisture-related.
var posMoisturePatterns = []string{
	"moisture",
	"damp",
	"wet",
	"leak",
	"leakage",
	"water intrusion",
	"water ingress",
	"condensation",
}

// conflictRule pairs an inspection-side predicate with a thermal-side
// predicate. Every fact pair satisfying both within an area yields one
// conflict of the rule's type. New taxonomy entries are added as new rows;
// the orchestrator never changes.
type conflictRule struct {
	conflictType string
	inspection   func(model.InspectionFact) bool
	thermal      func(model.ThermalFact) bool
}

var conflictRules = []conflictRule{
	{
		conflictType: ConflictTypeMoisture,
		inspection:   inspectionIndicatesNoMoisture,
		thermal:      thermalIndicatesMoistureAnomaly,
	},
}

func mentionsAny(text string, patterns []string) bool {
	norm := normalizeForMatch(text)
	for _, p := range patterns {
		if strings.Contains(norm, p) {
			return true
		}
	}
	return false
}

// inspectionIndicatesNoMoisture holds when the fact explicitly reports
// moisture_signs=no, or its projected statement uses negative-moisture wording.
func inspectionIndicatesNoMoisture(f model.InspectionFact) bool {
	if f.MoistureSigns == model.TriNo {
		return true
	}
	return mentionsAny(InspectionStatement(f), negMoisturePatterns)
}

// thermalIndicatesMoistureAnomaly holds when the fact explicitly reports an
// anomaly and either the suspected issue or the projected statement uses
// moisture wording.
func thermalIndicatesMoistureAnomaly(f model.ThermalFact) bool {
	if f.ThermalAnomaly != model.TriYes {
		return false
	}
	if mentionsAny(f.SuspectedIssue, posMoisturePatterns) {
		return true
	}
	return mentionsAny(ThermalStatement(f), posMoisturePatterns)
}

// DetectConflicts enumerates every inspection/thermal fact pair within an
// area that satisfies a conflict rule. The full cross-product is reported
// with evidence from both sides; conflicts are never resolved or ranked.
func DetectConflicts(inspectionFacts []model.InspectionFact, thermalFacts []model.ThermalFact) []model.Conflict {
	conflicts := []model.Conflict{}
	for _, rule := range conflictRules {
		for _, inf := range inspectionFacts {
			if !rule.inspection(inf) {
				continue
			}
			for _, thf := range thermalFacts {
				if !rule.thermal(thf) {
					continue
				}
				conflicts = append(conflicts, model.Conflict{
					Type:                rule.conflictType,
					InspectionStatement: InspectionStatement(inf),
					ThermalStatement:    ThermalStatement(thf),
					InspectionEvidence:  inf.Evidence,
					ThermalEvidence:     thf.Evidence,
					ConflictDetected:    true,
				})
			}
		}
	}
	return conflicts
}
