// Package report assembles and renders the Detailed Diagnostic Report (DDR)
// from the analytical reasoning output. Aggregation is purely mechanical;
// no new inference happens at this stage.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/propscan/ddrgen/internal/model"
)

// DefaultPropertyName is used when no property name is supplied
const DefaultPropertyName = "Property Inspection Report"

// rationaleMaxChars caps severity reasoning quoted in action rationales
const rationaleMaxChars = 200

// Builder assembles a DDRReport from analytical reasoning
type Builder struct {
	propertyName string
	now          func() time.Time
}

// NewBuilder creates a report builder for the named property
func NewBuilder(propertyName string) *Builder {
	if propertyName == "" {
		propertyName = DefaultPropertyName
	}
	return &Builder{
		propertyName: propertyName,
		now:          time.Now,
	}
}

// Build assembles the complete report from a reasoning document
func (b *Builder) Build(doc *model.ReasoningDoc) *model.DDRReport {
	return &model.DDRReport{
		PropertyName:         b.propertyName,
		ReportDate:           b.now().Format("2006-01-02"),
		PropertyIssueSummary: b.buildSummary(doc),
		AreaObservations:     b.buildObservations(doc),
		RootCauses:           b.buildRootCauses(doc),
		SeverityAssessments:  b.buildSeverityAssessments(doc),
		RecommendedActions:   b.buildRecommendations(doc),
		AdditionalNotes:      b.buildAdditionalNotes(doc),
		MissingInformation:   b.buildMissingInformation(doc),
	}
}

// buildSummary counts severities across areas and derives the overall risk
// level from the worst severity present.
func (b *Builder) buildSummary(doc *model.ReasoningDoc) model.PropertyIssueSummary {
	summary := model.PropertyIssueSummary{
		TotalAreasInspected: len(doc.Areas),
		KeyFindings:         []string{},
		OverallRiskLevel:    model.RiskNotAvailable,
	}

	for _, area := range doc.Areas {
		severity := area.Severity.SeverityLevel
		if severity != model.SeverityNotAvailable {
			summary.AreasWithIssues++
		}

		switch severity {
		case model.SeverityCritical:
			summary.CriticalCount++
			summary.KeyFindings = append(summary.KeyFindings, fmt.Sprintf("%s: %s", area.Area, area.RootCause.ProbableCause))
		case model.SeverityHigh:
			summary.HighCount++
			summary.KeyFindings = append(summary.KeyFindings, fmt.Sprintf("%s: %s", area.Area, area.RootCause.ProbableCause))
		case model.SeverityMedium:
			summary.MediumCount++
		case model.SeverityLow:
			summary.LowCount++
		}
	}

	if len(summary.KeyFindings) > 5 {
		summary.KeyFindings = summary.KeyFindings[:5]
	}

	switch {
	case summary.CriticalCount > 0:
		summary.OverallRiskLevel = model.RiskCritical
	case summary.HighCount > 0:
		summary.OverallRiskLevel = model.RiskHigh
	case summary.MediumCount > 0:
		summary.OverallRiskLevel = model.RiskMedium
	case summary.LowCount > 0:
		summary.OverallRiskLevel = model.RiskLow
	}

	return summary
}

func (b *Builder) buildObservations(doc *model.ReasoningDoc) []model.AreaObservation {
	observations := make([]model.AreaObservation, 0, len(doc.Areas))
	for _, area := range doc.Areas {
		conflictDescription := model.NotAvailable
		if area.HasConflict {
			conflictDescription = area.ConflictSummary
		}
		observations = append(observations, model.AreaObservation{
			AreaName:            area.Area,
			InspectionSummary:   area.InspectionSummary,
			ThermalSummary:      area.ThermalSummary,
			HasConflict:         area.HasConflict,
			ConflictDescription: conflictDescription,
		})
	}
	return observations
}

// buildRootCauses includes only areas with an actual probable cause
func (b *Builder) buildRootCauses(doc *model.ReasoningDoc) []model.RootCauseSection {
	var sections []model.RootCauseSection
	for _, area := range doc.Areas {
		if !model.IsAvailable(area.RootCause.ProbableCause) {
			continue
		}
		sections = append(sections, model.RootCauseSection{
			AreaName:           area.Area,
			ProbableCause:      area.RootCause.ProbableCause,
			Reasoning:          area.RootCause.Reasoning,
			Confidence:         titleCase(string(area.RootCause.Confidence)),
			SupportingEvidence: area.RootCause.SupportingEvidence,
			EvidenceGaps:       area.RootCause.EvidenceGaps,
		})
	}
	return sections
}

func (b *Builder) buildSeverityAssessments(doc *model.ReasoningDoc) []model.SeveritySection {
	var sections []model.SeveritySection
	for _, area := range doc.Areas {
		if area.Severity.SeverityLevel == model.SeverityNotAvailable {
			continue
		}
		sections = append(sections, model.SeveritySection{
			AreaName:      area.Area,
			SeverityLevel: titleCase(string(area.Severity.SeverityLevel)),
			Reasoning:     area.Severity.Reasoning,
			RiskFactors:   area.Severity.RiskFactors,
		})
	}
	return sections
}

var severityRank = map[model.Severity]int{
	model.SeverityCritical:     0,
	model.SeverityHigh:         1,
	model.SeverityMedium:       2,
	model.SeverityLow:          3,
	model.SeverityNotAvailable: 4,
}

// buildRecommendations derives prioritized actions from per-area severity,
// worst areas first. Areas without a severity assessment get no action.
func (b *Builder) buildRecommendations(doc *model.ReasoningDoc) []model.RecommendedAction {
	areas := make([]model.AreaAnalysis, len(doc.Areas))
	copy(areas, doc.Areas)
	sort.SliceStable(areas, func(i, j int) bool {
		return severityRank[areas[i].Severity.SeverityLevel] < severityRank[areas[j].Severity.SeverityLevel]
	})

	var actions []model.RecommendedAction
	for _, area := range areas {
		var priority model.ActionPriority
		var action string

		switch area.Severity.SeverityLevel {
		case model.SeverityCritical:
			priority = model.PriorityImmediate
			action = fmt.Sprintf("Urgent investigation and remediation required for %s", area.Area)
		case model.SeverityHigh:
			priority = model.PriorityShortTerm
			action = fmt.Sprintf("Schedule professional inspection and repair for %s", area.Area)
		case model.SeverityMedium:
			priority = model.PriorityMediumTerm
			action = fmt.Sprintf("Monitor and plan remediation for %s", area.Area)
		case model.SeverityLow:
			priority = model.PriorityMonitoring
			action = fmt.Sprintf("Continue monitoring %s", area.Area)
		default:
			continue
		}

		actions = append(actions, model.RecommendedAction{
			Priority: priority,
			Area:     area.Area,
			Action:   action,
			Rationale: fmt.Sprintf("%s severity: %s...", titleCase(string(area.Severity.SeverityLevel)),
				truncate(area.Severity.Reasoning, rationaleMaxChars)),
		})
	}
	return actions
}

func (b *Builder) buildAdditionalNotes(doc *model.ReasoningDoc) []string {
	var notes []string

	if len(doc.OverallMissingInformation) > 0 {
		notes = append(notes, "Cross-cutting information gaps identified:")
		for _, info := range doc.OverallMissingInformation {
			notes = append(notes, fmt.Sprintf("  - %s", info))
		}
	}

	conflictCount := 0
	for _, area := range doc.Areas {
		if area.HasConflict {
			conflictCount++
		}
	}
	if conflictCount > 0 {
		notes = append(notes, fmt.Sprintf(
			"\nNote: %d area(s) have conflicts between inspection and thermal data. "+
				"See Area-wise Observations for details.", conflictCount))
	}

	notes = append(notes,
		"\nThis report is based on available inspection and thermal imaging data. "+
			"Additional investigation may be required for areas with insufficient evidence or missing information.")

	return notes
}

// buildMissingInformation groups missing-information entries by category,
// keeping the first description and impact seen and collecting every
// affected area. Category order follows first appearance.
func (b *Builder) buildMissingInformation(doc *model.ReasoningDoc) []model.MissingInfoSection {
	byCategory := make(map[string]*model.MissingInfoSection)
	var order []string

	for _, area := range doc.Areas {
		for _, missing := range area.MissingInformation {
			section, exists := byCategory[missing.Category]
			if !exists {
				byCategory[missing.Category] = &model.MissingInfoSection{
					Category:      missing.Category,
					Description:   missing.Description,
					Impact:        missing.Impact,
					AffectedAreas: []string{area.Area},
				}
				order = append(order, missing.Category)
				continue
			}
			if !containsString(section.AffectedAreas, area.Area) {
				section.AffectedAreas = append(section.AffectedAreas, area.Area)
			}
		}
	}

	sections := make([]model.MissingInfoSection, 0, len(order))
	for _, category := range order {
		sections = append(sections, *byCategory[category])
	}
	return sections
}

func containsString(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// titleCase capitalizes the first letter of each word, for display of
// lowercase enum values like "high" or "insufficient_evidence".
func titleCase(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
