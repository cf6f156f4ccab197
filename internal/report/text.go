package report

import (
	"fmt"
	"strings"

	"github.com/propscan/ddrgen/internal/model"
)

const textWidth = 80

func center(s string) string {
	if len(s) >= textWidth {
		return s
	}
	pad := (textWidth - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}

func rule(ch string) string {
	return strings.Repeat(ch, textWidth)
}

// FormatText renders the DDR as fixed-width plain text
func FormatText(r *model.DDRReport) string {
	var lines []string
	add := func(s string) { lines = append(lines, s) }

	add(rule("="))
	add(center(r.PropertyName))
	add(center(fmt.Sprintf("Report Date: %s", r.ReportDate)))
	add(rule("="))
	add("")

	// 1. Property Issue Summary
	add("1. PROPERTY ISSUE SUMMARY")
	add(rule("-"))
	s := r.PropertyIssueSummary
	add(fmt.Sprintf("Total Areas Inspected: %d", s.TotalAreasInspected))
	add(fmt.Sprintf("Areas with Issues: %d", s.AreasWithIssues))
	add(fmt.Sprintf("Overall Risk Level: %s", s.OverallRiskLevel))
	add("")
	add("Severity Breakdown:")
	add(fmt.Sprintf("  Critical: %d", s.CriticalCount))
	add(fmt.Sprintf("  High: %d", s.HighCount))
	add(fmt.Sprintf("  Medium: %d", s.MediumCount))
	add(fmt.Sprintf("  Low: %d", s.LowCount))
	add("")
	if len(s.KeyFindings) > 0 {
		add("Key Findings:")
		for _, finding := range s.KeyFindings {
			add(fmt.Sprintf("  - %s", finding))
		}
	}
	add("")

	// 2. Area-wise Observations
	add("2. AREA-WISE OBSERVATIONS")
	add(rule("-"))
	for _, obs := range r.AreaObservations {
		add(fmt.Sprintf("\n%s", obs.AreaName))
		add(fmt.Sprintf("  Inspection Findings: %s", obs.InspectionSummary))
		add(fmt.Sprintf("  Thermal Findings: %s", obs.ThermalSummary))
		if obs.HasConflict {
			add(fmt.Sprintf("  *** CONFLICT DETECTED: %s", obs.ConflictDescription))
		}
		add("")
	}

	// 3. Probable Root Cause
	add("3. PROBABLE ROOT CAUSE")
	add(rule("-"))
	if len(r.RootCauses) > 0 {
		for _, rc := range r.RootCauses {
			add(fmt.Sprintf("\n%s", rc.AreaName))
			add(fmt.Sprintf("  Probable Cause: %s", rc.ProbableCause))
			add(fmt.Sprintf("  Reasoning: %s", rc.Reasoning))
			add(fmt.Sprintf("  Confidence Level: %s", rc.Confidence))
			if len(rc.SupportingEvidence) > 0 {
				add("  Supporting Evidence:")
				for _, evidence := range rc.SupportingEvidence {
					add(fmt.Sprintf("    - %s", evidence))
				}
			}
			if len(rc.EvidenceGaps) > 0 {
				add("  Evidence Gaps:")
				for _, gap := range rc.EvidenceGaps {
					add(fmt.Sprintf("    - %s", gap))
				}
			}
			add("")
		}
	} else {
		add("Not Available")
	}
	add("")

	// 4. Severity Assessment
	add("4. SEVERITY ASSESSMENT (WITH REASONING)")
	add(rule("-"))
	if len(r.SeverityAssessments) > 0 {
		for _, sev := range r.SeverityAssessments {
			add(fmt.Sprintf("\n%s", sev.AreaName))
			add(fmt.Sprintf("  Severity Level: %s", sev.SeverityLevel))
			add(fmt.Sprintf("  Reasoning: %s", sev.Reasoning))
			if len(sev.RiskFactors) > 0 {
				add("  Risk Factors:")
				for _, factor := range sev.RiskFactors {
					add(fmt.Sprintf("    - %s", factor))
				}
			}
			add("")
		}
	} else {
		add("Not Available")
	}
	add("")

	// 5. Recommended Actions
	add("5. RECOMMENDED ACTIONS")
	add(rule("-"))
	if len(r.RecommendedActions) > 0 {
		for _, priority := range []model.ActionPriority{
			model.PriorityImmediate, model.PriorityShortTerm,
			model.PriorityMediumTerm, model.PriorityMonitoring,
		} {
			var group []model.RecommendedAction
			for _, a := range r.RecommendedActions {
				if a.Priority == priority {
					group = append(group, a)
				}
			}
			if len(group) == 0 {
				continue
			}
			add(fmt.Sprintf("\n%s Actions:", priority))
			for _, action := range group {
				add(fmt.Sprintf("  %s", action.Area))
				add(fmt.Sprintf("    Action: %s", action.Action))
				add(fmt.Sprintf("    Rationale: %s", action.Rationale))
				add("")
			}
		}
	} else {
		add("Not Available")
	}
	add("")

	// 6. Additional Notes
	add("6. ADDITIONAL NOTES")
	add(rule("-"))
	if len(r.AdditionalNotes) > 0 {
		for _, note := range r.AdditionalNotes {
			add(note)
			add("")
		}
	} else {
		add("Not Available")
	}
	add("")

	// 7. Missing Information
	add("7. MISSING OR UNCLEAR INFORMATION")
	add(rule("-"))
	if len(r.MissingInformation) > 0 {
		for _, missing := range r.MissingInformation {
			add(fmt.Sprintf("\n%s", missing.Category))
			add(fmt.Sprintf("  Description: %s", missing.Description))
			add(fmt.Sprintf("  Impact: %s", missing.Impact))
			if len(missing.AffectedAreas) > 0 {
				add(fmt.Sprintf("  Affected Areas: %s", strings.Join(missing.AffectedAreas, ", ")))
			}
			add("")
		}
	} else {
		add("Not Available")
	}

	add("")
	add(rule("="))
	add(center("END OF REPORT"))
	add(rule("="))

	return strings.Join(lines, "\n")
}
