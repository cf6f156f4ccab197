package report

import (
	"fmt"
	"strings"

	"github.com/propscan/ddrgen/internal/model"
)

// MarkdownOptions controls optional Markdown output features
type MarkdownOptions struct {
	IncludeFooter bool
}

// FormatMarkdown renders the DDR as Markdown in the fixed seven-section
// order.
func FormatMarkdown(r *model.DDRReport, opts MarkdownOptions) string {
	var lines []string
	add := func(s string) { lines = append(lines, s) }

	add(fmt.Sprintf("# %s", r.PropertyName))
	add(fmt.Sprintf("\n**Report Date:** %s\n", r.ReportDate))
	add("---\n")

	// 1. Property Issue Summary
	add("## 1. Property Issue Summary\n")
	s := r.PropertyIssueSummary
	add(fmt.Sprintf("- **Total Areas Inspected:** %d", s.TotalAreasInspected))
	add(fmt.Sprintf("- **Areas with Issues:** %d", s.AreasWithIssues))
	add(fmt.Sprintf("- **Overall Risk Level:** %s\n", s.OverallRiskLevel))

	add("**Severity Breakdown:**")
	add(fmt.Sprintf("- Critical: %d", s.CriticalCount))
	add(fmt.Sprintf("- High: %d", s.HighCount))
	add(fmt.Sprintf("- Medium: %d", s.MediumCount))
	add(fmt.Sprintf("- Low: %d\n", s.LowCount))

	if len(s.KeyFindings) > 0 {
		add("**Key Findings:**")
		for _, finding := range s.KeyFindings {
			add(fmt.Sprintf("- %s", finding))
		}
	}
	add("\n---\n")

	// 2. Area-wise Observations
	add("## 2. Area-wise Observations\n")
	for _, obs := range r.AreaObservations {
		add(fmt.Sprintf("### %s\n", obs.AreaName))
		add(fmt.Sprintf("**Inspection Findings:** %s\n", obs.InspectionSummary))
		add(fmt.Sprintf("**Thermal Findings:** %s\n", obs.ThermalSummary))
		if obs.HasConflict {
			add(fmt.Sprintf("**⚠️ CONFLICT DETECTED:** %s\n", obs.ConflictDescription))
		}
		add("")
	}
	add("---\n")

	// 3. Probable Root Cause
	add("## 3. Probable Root Cause\n")
	if len(r.RootCauses) > 0 {
		for _, rc := range r.RootCauses {
			add(fmt.Sprintf("### %s\n", rc.AreaName))
			add(fmt.Sprintf("**Probable Cause:** %s\n", rc.ProbableCause))
			add(fmt.Sprintf("**Reasoning:** %s\n", rc.Reasoning))
			add(fmt.Sprintf("**Confidence Level:** %s\n", rc.Confidence))
			if len(rc.SupportingEvidence) > 0 {
				add("**Supporting Evidence:**")
				for _, evidence := range rc.SupportingEvidence {
					add(fmt.Sprintf("- %s", evidence))
				}
				add("")
			}
			if len(rc.EvidenceGaps) > 0 {
				add("**Evidence Gaps:**")
				for _, gap := range rc.EvidenceGaps {
					add(fmt.Sprintf("- %s", gap))
				}
				add("")
			}
			add("")
		}
	} else {
		add("Not Available\n")
	}
	add("---\n")

	// 4. Severity Assessment
	add("## 4. Severity Assessment (with Reasoning)\n")
	if len(r.SeverityAssessments) > 0 {
		for _, sev := range r.SeverityAssessments {
			add(fmt.Sprintf("### %s\n", sev.AreaName))
			add(fmt.Sprintf("**Severity Level:** %s\n", sev.SeverityLevel))
			add(fmt.Sprintf("**Reasoning:** %s\n", sev.Reasoning))
			if len(sev.RiskFactors) > 0 {
				add("**Risk Factors:**")
				for _, factor := range sev.RiskFactors {
					add(fmt.Sprintf("- %s", factor))
				}
				add("")
			}
			add("")
		}
	} else {
		add("Not Available\n")
	}
	add("---\n")

	// 5. Recommended Actions
	add("## 5. Recommended Actions\n")
	if len(r.RecommendedActions) > 0 {
		renderGroup := func(heading string, priority model.ActionPriority) {
			var group []model.RecommendedAction
			for _, a := range r.RecommendedActions {
				if a.Priority == priority {
					group = append(group, a)
				}
			}
			if len(group) == 0 {
				return
			}
			add(fmt.Sprintf("### %s\n", heading))
			for _, action := range group {
				add(fmt.Sprintf("**%s**", action.Area))
				add(fmt.Sprintf("- Action: %s", action.Action))
				add(fmt.Sprintf("- Rationale: %s\n", action.Rationale))
			}
		}
		renderGroup("Immediate Actions (Critical Priority)", model.PriorityImmediate)
		renderGroup("Short-term Actions (High Priority)", model.PriorityShortTerm)
		renderGroup("Medium-term Actions", model.PriorityMediumTerm)
		renderGroup("Monitoring Recommendations", model.PriorityMonitoring)
	} else {
		add("Not Available\n")
	}
	add("---\n")

	// 6. Additional Notes
	add("## 6. Additional Notes\n")
	if len(r.AdditionalNotes) > 0 {
		for _, note := range r.AdditionalNotes {
			add(fmt.Sprintf("%s\n", note))
		}
	} else {
		add("Not Available\n")
	}
	add("---\n")

	// 7. Missing or Unclear Information
	add("## 7. Missing or Unclear Information\n")
	if len(r.MissingInformation) > 0 {
		for _, missing := range r.MissingInformation {
			add(fmt.Sprintf("### %s\n", missing.Category))
			add(fmt.Sprintf("**Description:** %s\n", missing.Description))
			add(fmt.Sprintf("**Impact:** %s\n", missing.Impact))
			if len(missing.AffectedAreas) > 0 {
				add(fmt.Sprintf("**Affected Areas:** %s\n", strings.Join(missing.AffectedAreas, ", ")))
			}
			add("")
		}
	} else {
		add("Not Available\n")
	}

	if opts.IncludeFooter {
		add("---\n")
		add(fmt.Sprintf("*Generated by ddrgen on %s*", r.ReportDate))
	}

	return strings.Join(lines, "\n")
}
