package merge

import (
	"fmt"
	"strings"

	"github.com/propscan/ddrgen/internal/model"
)

// statementSeparator joins the informative fields of a fact into one
// comparable statement. Field order is fixed, not alphabetical, so the
// phrasing stays natural for conflict narration.
const statementSeparator = " | "

// InspectionStatement projects an inspection fact into a single comparable
// statement: observation, visible issue, explicit moisture signal, notes.
// Sentinel fields are skipped; an all-sentinel fact projects to the sentinel.
func InspectionStatement(f model.InspectionFact) string {
	var parts []string
	if model.IsAvailable(f.Observation) {
		parts = append(parts, f.Observation)
	}
	if model.IsAvailable(f.VisibleIssue) {
		parts = append(parts, f.VisibleIssue)
	}
	if f.MoistureSigns.Mentioned() {
		parts = append(parts, fmt.Sprintf("moisture_signs=%s", f.MoistureSigns))
	}
	if model.IsAvailable(f.Notes) {
		parts = append(parts, f.Notes)
	}
	if len(parts) == 0 {
		return model.NotAvailable
	}
	return strings.Join(parts, statementSeparator)
}

// ThermalStatement projects a thermal fact into a single comparable
// statement: suspected issue, explicit anomaly signal, readings, notes.
func ThermalStatement(f model.ThermalFact) string {
	var parts []string
	if model.IsAvailable(f.SuspectedIssue) {
		parts = append(parts, f.SuspectedIssue)
	}
	if f.ThermalAnomaly.Mentioned() {
		parts = append(parts, fmt.Sprintf("thermal_anomaly=%s", f.ThermalAnomaly))
	}
	var temps []string
	for _, t := range f.TemperatureReadings {
		if model.IsAvailable(t.Label) || model.IsAvailable(t.Value) {
			temps = append(temps, fmt.Sprintf("%s:%s", t.Label, t.Value))
		}
	}
	if len(temps) > 0 {
		parts = append(parts, "temps="+strings.Join(temps, "; "))
	}
	if model.IsAvailable(f.Notes) {
		parts = append(parts, f.Notes)
	}
	if len(parts) == 0 {
		return model.NotAvailable
	}
	return strings.Join(parts, statementSeparator)
}
