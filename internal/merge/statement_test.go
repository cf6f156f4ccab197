package merge

import (
	"testing"

	"github.com/propscan/ddrgen/internal/model"
)

func TestInspectionStatement_FieldOrder(t *testing.T) {
	f := model.InspectionFact{
		Area:          "Kitchen",
		Observation:   "Staining on ceiling",
		VisibleIssue:  "Peeling paint",
		MoistureSigns: model.TriYes,
		Notes:         "Recurs after rain",
	}

	want := "Staining on ceiling | Peeling paint | moisture_signs=yes | Recurs after rain"
	if got := InspectionStatement(f); got != want {
		t.Errorf("InspectionStatement = %q, want %q", got, want)
	}
}

func TestInspectionStatement_SkipsSentinels(t *testing.T) {
	f := model.InspectionFact{
		Area:          "Kitchen",
		Observation:   model.NotAvailable,
		VisibleIssue:  "Peeling paint",
		MoistureSigns: model.TriNotMentioned,
		Notes:         model.NotAvailable,
	}

	if got := InspectionStatement(f); got != "Peeling paint" {
		t.Errorf("Expected sentinel fields skipped, got %q", got)
	}
}

func TestInspectionStatement_AllSentinel(t *testing.T) {
	f := model.InspectionFact{
		Area:          "Kitchen",
		Observation:   model.NotAvailable,
		VisibleIssue:  model.NotAvailable,
		MoistureSigns: model.TriNotMentioned,
		Notes:         model.NotAvailable,
	}

	if got := InspectionStatement(f); got != model.NotAvailable {
		t.Errorf("Expected sentinel statement for all-sentinel fact, got %q", got)
	}
}

func TestInspectionStatement_Deterministic(t *testing.T) {
	f := model.InspectionFact{
		Observation:   "Damp patch",
		MoistureSigns: model.TriYes,
	}
	first := InspectionStatement(f)
	for i := 0; i < 5; i++ {
		if got := InspectionStatement(f); got != first {
			t.Fatalf("Expected stable statement, got %q then %q", first, got)
		}
	}
}

func TestThermalStatement_FieldOrder(t *testing.T) {
	f := model.ThermalFact{
		Area:           "Bedroom 2",
		ThermalAnomaly: model.TriYes,
		SuspectedIssue: "Possible moisture intrusion",
		TemperatureReadings: []model.TemperatureReading{
			{Label: "Hotspot", Value: "15.2 °C"},
			{Label: "Ambient", Value: "18.5 °C"},
		},
		Notes: "Cold corner",
	}

	want := "Possible moisture intrusion | thermal_anomaly=yes | temps=Hotspot:15.2 °C; Ambient:18.5 °C | Cold corner"
	if got := ThermalStatement(f); got != want {
		t.Errorf("ThermalStatement = %q, want %q", got, want)
	}
}

func TestThermalStatement_SkipsSentinelReadings(t *testing.T) {
	f := model.ThermalFact{
		ThermalAnomaly: model.TriNo,
		SuspectedIssue: model.NotAvailable,
		TemperatureReadings: []model.TemperatureReading{
			{Label: model.NotAvailable, Value: model.NotAvailable},
			{Label: "Coldspot", Value: "12.0 °C"},
		},
		Notes: model.NotAvailable,
	}

	want := "thermal_anomaly=no | temps=Coldspot:12.0 °C"
	if got := ThermalStatement(f); got != want {
		t.Errorf("ThermalStatement = %q, want %q", got, want)
	}
}

func TestThermalStatement_AllSentinel(t *testing.T) {
	f := model.ThermalFact{
		ThermalAnomaly: model.TriNotMentioned,
		SuspectedIssue: model.NotAvailable,
		Notes:          model.NotAvailable,
	}

	if got := ThermalStatement(f); got != model.NotAvailable {
		t.Errorf("Expected sentinel statement for all-sentinel fact, got %q", got)
	}
}
