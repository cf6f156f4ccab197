package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Hand-declared JSON schemas for the model outputs. Declared as maps so they
// can be embedded in prompts and compiled for validation from one source.

var evidenceSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"page_numbers": map[string]any{"type": "array", "items": map[string]any{"type": "integer"}},
		"quote":        map[string]any{"type": "string"},
	},
	"required":             []any{"page_numbers", "quote"},
	"additionalProperties": false,
}

var triStateSchema = map[string]any{
	"type": "string",
	"enum": []any{"yes", "no", "not_mentioned"},
}

// InspectionFactsSchema constrains Stage 2 extraction output for the
// inspection report.
var InspectionFactsSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"source": map[string]any{"type": "string", "enum": []any{"inspection_report"}},
		"facts": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"area":           map[string]any{"type": "string"},
					"observation":    map[string]any{"type": "string"},
					"visible_issue":  map[string]any{"type": "string"},
					"moisture_signs": triStateSchema,
					"measurements": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"name":  map[string]any{"type": "string"},
								"value": map[string]any{"type": "string"},
							},
							"required":             []any{"name", "value"},
							"additionalProperties": false,
						},
					},
					"notes":    map[string]any{"type": "string"},
					"evidence": evidenceSchema,
				},
				"required":             []any{"area", "observation", "visible_issue", "moisture_signs", "measurements", "notes", "evidence"},
				"additionalProperties": false,
			},
		},
		"missing_or_unclear_information": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
	},
	"required":             []any{"source", "facts", "missing_or_unclear_information"},
	"additionalProperties": false,
}

// ThermalFactsSchema constrains Stage 2 extraction output for the thermal
// report.
var ThermalFactsSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"source": map[string]any{"type": "string", "enum": []any{"thermal_report"}},
		"facts": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"area":            map[string]any{"type": "string"},
					"thermal_anomaly": triStateSchema,
					"temperature_readings": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"label": map[string]any{"type": "string"},
								"value": map[string]any{"type": "string"},
							},
							"required":             []any{"label", "value"},
							"additionalProperties": false,
						},
					},
					"suspected_issue": map[string]any{"type": "string"},
					"notes":           map[string]any{"type": "string"},
					"evidence":        evidenceSchema,
				},
				"required":             []any{"area", "thermal_anomaly", "temperature_readings", "suspected_issue", "notes", "evidence"},
				"additionalProperties": false,
			},
		},
		"missing_or_unclear_information": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
	},
	"required":             []any{"source", "facts", "missing_or_unclear_information"},
	"additionalProperties": false,
}

// AreaAnalysisSchema constrains Stage 3 reasoning output for one area.
var AreaAnalysisSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"root_cause": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"probable_cause":      map[string]any{"type": "string"},
				"reasoning":           map[string]any{"type": "string"},
				"supporting_evidence": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"confidence": map[string]any{
					"type": "string",
					"enum": []any{"high", "medium", "low", "insufficient_evidence"},
				},
				"evidence_gaps": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			},
			"required": []any{"probable_cause", "reasoning", "confidence"},
		},
		"severity": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"severity_level": map[string]any{
					"type": "string",
					"enum": []any{"critical", "high", "medium", "low", "not_available"},
				},
				"reasoning":           map[string]any{"type": "string"},
				"risk_factors":        map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"supporting_evidence": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			},
			"required": []any{"severity_level", "reasoning"},
		},
		"missing_information": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"category":    map[string]any{"type": "string"},
					"description": map[string]any{"type": "string"},
					"impact":      map[string]any{"type": "string"},
				},
				"required": []any{"category", "description", "impact"},
			},
		},
		"inspection_summary": map[string]any{"type": "string"},
		"thermal_summary":    map[string]any{"type": "string"},
		"conflict_summary":   map[string]any{"type": "string"},
	},
	"required": []any{"root_cause", "severity", "inspection_summary", "thermal_summary"},
}

// ValidateAgainstSchema validates raw JSON against a schema map.
func ValidateAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

// SchemaJSON renders a schema map as indented JSON for prompt embedding.
func SchemaJSON(schemaMap map[string]any) string {
	b, err := json.MarshalIndent(schemaMap, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}
