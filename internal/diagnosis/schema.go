package diagnosis

import "github.com/samyrami/exporta-facil-bot/internal/llm"

// RefineSchema defines the JSON schema for refined diagnosis responses.
// Field names match the report sections as presented to the model.
var RefineSchema = &llm.Schema{
	Name:        "diagnosis-refinement",
	Description: "Rewritten diagnosis sections preserving structure and essential content",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"fortalezas": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    1,
				"description": "Rewritten strength findings",
			},
			"debilidades": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    1,
				"description": "Rewritten weakness findings, framed as improvement opportunities",
			},
			"recomendaciones": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    1,
				"description": "Rewritten actionable recommendations",
			},
		},
		"required":             []any{"fortalezas", "debilidades", "recomendaciones"},
		"additionalProperties": false,
	},
}
