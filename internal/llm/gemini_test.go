package llm

import (
	"testing"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.0-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"empresa":   map[string]any{"type": "string"},
			"puntaje":   map[string]any{"type": "integer"},
			"categoria": map[string]any{"type": "string", "enum": []any{"Principiante", "Intermedio", "Avanzado", "Experto"}},
			"fortalezas": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []any{"empresa", "puntaje"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["empresa"].Type != "STRING" {
		t.Fatalf("expected STRING for empresa, got %s", schema.Properties["empresa"].Type)
	}
	if schema.Properties["puntaje"].Type != "INTEGER" {
		t.Fatalf("expected INTEGER for puntaje, got %s", schema.Properties["puntaje"].Type)
	}
	if len(schema.Properties["categoria"].Enum) != 4 {
		t.Fatalf("expected 4 enum values, got %d", len(schema.Properties["categoria"].Enum))
	}
	if schema.Properties["fortalezas"].Type != "ARRAY" {
		t.Fatalf("expected ARRAY for fortalezas, got %s", schema.Properties["fortalezas"].Type)
	}
	if schema.Properties["fortalezas"].Items.Type != "STRING" {
		t.Fatalf("expected STRING for fortalezas items, got %s", schema.Properties["fortalezas"].Items.Type)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}
