package catalog

import (
	"errors"
	"testing"
)

func TestEmbeddedCatalog(t *testing.T) {
	c := Embedded()
	if c.Len() != 17 {
		t.Fatalf("expected 17 questions, got %d", c.Len())
	}
	if c.MaxWeight() != 5 {
		t.Errorf("MaxWeight() = %d, want 5 (size tiers reach 5)", c.MaxWeight())
	}
	for i, q := range c.All() {
		if q.ID != i+1 {
			t.Errorf("question at %d has id %d, want %d", i, q.ID, i+1)
		}
		if len(q.Options) < 2 {
			t.Errorf("question %d has %d options", q.ID, len(q.Options))
		}
		if q.Category == "" {
			t.Errorf("question %d has empty category", q.ID)
		}
	}
}

func TestEmbeddedSizeQuestionTiers(t *testing.T) {
	q, err := Embedded().ByID(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(q.Options) != 4 {
		t.Fatalf("size question has %d options, want 4 tiers", len(q.Options))
	}
	wantScores := []int{2, 3, 4, 5}
	wantKinds := []Kind{KindImprovement, KindOpportunity, KindStrength, KindStrength}
	for i, o := range q.Options {
		if o.Score != wantScores[i] {
			t.Errorf("tier %d score = %d, want %d", i, o.Score, wantScores[i])
		}
		if o.Kind != wantKinds[i] {
			t.Errorf("tier %d kind = %q, want %q", i, o.Kind, wantKinds[i])
		}
		if o.Message == "" {
			t.Errorf("tier %d has empty message", i)
		}
	}
}

func TestEmbeddedYesNoNormalization(t *testing.T) {
	q, err := Embedded().ByID(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(q.Options) != 2 {
		t.Fatalf("yes/no question has %d options", len(q.Options))
	}
	yes, no := q.Options[0], q.Options[1]
	if yes.Label != "Sí" || yes.Score != 4 || yes.Kind != KindStrength {
		t.Errorf("yes option = %+v", yes)
	}
	if no.Label != "No" || no.Score != 1 || no.Kind != KindWeakness {
		t.Errorf("no option = %+v", no)
	}
}

func TestParseExplicitOptionShape(t *testing.T) {
	data := []byte(`{
		"questions": [
			{
				"id": 1,
				"text": "¿Cuenta con certificaciones?",
				"category": "Calidad",
				"help": "Certificaciones reconocidas internacionalmente.",
				"options": [
					{"label": "Sí, varias", "value": 4, "diagnosis": {"type": "strength", "message": "Cuenta con certificaciones."}},
					{"label": "En proceso", "value": 3, "diagnosis": {"type": "opportunity", "message": "Certificaciones en curso."}},
					{"label": "No", "value": 1, "diagnosis": {"type": "weakness", "message": "Sin certificaciones."}}
				]
			},
			{
				"id": 2,
				"pregunta": "¿Exporta actualmente?",
				"opcion_si": "Exporta directamente.",
				"opcion_no": "No exporta.",
				"category": "Experiencia"
			}
		]
	}`)
	c, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len() = %d", c.Len())
	}
	q1, _ := c.ByID(1)
	if q1.Prompt != "¿Cuenta con certificaciones?" {
		t.Errorf("prompt from text field: %q", q1.Prompt)
	}
	if q1.Help == "" {
		t.Error("help text lost")
	}
	if len(q1.Options) != 3 || q1.Options[1].Kind != KindOpportunity || q1.Options[1].Score != 3 {
		t.Errorf("explicit options not preserved: %+v", q1.Options)
	}
	q2, _ := c.ByID(2)
	if len(q2.Options) != 2 || q2.Options[0].Message != "Exporta directamente." {
		t.Errorf("yes/no entry in mixed document: %+v", q2.Options)
	}
	if c.MaxWeight() != 4 {
		t.Errorf("MaxWeight() = %d, want 4", c.MaxWeight())
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty document", `{"questions": []}`},
		{"duplicate ids", `{"questions": [
			{"id": 1, "pregunta": "a", "opcion_si": "s", "opcion_no": "n", "category": "c"},
			{"id": 1, "pregunta": "b", "opcion_si": "s", "opcion_no": "n", "category": "c"}
		]}`},
		{"no options", `{"questions": [{"id": 1, "pregunta": "a", "category": "c"}]}`},
		{"unknown kind", `{"questions": [{"id": 1, "text": "a", "category": "c", "options": [
			{"label": "x", "value": 1, "diagnosis": {"type": "mystery", "message": "m"}},
			{"label": "y", "value": 2, "diagnosis": {"type": "strength", "message": "m"}}
		]}]}`},
		{"not json", `questions`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseEmptyIsErrNoQuestions(t *testing.T) {
	_, err := Parse([]byte(`{"questions": []}`))
	if !errors.Is(err, ErrNoQuestions) {
		t.Errorf("got %v, want ErrNoQuestions", err)
	}
}

func TestByIDNotFound(t *testing.T) {
	_, err := Embedded().ByID(99)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestOptionLookupByLabel(t *testing.T) {
	q, _ := Embedded().ByID(5)
	o, ok := q.Option("Sí")
	if !ok || o.Score != 4 {
		t.Errorf("Option(Sí) = %+v, %v", o, ok)
	}
	if _, ok := q.Option("Tal vez"); ok {
		t.Error("unexpected match for unknown label")
	}
}
