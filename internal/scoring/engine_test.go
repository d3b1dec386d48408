package scoring

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/samyrami/exporta-facil-bot/internal/catalog"
	"github.com/samyrami/exporta-facil-bot/internal/contact"
	"github.com/samyrami/exporta-facil-bot/internal/diagnosis"
)

var testNow = time.Date(2026, time.August, 29, 12, 0, 0, 0, time.UTC)

func testContact() contact.Info {
	return contact.Info{
		Company: "Frutas del Valle",
		Name:    "Ana Gómez",
		Email:   "ana@frutas.co",
		Phone:   "3001234567",
		NIT:     "900123456",
		City:    "Cali",
	}
}

func twoQuestionCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]catalog.Question{
		{
			ID: 1, Prompt: "¿Cuenta con certificaciones?", Category: "Calidad",
			Options: []catalog.Option{
				{Label: "Sí", Score: 4, Kind: catalog.KindStrength, Message: "has certifications"},
				{Label: "No", Score: 1, Kind: catalog.KindWeakness, Message: "no certifications"},
			},
		},
		{
			ID: 2, Prompt: "¿Tiene experiencia de mercado?", Category: "Experiencia",
			Options: []catalog.Option{
				{Label: "Sí", Score: 4, Kind: catalog.KindStrength, Message: "has experience"},
				{Label: "No", Score: 1, Kind: catalog.KindWeakness, Message: "no experience"},
			},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return cat
}

func TestComputeTwoQuestionExample(t *testing.T) {
	cat := twoQuestionCatalog(t)
	answers := map[int]Answer{
		1: {QuestionID: 1, Label: "Sí", Value: 4},
		2: {QuestionID: 2, Label: "No", Value: 1},
	}

	got, err := Compute(answers, cat, testContact(), testNow)
	if err != nil {
		t.Fatal(err)
	}
	// raw sum 5 of 8 → round(62.5) = 63
	if got.Score != 63 {
		t.Errorf("Score = %d, want 63", got.Score)
	}
	if got.Category != diagnosis.CategoryAvanzado {
		t.Errorf("Category = %q, want Avanzado", got.Category)
	}
	if !reflect.DeepEqual(got.Strengths, []string{"has certifications"}) {
		t.Errorf("Strengths = %v", got.Strengths)
	}
	if !reflect.DeepEqual(got.Weaknesses, []string{"no experience"}) {
		t.Errorf("Weaknesses = %v", got.Weaknesses)
	}
	if got.Company != "Frutas del Valle" || got.City != "Cali" || got.Name != "Ana Gómez" {
		t.Errorf("metadata snapshot = %+v", got)
	}
	if got.Date != "29 de agosto de 2026" {
		t.Errorf("Date = %q", got.Date)
	}
}

func TestComputeScoreBounds(t *testing.T) {
	cat := catalog.Embedded()
	for _, pick := range []int{0, 1} { // worst and best option of every question
		answers := map[int]Answer{}
		for _, q := range cat.All() {
			opt := q.Options[0]
			if pick == 1 {
				opt = q.Options[len(q.Options)-1]
			}
			answers[q.ID] = Answer{QuestionID: q.ID, Label: opt.Label, Value: opt.Score}
		}
		got, err := Compute(answers, cat, testContact(), testNow)
		if err != nil {
			t.Fatal(err)
		}
		if got.Score < 0 || got.Score > 100 {
			t.Errorf("Score = %d out of [0,100]", got.Score)
		}
	}
}

func TestComputeIdempotent(t *testing.T) {
	cat := twoQuestionCatalog(t)
	answers := map[int]Answer{
		1: {QuestionID: 1, Label: "Sí", Value: 4},
		2: {QuestionID: 2, Label: "Sí", Value: 4},
	}
	a, err := Compute(answers, cat, testContact(), testNow)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Compute(answers, cat, testContact(), testNow)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("repeated compute differs:\n%+v\n%+v", a, b)
	}
}

func TestComputeIncompleteAnswers(t *testing.T) {
	cat := twoQuestionCatalog(t)
	answers := map[int]Answer{1: {QuestionID: 1, Label: "Sí", Value: 4}}

	_, err := Compute(answers, cat, testContact(), testNow)
	var incomplete *IncompleteAnswersError
	if !errors.As(err, &incomplete) {
		t.Fatalf("got %v, want IncompleteAnswersError", err)
	}
	if !reflect.DeepEqual(incomplete.Missing, []int{2}) {
		t.Errorf("Missing = %v", incomplete.Missing)
	}
}

func TestComputeIncompleteContact(t *testing.T) {
	cat := twoQuestionCatalog(t)
	answers := map[int]Answer{
		1: {QuestionID: 1, Label: "Sí", Value: 4},
		2: {QuestionID: 2, Label: "Sí", Value: 4},
	}
	info := testContact()
	info.Email = "broken"

	_, err := Compute(answers, cat, info, testNow)
	var verr *contact.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("got %v, want ValidationError", err)
	}
}

func TestComputeUnknownOptionLabel(t *testing.T) {
	cat := twoQuestionCatalog(t)
	answers := map[int]Answer{
		1: {QuestionID: 1, Label: "Tal vez", Value: 4},
		2: {QuestionID: 2, Label: "Sí", Value: 4},
	}
	if _, err := Compute(answers, cat, testContact(), testNow); err == nil {
		t.Error("expected error for unknown option label")
	}
}

func TestComputeOpportunityAndImprovementCaps(t *testing.T) {
	var questions []catalog.Question
	for i := 1; i <= 4; i++ {
		questions = append(questions, catalog.Question{
			ID: i, Prompt: "p", Category: "c",
			Options: []catalog.Option{
				{Label: "A", Score: 3, Kind: catalog.KindOpportunity, Message: "opp"},
				{Label: "B", Score: 2, Kind: catalog.KindImprovement, Message: "imp"},
			},
		})
	}
	cat, err := catalog.New(questions)
	if err != nil {
		t.Fatal(err)
	}

	answers := map[int]Answer{}
	for i := 1; i <= 4; i++ {
		answers[i] = Answer{QuestionID: i, Label: "A", Value: 3}
	}
	got, err := Compute(answers, cat, testContact(), testNow)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Strengths) != opportunityCap {
		t.Errorf("opportunities not capped: %v", got.Strengths)
	}
	// No weaknesses selected: fallback keeps the section non-empty.
	if !reflect.DeepEqual(got.Weaknesses, []string{fallbackWeakness}) {
		t.Errorf("Weaknesses = %v", got.Weaknesses)
	}

	for i := 1; i <= 4; i++ {
		answers[i] = Answer{QuestionID: i, Label: "B", Value: 2}
	}
	got, err = Compute(answers, cat, testContact(), testNow)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Weaknesses) != improvementCap {
		t.Errorf("improvements not capped: %v", got.Weaknesses)
	}
	if !reflect.DeepEqual(got.Strengths, []string{fallbackStrength}) {
		t.Errorf("Strengths = %v", got.Strengths)
	}
	if len(got.Recommendations) == 0 {
		t.Error("recommendations must never be empty")
	}
}
