package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/samyrami/exporta-facil-bot/internal/catalog"
	"github.com/samyrami/exporta-facil-bot/internal/contact"
	"github.com/samyrami/exporta-facil-bot/internal/diagnosis"
	"github.com/samyrami/exporta-facil-bot/internal/llm"
	"github.com/samyrami/exporta-facil-bot/internal/store"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]catalog.Question{
		{
			ID: 1, Prompt: "¿Cuenta con certificaciones?", Category: "Calidad",
			Options: []catalog.Option{
				{Label: "Sí", Score: 4, Kind: catalog.KindStrength, Message: "Cuenta con certificaciones."},
				{Label: "No", Score: 1, Kind: catalog.KindWeakness, Message: "Sin certificaciones."},
			},
		},
		{
			ID: 2, Prompt: "¿Exporta actualmente?", Category: "Experiencia",
			Options: []catalog.Option{
				{Label: "Sí", Score: 4, Kind: catalog.KindStrength, Message: "Exporta directamente."},
				{Label: "No", Score: 1, Kind: catalog.KindWeakness, Message: "Sin experiencia exportadora."},
			},
		},
		{
			ID: 3, Prompt: "¿Tiene personal capacitado?", Category: "Recursos Humanos",
			Options: []catalog.Option{
				{Label: "Sí", Score: 4, Kind: catalog.KindStrength, Message: "Personal capacitado."},
				{Label: "No", Score: 1, Kind: catalog.KindWeakness, Message: "Sin personal capacitado."},
			},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return cat
}

var contactValues = []string{
	"Frutas del Valle", "Ana Gómez", "ana@frutas.co", "3001234567", "900123456", "Cali",
}

func newTestController(t *testing.T, gw store.Gateway) *Controller {
	t.Helper()
	c, err := New(context.Background(), testCatalog(t), gw)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func fillContact(t *testing.T, c *Controller) {
	t.Helper()
	c.Proceed()
	for _, v := range contactValues {
		if _, err := c.SubmitField(context.Background(), v); err != nil {
			t.Fatalf("SubmitField(%q): %v", v, err)
		}
	}
}

func TestHappyPathToDiagnosis(t *testing.T) {
	ctx := context.Background()
	gw := store.NewMemoryGateway()
	c := newTestController(t, gw)

	if c.Step() != StepWelcome {
		t.Fatalf("initial step = %q", c.Step())
	}
	events := c.Proceed()
	if c.Step() != StepContact {
		t.Fatalf("step after proceed = %q", c.Step())
	}
	if len(events) == 0 || events[len(events)-1].Sender != SenderBot {
		t.Fatalf("proceed events = %+v", events)
	}

	for _, v := range contactValues {
		if _, err := c.SubmitField(ctx, v); err != nil {
			t.Fatalf("SubmitField(%q): %v", v, err)
		}
	}
	if c.Step() != StepQuestionnaire {
		t.Fatalf("step after contact = %q", c.Step())
	}

	for i := 0; i < 3; i++ {
		events, err := c.SubmitAnswer(ctx, 0)
		if err != nil {
			t.Fatalf("SubmitAnswer #%d: %v", i, err)
		}
		if events[0].Sender != SenderUser || events[0].Text != "Sí" {
			t.Errorf("answer echo = %+v", events[0])
		}
	}

	if c.Step() != StepDiagnosis {
		t.Fatalf("step after last answer = %q", c.Step())
	}
	result := c.Result()
	if result == nil {
		t.Fatal("no diagnosis computed")
	}
	if result.Score != 100 {
		t.Errorf("Score = %d, want 100", result.Score)
	}
	if result.Category != diagnosis.CategoryExperto {
		t.Errorf("Category = %q", result.Category)
	}

	stored, err := gw.Diagnosis(ctx)
	if err != nil || stored == nil {
		t.Fatalf("diagnosis not persisted: %v", err)
	}
	done, _ := gw.Completed(ctx)
	if !done {
		t.Error("completion flag not persisted")
	}
}

func TestMoreInfoStaysInWelcome(t *testing.T) {
	gw := store.NewMemoryGateway()
	c := newTestController(t, gw)

	writes := gw.Writes
	events := c.MoreInfo()
	if c.Step() != StepWelcome {
		t.Errorf("step = %q", c.Step())
	}
	if len(events) != 1 || len(events[0].Options) != 1 {
		t.Errorf("events = %+v", events)
	}
	if gw.Writes != writes {
		t.Error("more-info must not write stored data")
	}
}

func TestSubmitFieldValidationKeepsCursor(t *testing.T) {
	ctx := context.Background()
	c := newTestController(t, store.NewMemoryGateway())
	c.Proceed()

	// company, then an invalid email two fields later
	if _, err := c.SubmitField(ctx, "Frutas del Valle"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.SubmitField(ctx, "Ana Gómez"); err != nil {
		t.Fatal(err)
	}

	events, err := c.SubmitField(ctx, "no-es-correo")
	var verr *contact.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	f, ok := c.CurrentField()
	if !ok || f.Key != "email" {
		t.Errorf("cursor moved after validation failure: %+v", f)
	}
	// Re-prompt for the same field.
	last := events[len(events)-1]
	if last.Sender != SenderBot || !strings.Contains(last.Text, "correo") {
		t.Errorf("re-prompt = %+v", last)
	}

	if _, err := c.SubmitField(ctx, "ana@frutas.co"); err != nil {
		t.Fatalf("valid retry failed: %v", err)
	}
}

func TestLastWriteWinsPerQuestion(t *testing.T) {
	ctx := context.Background()
	gw := store.NewMemoryGateway()
	c := newTestController(t, gw)
	fillContact(t, c)

	if _, err := c.SubmitAnswer(ctx, 0); err != nil { // q1 = Sí
		t.Fatal(err)
	}
	if !c.Back() {
		t.Fatal("Back() failed")
	}
	if _, err := c.SubmitAnswer(ctx, 1); err != nil { // q1 = No
		t.Fatal(err)
	}

	if got := c.Answers()[1].Label; got != "No" {
		t.Errorf("answer for q1 = %q, want last write", got)
	}
	stored, err := gw.Answers(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stored[1].Label != "No" {
		t.Errorf("persisted answer for q1 = %q", stored[1].Label)
	}
	// The cursor moved on to the next unanswered question.
	if _, idx, ok := c.CurrentQuestion(); !ok || idx != 1 {
		t.Errorf("current question index = %d", idx)
	}
}

func TestResumeIntoQuestionnaire(t *testing.T) {
	ctx := context.Background()
	gw := store.NewMemoryGateway()

	first := newTestController(t, gw)
	fillContact(t, first)
	if _, err := first.SubmitAnswer(ctx, 0); err != nil {
		t.Fatal(err)
	}

	resumed := newTestController(t, gw)
	if resumed.Step() != StepQuestionnaire {
		t.Fatalf("resumed step = %q", resumed.Step())
	}
	q, idx, ok := resumed.CurrentQuestion()
	if !ok || idx != 1 || q.ID != 2 {
		t.Errorf("resumed at question %d (id %d)", idx, q.ID)
	}

	// The transcript replays the answered pair, followed by the same
	// acknowledgment the live flow emitted, before the pending prompt.
	events := resumed.Transcript()
	answerAt := -1
	for i, e := range events {
		if e.Sender == SenderUser && e.Text == "Sí" {
			answerAt = i
		}
	}
	if answerAt < 0 {
		t.Fatalf("transcript missing replayed answer: %+v", events)
	}
	ack := events[answerAt+1]
	if ack.Sender != SenderBot || ack.Text != acknowledgment(4) {
		t.Errorf("expected acknowledgment after replayed answer, got %+v", ack)
	}
	last := events[len(events)-1]
	if len(last.Options) != 2 {
		t.Errorf("transcript must end with the pending question: %+v", last)
	}
}

func TestResumeIntoContact(t *testing.T) {
	ctx := context.Background()
	gw := store.NewMemoryGateway()

	first := newTestController(t, gw)
	first.Proceed()
	if _, err := first.SubmitField(ctx, "Frutas del Valle"); err != nil {
		t.Fatal(err)
	}

	resumed := newTestController(t, gw)
	if resumed.Step() != StepContact {
		t.Fatalf("resumed step = %q", resumed.Step())
	}
	f, ok := resumed.CurrentField()
	if !ok || f.Key != "name" {
		t.Errorf("resumed at field %q", f.Key)
	}
}

func TestResumeCompletedSession(t *testing.T) {
	ctx := context.Background()
	gw := store.NewMemoryGateway()

	first := newTestController(t, gw)
	fillContact(t, first)
	for i := 0; i < 3; i++ {
		if _, err := first.SubmitAnswer(ctx, 1); err != nil {
			t.Fatal(err)
		}
	}

	resumed := newTestController(t, gw)
	if resumed.Step() != StepDiagnosis {
		t.Fatalf("resumed step = %q", resumed.Step())
	}
	if resumed.Result() == nil || resumed.Result().Score != first.Result().Score {
		t.Error("resumed diagnosis differs")
	}
}

func TestFreshSessionStartsAtWelcome(t *testing.T) {
	c := newTestController(t, store.NewMemoryGateway())
	if c.Step() != StepWelcome {
		t.Errorf("step = %q", c.Step())
	}
	events := c.Transcript()
	if len(events) != 1 || len(events[0].Options) != 2 {
		t.Errorf("welcome transcript = %+v", events)
	}
}

func TestRestartClearsEverything(t *testing.T) {
	ctx := context.Background()
	gw := store.NewMemoryGateway()
	c := newTestController(t, gw)
	fillContact(t, c)
	for i := 0; i < 3; i++ {
		if _, err := c.SubmitAnswer(ctx, 0); err != nil {
			t.Fatal(err)
		}
	}

	if err := c.Restart(ctx); err != nil {
		t.Fatal(err)
	}
	if c.Step() != StepWelcome || c.Result() != nil || len(c.Answers()) != 0 {
		t.Error("in-memory state not reset")
	}

	resumed := newTestController(t, gw)
	if resumed.Step() != StepWelcome {
		t.Errorf("resumed step after restart = %q", resumed.Step())
	}
}

func TestChatTransitions(t *testing.T) {
	ctx := context.Background()
	c := newTestController(t, store.NewMemoryGateway())
	fillContact(t, c)
	for i := 0; i < 3; i++ {
		if _, err := c.SubmitAnswer(ctx, 0); err != nil {
			t.Fatal(err)
		}
	}

	c.ContinueToChat()
	if c.Step() != StepChat {
		t.Fatalf("step = %q", c.Step())
	}
	c.BackToDiagnosis()
	if c.Step() != StepDiagnosis {
		t.Fatalf("step = %q", c.Step())
	}
}

func TestRefineReplacesAndPersists(t *testing.T) {
	ctx := context.Background()
	gw := store.NewMemoryGateway()
	c := newTestController(t, gw)
	fillContact(t, c)
	for i := 0; i < 3; i++ {
		if _, err := c.SubmitAnswer(ctx, 1); err != nil {
			t.Fatal(err)
		}
	}

	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{
			"fortalezas": ["Fortaleza refinada."],
			"debilidades": ["Debilidad refinada."],
			"recomendaciones": ["Recomendación refinada."]
		}`),
	})
	refiner := diagnosis.NewRefiner(mock, diagnosis.DefaultRefinerConfig())

	changed, err := c.Refine(ctx, refiner)
	if err != nil || !changed {
		t.Fatalf("Refine = %v, %v", changed, err)
	}
	if c.Result().Strengths[0] != "Fortaleza refinada." {
		t.Errorf("result not replaced: %v", c.Result().Strengths)
	}
	stored, _ := gw.Diagnosis(ctx)
	if stored.Strengths[0] != "Fortaleza refinada." {
		t.Error("refined result not persisted")
	}
}

func TestRefineFailureLeavesStoredResult(t *testing.T) {
	ctx := context.Background()
	gw := store.NewMemoryGateway()
	c := newTestController(t, gw)
	fillContact(t, c)
	for i := 0; i < 3; i++ {
		if _, err := c.SubmitAnswer(ctx, 1); err != nil {
			t.Fatal(err)
		}
	}
	before := c.Result().Clone()

	refiner := diagnosis.NewRefiner(llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{}},
	), diagnosis.DefaultRefinerConfig())

	changed, err := c.Refine(ctx, refiner)
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Error("changed = true on failure")
	}
	if c.Result().Strengths[0] != before.Strengths[0] {
		t.Error("result mutated on failed refine")
	}
}
