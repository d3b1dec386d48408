package contactform

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/samyrami/exporta-facil-bot/internal/catalog"
	"github.com/samyrami/exporta-facil-bot/internal/router"
	"github.com/samyrami/exporta-facil-bot/internal/screen"
	"github.com/samyrami/exporta-facil-bot/internal/store"
	"github.com/samyrami/exporta-facil-bot/internal/wizard"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "questions" }
func (s *stubScreen) Title() string                           { return "Questions" }

func newTestScreen(t *testing.T) (*ContactScreen, *wizard.Controller) {
	t.Helper()
	cat, err := catalog.New([]catalog.Question{{
		ID: 1, Prompt: "¿Exporta actualmente?", Category: "Experiencia",
		Options: []catalog.Option{
			{Label: "Sí", Score: 4, Kind: catalog.KindStrength, Message: "Exporta."},
			{Label: "No", Score: 1, Kind: catalog.KindWeakness, Message: "No exporta."},
		},
	}})
	if err != nil {
		t.Fatal(err)
	}
	ctrl, err := wizard.New(context.Background(), cat, store.NewMemoryGateway())
	if err != nil {
		t.Fatal(err)
	}
	ctrl.Proceed()
	return New(ctrl, func() screen.Screen { return &stubScreen{} }), ctrl
}

// drain delivers typing ticks until the feed is fully revealed and
// returns the command produced by the tick after that.
func drain(t *testing.T, s *ContactScreen) tea.Cmd {
	t.Helper()
	for i := 0; s.feed.Busy(); i++ {
		if i > 50 {
			t.Fatal("typing queue never drained")
		}
		s.Update(typingTickMsg(time.Now()))
	}
	_, cmd := s.Update(typingTickMsg(time.Now()))
	return cmd
}

func enterValue(s *ContactScreen, value string) tea.Cmd {
	s.input.Model.SetValue(value)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	return cmd
}

func TestSubmitAdvancesField(t *testing.T) {
	s, ctrl := newTestScreen(t)

	if cmd := enterValue(s, "Frutas del Valle"); cmd == nil {
		t.Fatal("expected typing tick command")
	}
	drain(t, s)

	f, ok := ctrl.CurrentField()
	if !ok || f.Key != "name" {
		t.Errorf("current field = %+v", f)
	}
	if ctrl.Contact().Company != "Frutas del Valle" {
		t.Errorf("company = %q", ctrl.Contact().Company)
	}
}

func TestInvalidValueKeepsField(t *testing.T) {
	s, ctrl := newTestScreen(t)

	enterValue(s, "Frutas del Valle")
	drain(t, s)
	enterValue(s, "Ana Gómez")
	drain(t, s)

	enterValue(s, "no-es-correo")
	drain(t, s)

	f, ok := ctrl.CurrentField()
	if !ok || f.Key != "email" {
		t.Errorf("cursor moved on invalid email: %+v", f)
	}
}

func TestInputBlockedWhileTyping(t *testing.T) {
	s, _ := newTestScreen(t)

	enterValue(s, "Frutas del Valle")
	// Queue not drained yet: keystrokes must be dropped.
	s.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if s.input.Value() != "" {
		t.Errorf("input accepted text while busy: %q", s.input.Value())
	}
}

func TestCompletionReplacesScreen(t *testing.T) {
	s, ctrl := newTestScreen(t)

	var last tea.Cmd
	for _, v := range []string{
		"Frutas del Valle", "Ana Gómez", "ana@frutas.co", "3001234567", "900123456", "Cali",
	} {
		enterValue(s, v)
		last = drain(t, s)
	}

	if ctrl.Step() != wizard.StepQuestionnaire {
		t.Fatalf("step = %q", ctrl.Step())
	}
	if last == nil {
		t.Fatal("expected transition command")
	}
	if _, ok := last().(router.ReplaceScreenMsg); !ok {
		t.Error("expected ReplaceScreenMsg after the last field")
	}
}
