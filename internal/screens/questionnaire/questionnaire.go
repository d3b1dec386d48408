package questionnaire

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/samyrami/exporta-facil-bot/internal/router"
	"github.com/samyrami/exporta-facil-bot/internal/screen"
	"github.com/samyrami/exporta-facil-bot/internal/ui/components"
	"github.com/samyrami/exporta-facil-bot/internal/ui/layout"
	"github.com/samyrami/exporta-facil-bot/internal/wizard"
)

const typingInterval = 450 * time.Millisecond

type typingTickMsg time.Time

// QuestionnaireScreen walks through the assessment questions one at a
// time, showing each answer's acknowledgment in the chat feed.
type QuestionnaireScreen struct {
	ctrl        *wizard.Controller
	nextFactory func() screen.Screen
	feed        components.ChatFeed
	options     components.OptionList
	done        bool
}

var _ screen.Screen = (*QuestionnaireScreen)(nil)
var _ screen.KeyHintProvider = (*QuestionnaireScreen)(nil)
var _ screen.StatusProvider = (*QuestionnaireScreen)(nil)

// New creates a QuestionnaireScreen. nextFactory builds the diagnosis
// screen shown when the last question is answered.
func New(ctrl *wizard.Controller, nextFactory func() screen.Screen) *QuestionnaireScreen {
	s := &QuestionnaireScreen{
		ctrl:        ctrl,
		nextFactory: nextFactory,
	}
	s.seedFromTranscript()
	return s
}

func (s *QuestionnaireScreen) seedFromTranscript() {
	s.feed = components.ChatFeed{}
	for _, e := range s.ctrl.Transcript() {
		s.feed.Seed(components.ChatMessage{FromUser: e.Sender == wizard.SenderUser, Text: e.Text})
	}
	s.resetOptions()
}

func (s *QuestionnaireScreen) resetOptions() {
	q, _, ok := s.ctrl.CurrentQuestion()
	if !ok {
		s.options = components.OptionList{}
		return
	}
	labels := make([]string, 0, len(q.Options))
	for _, o := range q.Options {
		labels = append(labels, o.Label)
	}
	s.options = components.NewOptionList("Selecciona una opción:", labels)
}

func (s *QuestionnaireScreen) Title() string {
	return "Cuestionario"
}

// Status shows the answer progress in the header.
func (s *QuestionnaireScreen) Status() string {
	if _, idx, ok := s.ctrl.CurrentQuestion(); ok {
		return fmt.Sprintf("Pregunta %d/%d", idx+1, s.ctrl.Catalog().Len())
	}
	return ""
}

func (s *QuestionnaireScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navegar"},
		{Key: "Enter", Description: "Responder"},
		{Key: "B", Description: "Anterior"},
		{Key: "Ctrl+C", Description: "Salir"},
	}
}

func (s *QuestionnaireScreen) Init() tea.Cmd {
	return nil
}

func tickCmd() tea.Cmd {
	return tea.Tick(typingInterval, func(t time.Time) tea.Msg {
		return typingTickMsg(t)
	})
}

func (s *QuestionnaireScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case typingTickMsg:
		if s.feed.Reveal() {
			return s, tickCmd()
		}
		if s.done {
			next := s.nextFactory()
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}
		return s, nil

	case tea.KeyPressMsg:
		if s.feed.Busy() || s.done {
			return s, nil
		}
		if msg.String() == "b" {
			if s.ctrl.Back() {
				s.seedFromTranscript()
			}
			return s, nil
		}
	}

	if s.feed.Busy() || s.done {
		return s, nil
	}

	var cmd tea.Cmd
	s.options, cmd = s.options.Update(msg)
	if s.options.Submitted {
		return s.answer(s.options.Selected)
	}
	return s, cmd
}

func (s *QuestionnaireScreen) answer(optionIdx int) (screen.Screen, tea.Cmd) {
	events, err := s.ctrl.SubmitAnswer(context.Background(), optionIdx)
	if err != nil {
		s.resetOptions()
		return s, nil
	}
	for _, e := range events {
		s.feed.Append(components.ChatMessage{FromUser: e.Sender == wizard.SenderUser, Text: e.Text})
	}

	if s.ctrl.Step() != wizard.StepQuestionnaire {
		s.done = true
	} else {
		s.resetOptions()
	}
	return s, tickCmd()
}

func (s *QuestionnaireScreen) View(width, height int) string {
	total := s.ctrl.Catalog().Len()
	answered := len(s.ctrl.Answers())
	progress := components.NewProgressBar("Avance", float64(answered)/float64(total), true, width-8)

	optionView := ""
	if !s.feed.Busy() && !s.done {
		optionView = s.options.View()
	}

	bottom := lipgloss.NewStyle().Padding(0, 2).Render(progress.View() + "\n\n" + optionView)
	bottomHeight := lipgloss.Height(bottom) + 1

	feed := s.feed.View(width-4, height-bottomHeight)
	return lipgloss.NewStyle().Padding(0, 2).Render(feed) + "\n" + bottom
}
