package contactform

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/samyrami/exporta-facil-bot/internal/router"
	"github.com/samyrami/exporta-facil-bot/internal/screen"
	"github.com/samyrami/exporta-facil-bot/internal/ui/components"
	"github.com/samyrami/exporta-facil-bot/internal/ui/layout"
	"github.com/samyrami/exporta-facil-bot/internal/ui/theme"
	"github.com/samyrami/exporta-facil-bot/internal/wizard"
)

const typingInterval = 450 * time.Millisecond

type typingTickMsg time.Time

// ContactScreen collects the contact fields one at a time in a chat
// style conversation.
type ContactScreen struct {
	ctrl        *wizard.Controller
	nextFactory func() screen.Screen
	feed        components.ChatFeed
	input       components.TextInput
	done        bool
}

var _ screen.Screen = (*ContactScreen)(nil)
var _ screen.KeyHintProvider = (*ContactScreen)(nil)

// New creates a ContactScreen. nextFactory builds the questionnaire
// screen shown once every field validates.
func New(ctrl *wizard.Controller, nextFactory func() screen.Screen) *ContactScreen {
	s := &ContactScreen{
		ctrl:        ctrl,
		nextFactory: nextFactory,
	}

	placeholder := ""
	if f, ok := ctrl.CurrentField(); ok {
		placeholder = f.Placeholder
	}
	s.input = components.NewTextInput(placeholder, 120)

	// Replay prior fields so a resumed session reads naturally.
	for _, e := range ctrl.Transcript() {
		s.feed.Seed(components.ChatMessage{FromUser: e.Sender == wizard.SenderUser, Text: e.Text})
	}
	return s
}

func (s *ContactScreen) Title() string {
	return "Datos de contacto"
}

func (s *ContactScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Enviar"},
		{Key: "Ctrl+C", Description: "Salir"},
	}
}

func (s *ContactScreen) Init() tea.Cmd {
	return s.input.Init()
}

func tickCmd() tea.Cmd {
	return tea.Tick(typingInterval, func(t time.Time) tea.Msg {
		return typingTickMsg(t)
	})
}

func (s *ContactScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
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
		if msg.String() == "enter" {
			return s.submit()
		}
	}

	// Block typing while the advisor is still "writing".
	if s.feed.Busy() {
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ContactScreen) submit() (screen.Screen, tea.Cmd) {
	if s.feed.Busy() || s.done {
		return s, nil
	}
	value := strings.TrimSpace(s.input.Value())
	if value == "" {
		return s, nil
	}

	events, err := s.ctrl.SubmitField(context.Background(), value)
	for _, e := range events {
		s.feed.Append(components.ChatMessage{FromUser: e.Sender == wizard.SenderUser, Text: e.Text})
	}

	if err != nil {
		s.input.Submit(false)
		return s, tickCmd()
	}

	placeholder := ""
	if f, ok := s.ctrl.CurrentField(); ok {
		placeholder = f.Placeholder
	}
	s.input.Reset(placeholder)

	if s.ctrl.Step() != wizard.StepContact {
		s.done = true
	}
	return s, tickCmd()
}

func (s *ContactScreen) View(width, height int) string {
	inputLine := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(width - 4).
		Padding(0, 1).
		Render(s.input.View())

	inputHeight := lipgloss.Height(inputLine) + 1
	feed := s.feed.View(width-4, height-inputHeight)

	return lipgloss.NewStyle().Padding(0, 2).Render(feed) + "\n" +
		lipgloss.NewStyle().Padding(0, 2).Render(inputLine)
}
