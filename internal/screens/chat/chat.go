package chat

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/samyrami/exporta-facil-bot/internal/assistant"
	"github.com/samyrami/exporta-facil-bot/internal/llm"
	"github.com/samyrami/exporta-facil-bot/internal/router"
	"github.com/samyrami/exporta-facil-bot/internal/screen"
	"github.com/samyrami/exporta-facil-bot/internal/store"
	"github.com/samyrami/exporta-facil-bot/internal/ui/components"
	"github.com/samyrami/exporta-facil-bot/internal/ui/layout"
	"github.com/samyrami/exporta-facil-bot/internal/ui/theme"
	"github.com/samyrami/exporta-facil-bot/internal/wizard"
)

// ProviderFactory builds an LLM provider from an interactively entered
// API key.
type ProviderFactory func(ctx context.Context, apiKey string) (llm.Provider, error)

// replyMsg carries the assistant's answer back into the update loop.
type replyMsg struct {
	Message assistant.Message
}

// providerReadyMsg is sent after an interactive API key was validated.
type providerReadyMsg struct {
	Provider llm.Provider
	Err      error
}

// ChatScreen is the free-form conversation with the export advisor
// after the diagnosis. When no provider is configured it first asks
// for an API key and persists it for later sessions.
type ChatScreen struct {
	ctrl     *wizard.Controller
	asst     *assistant.Assistant
	gw       store.Gateway
	buildP   ProviderFactory
	feed     components.ChatFeed
	input    components.TextInput
	waiting  bool
	keyMode  bool
	errText  string
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)

// New creates a ChatScreen. buildP is invoked with an interactively
// entered key when the assistant starts unconfigured.
func New(ctrl *wizard.Controller, asst *assistant.Assistant, gw store.Gateway, buildP ProviderFactory) *ChatScreen {
	s := &ChatScreen{
		ctrl:   ctrl,
		asst:   asst,
		gw:     gw,
		buildP: buildP,
	}

	if !asst.Configured() {
		s.keyMode = true
		s.input = components.NewTextInput("sk-…", 200)
		s.feed.Seed(components.ChatMessage{
			Text: "Para chatear con el asesor necesito una API key de tu proveedor de IA. Ingrésala a continuación; quedará guardada para próximas sesiones.",
		})
		return s
	}

	s.input = components.NewTextInput("Escribe tu pregunta…", 500)
	s.seedTranscript()
	return s
}

func (s *ChatScreen) seedTranscript() {
	transcript := s.asst.Transcript()
	if len(transcript) == 0 {
		msg := s.asst.Welcome()
		s.feed.Seed(components.ChatMessage{Text: msg.Content})
		return
	}
	for _, m := range transcript {
		s.feed.Seed(components.ChatMessage{
			FromUser: m.Role == llm.RoleUser,
			Text:     m.Content,
		})
	}
}

func (s *ChatScreen) Title() string {
	return "Asesor exportador"
}

func (s *ChatScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Enviar"},
		{Key: "Esc", Description: "Volver al diagnóstico"},
		{Key: "Ctrl+C", Description: "Salir"},
	}
}

func (s *ChatScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case providerReadyMsg:
		s.waiting = false
		if msg.Err != nil {
			s.errText = "No fue posible validar la API key: " + msg.Err.Error()
			return s, nil
		}
		s.asst.SetProvider(msg.Provider)
		s.keyMode = false
		s.errText = ""
		s.input.Reset("Escribe tu pregunta…")
		s.seedTranscript()
		return s, nil

	case replyMsg:
		s.waiting = false
		s.feed.Seed(components.ChatMessage{Text: msg.Message.Content})
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			s.ctrl.BackToDiagnosis()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "enter":
			return s.submit()
		}
	}

	if s.waiting {
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ChatScreen) submit() (screen.Screen, tea.Cmd) {
	if s.waiting {
		return s, nil
	}
	value := strings.TrimSpace(s.input.Value())
	if value == "" {
		return s, nil
	}

	if s.keyMode {
		return s.configure(value)
	}

	s.feed.Seed(components.ChatMessage{FromUser: true, Text: value})
	s.input.Reset("Escribe tu pregunta…")
	s.waiting = true
	return s, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		return replyMsg{Message: s.asst.Ask(ctx, value)}
	}
}

func (s *ChatScreen) configure(key string) (screen.Screen, tea.Cmd) {
	s.waiting = true
	s.errText = ""
	return s, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.gw.SaveAPIKey(ctx, key); err != nil {
			return providerReadyMsg{Err: err}
		}
		p, err := s.buildP(ctx, key)
		return providerReadyMsg{Provider: p, Err: err}
	}
}

func (s *ChatScreen) View(width, height int) string {
	inputLine := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(width - 4).
		Padding(0, 1).
		Render(s.input.View())

	var below []string
	if s.waiting {
		below = append(below, theme.TypingIndicator.Render("el asesor está escribiendo…"))
	}
	if s.errText != "" {
		below = append(below, lipgloss.NewStyle().Foreground(theme.Error).Render(s.errText))
	}
	bottom := inputLine
	if len(below) > 0 {
		bottom += "\n" + strings.Join(below, "\n")
	}

	bottomHeight := lipgloss.Height(bottom) + 1
	feed := s.feed.View(width-4, height-bottomHeight)

	return lipgloss.NewStyle().Padding(0, 2).Render(feed) + "\n" +
		lipgloss.NewStyle().Padding(0, 2).Render(bottom)
}
