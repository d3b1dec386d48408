package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/samyrami/exporta-facil-bot/internal/assistant"
	diag "github.com/samyrami/exporta-facil-bot/internal/diagnosis"
	"github.com/samyrami/exporta-facil-bot/internal/llm"
	"github.com/samyrami/exporta-facil-bot/internal/router"
	"github.com/samyrami/exporta-facil-bot/internal/screen"
	"github.com/samyrami/exporta-facil-bot/internal/screens/chat"
	"github.com/samyrami/exporta-facil-bot/internal/screens/contactform"
	diagscreen "github.com/samyrami/exporta-facil-bot/internal/screens/diagnosis"
	"github.com/samyrami/exporta-facil-bot/internal/screens/questionnaire"
	"github.com/samyrami/exporta-facil-bot/internal/screens/welcome"
	"github.com/samyrami/exporta-facil-bot/internal/store"
	"github.com/samyrami/exporta-facil-bot/internal/ui/layout"
	"github.com/samyrami/exporta-facil-bot/internal/wizard"
)

// Options carries the wired dependencies into the TUI.
type Options struct {
	Controller *wizard.Controller
	Gateway    store.Gateway

	// Provider may be nil when no credential was found; the refine
	// action and the chat then degrade gracefully.
	Provider        llm.Provider
	Refiner         *diag.Refiner
	AssistantConfig assistant.Config
	ProviderFactory chat.ProviderFactory
}

// deps owns the screen factories. The assistant is cached per
// diagnosis so re-entering the chat keeps the conversation, while a
// restarted assessment starts a fresh one.
type deps struct {
	opts       Options
	asst       *assistant.Assistant
	asstResult *diag.Result
}

func (d *deps) assistant() *assistant.Assistant {
	result := d.opts.Controller.Result()
	if d.asst == nil || d.asstResult != result {
		d.asst = assistant.New(d.opts.Provider, result, d.opts.AssistantConfig)
		d.asstResult = result
	}
	return d.asst
}

// initialScreen picks the screen matching the resumed wizard step.
func (d *deps) initialScreen() screen.Screen {
	switch d.opts.Controller.Step() {
	case wizard.StepContact:
		return d.contactScreen()
	case wizard.StepQuestionnaire:
		return d.questionnaireScreen()
	case wizard.StepDiagnosis, wizard.StepChat:
		return d.diagnosisScreen()
	default:
		return d.welcomeScreen()
	}
}

func (d *deps) welcomeScreen() screen.Screen {
	return welcome.New(d.opts.Controller, d.contactScreen)
}

func (d *deps) contactScreen() screen.Screen {
	return contactform.New(d.opts.Controller, d.questionnaireScreen)
}

func (d *deps) questionnaireScreen() screen.Screen {
	return questionnaire.New(d.opts.Controller, d.diagnosisScreen)
}

func (d *deps) diagnosisScreen() screen.Screen {
	return diagscreen.New(d.opts.Controller, d.opts.Refiner, d.chatScreen, d.welcomeScreen)
}

func (d *deps) chatScreen() screen.Screen {
	return chat.New(d.opts.Controller, d.assistant(), d.opts.Gateway, d.opts.ProviderFactory)
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	d := &deps{opts: opts}
	return AppModel{
		router: router.New(d.initialScreen()),
	}
}

func (m AppModel) Init() tea.Cmd {
	active := m.router.Active()
	if active == nil {
		return nil
	}
	return active.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	status := ""
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}

	header := layout.RenderHeader(title, status, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Salir"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
