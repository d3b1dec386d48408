package welcome

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/samyrami/exporta-facil-bot/internal/router"
	"github.com/samyrami/exporta-facil-bot/internal/screen"
	"github.com/samyrami/exporta-facil-bot/internal/ui/components"
	"github.com/samyrami/exporta-facil-bot/internal/ui/layout"
	"github.com/samyrami/exporta-facil-bot/internal/ui/theme"
	"github.com/samyrami/exporta-facil-bot/internal/wizard"
)

// WelcomeScreen greets the user and offers to start the assessment or
// show more information about it first.
type WelcomeScreen struct {
	ctrl        *wizard.Controller
	nextFactory func() screen.Screen
	menu        components.Menu
	intro       string
	started     bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen. nextFactory builds the contact form
// shown once the user chooses to start.
func New(ctrl *wizard.Controller, nextFactory func() screen.Screen) *WelcomeScreen {
	w := &WelcomeScreen{
		ctrl:        ctrl,
		nextFactory: nextFactory,
	}
	events := ctrl.WelcomeEvents()
	w.intro = events[0].Text
	w.menu = components.NewMenu(w.menuItems(events[0].Options))
	return w
}

func (w *WelcomeScreen) menuItems(options []string) []components.MenuItem {
	items := make([]components.MenuItem, 0, len(options))
	for _, opt := range options {
		opt := opt
		items = append(items, components.MenuItem{
			Label:  opt,
			Action: func() tea.Cmd { return w.choose(opt) },
		})
	}
	return items
}

func (w *WelcomeScreen) choose(option string) tea.Cmd {
	switch option {
	case wizard.OptionStart:
		return w.start()
	case wizard.OptionMoreInfo:
		events := w.ctrl.MoreInfo()
		w.intro = events[0].Text
		w.menu = components.NewMenu(w.menuItems(events[0].Options))
		return nil
	}
	return nil
}

func (w *WelcomeScreen) start() tea.Cmd {
	if w.started {
		return nil
	}
	w.started = true
	w.ctrl.Proceed()
	next := w.nextFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) Title() string {
	return "Termómetro del Exportador"
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navegar"},
		{Key: "Enter", Description: "Seleccionar"},
		{Key: "Ctrl+C", Description: "Salir"},
	}
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return nil
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	w.menu, cmd = w.menu.Update(msg)
	return w, cmd
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, RenderBanner(width))
	sections = append(sections, "")

	tagline := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("Laboratorio de Gobierno · Universidad de La Sabana")
	sections = append(sections, tagline)
	sections = append(sections, "")

	introWidth := width - 8
	if introWidth > 72 {
		introWidth = 72
	}
	intro := lipgloss.NewStyle().
		Foreground(theme.Text).
		Width(introWidth).
		Render(w.intro)
	sections = append(sections, intro)
	sections = append(sections, "")
	sections = append(sections, w.menu.View())

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
