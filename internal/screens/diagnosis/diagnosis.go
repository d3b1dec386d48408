package diagnosis

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	diag "github.com/samyrami/exporta-facil-bot/internal/diagnosis"
	"github.com/samyrami/exporta-facil-bot/internal/report"
	"github.com/samyrami/exporta-facil-bot/internal/router"
	"github.com/samyrami/exporta-facil-bot/internal/screen"
	"github.com/samyrami/exporta-facil-bot/internal/ui/components"
	"github.com/samyrami/exporta-facil-bot/internal/ui/layout"
	"github.com/samyrami/exporta-facil-bot/internal/ui/theme"
	"github.com/samyrami/exporta-facil-bot/internal/wizard"
)

// refineDoneMsg is sent when the LLM refinement finishes.
type refineDoneMsg struct {
	Changed bool
	Err     error
}

type action int

const (
	actionRefine action = iota
	actionExportTxt
	actionExportCSV
	actionChat
	actionRestart
)

var actionLabels = []string{
	"Refinar con IA",
	"Descargar TXT",
	"Descargar CSV",
	"Continuar chateando",
	"Nueva evaluación",
}

// DiagnosisScreen shows the computed report with export, refinement
// and restart actions.
type DiagnosisScreen struct {
	ctrl           *wizard.Controller
	refiner        *diag.Refiner
	chatFactory    func() screen.Screen
	welcomeFactory func() screen.Screen

	selected  action
	refining  bool
	status    string
	scrollOff int
}

var _ screen.Screen = (*DiagnosisScreen)(nil)
var _ screen.KeyHintProvider = (*DiagnosisScreen)(nil)

// New creates a DiagnosisScreen. refiner may be nil when no LLM
// provider is configured; the refine action then reports that instead
// of failing.
func New(ctrl *wizard.Controller, refiner *diag.Refiner, chatFactory, welcomeFactory func() screen.Screen) *DiagnosisScreen {
	return &DiagnosisScreen{
		ctrl:           ctrl,
		refiner:        refiner,
		chatFactory:    chatFactory,
		welcomeFactory: welcomeFactory,
	}
}

func (s *DiagnosisScreen) Title() string {
	return "Diagnóstico"
}

func (s *DiagnosisScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Acción"},
		{Key: "Enter", Description: "Ejecutar"},
		{Key: "↑↓", Description: "Desplazar"},
		{Key: "Ctrl+C", Description: "Salir"},
	}
}

func (s *DiagnosisScreen) Init() tea.Cmd {
	return nil
}

func (s *DiagnosisScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case refineDoneMsg:
		s.refining = false
		switch {
		case msg.Err != nil:
			s.status = "No fue posible refinar el diagnóstico: " + msg.Err.Error()
		case msg.Changed:
			s.status = "Diagnóstico refinado por el asesor IA."
		default:
			s.status = "El asesor IA no está disponible; se conserva el diagnóstico original."
		}
		return s, nil

	case tea.KeyPressMsg:
		if s.refining {
			return s, nil
		}
		switch msg.String() {
		case "left", "h":
			if s.selected > 0 {
				s.selected--
			}
		case "right", "l":
			if int(s.selected) < len(actionLabels)-1 {
				s.selected++
			}
		case "up":
			if s.scrollOff > 0 {
				s.scrollOff--
			}
		case "down":
			s.scrollOff++
		case "enter":
			return s.run(s.selected)
		case "r":
			return s.run(actionRefine)
		case "t":
			return s.run(actionExportTxt)
		case "c":
			return s.run(actionExportCSV)
		case "n":
			return s.run(actionRestart)
		}
	}
	return s, nil
}

func (s *DiagnosisScreen) run(a action) (screen.Screen, tea.Cmd) {
	switch a {
	case actionRefine:
		return s.refine()
	case actionExportTxt:
		s.export("txt")
	case actionExportCSV:
		s.export("csv")
	case actionChat:
		s.ctrl.ContinueToChat()
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: s.chatFactory()} }
	case actionRestart:
		return s.restart()
	}
	return s, nil
}

func (s *DiagnosisScreen) refine() (screen.Screen, tea.Cmd) {
	if s.refiner == nil {
		s.status = "El asesor IA no está configurado. Define una API key para habilitarlo."
		return s, nil
	}
	s.refining = true
	s.status = "Refinando el diagnóstico con el asesor IA…"
	return s, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		changed, err := s.ctrl.Refine(ctx, s.refiner)
		return refineDoneMsg{Changed: changed, Err: err}
	}
}

func (s *DiagnosisScreen) export(ext string) {
	result := s.ctrl.Result()
	if result == nil {
		return
	}

	var content string
	if ext == "csv" {
		content = report.CSV(result)
	} else {
		content = report.Text(result)
	}

	name := report.Filename(result, ext, time.Now())
	if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
		s.status = "No fue posible guardar el reporte: " + err.Error()
		return
	}
	s.status = "Reporte guardado en " + name
}

func (s *DiagnosisScreen) restart() (screen.Screen, tea.Cmd) {
	if err := s.ctrl.Restart(context.Background()); err != nil {
		s.status = "No fue posible reiniciar la evaluación: " + err.Error()
		return s, nil
	}
	next := s.welcomeFactory()
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *DiagnosisScreen) View(width, height int) string {
	result := s.ctrl.Result()
	if result == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("No hay diagnóstico disponible."))
	}

	cw := components.ContentWidth(width)

	badge := components.ScoreBadge(fmt.Sprintf(
		"%s\n%s · %s\n\n%s   %s",
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(result.Company),
		result.City, result.Date,
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(fmt.Sprintf("%d / 100", result.Score)),
		lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(string(result.Category)),
	), cw)

	strengths := components.ReportCard("✓ Fortalezas identificadas",
		bulletList(result.Strengths), theme.Success, cw)
	weaknesses := components.ReportCard("! Áreas de mejora",
		bulletList(result.Weaknesses), theme.Error, cw)
	recommendations := components.ReportCard("» Recomendaciones estratégicas",
		numberedList(result.Recommendations), theme.Primary, cw)

	var actions []string
	for i, label := range actionLabels {
		actions = append(actions, components.ActionButton(label, action(i) == s.selected))
	}
	actionRow := strings.Join(actions, "  ")

	statusLine := ""
	if s.status != "" {
		statusLine = theme.Hint.Render(s.status)
	}

	body := strings.Join([]string{badge, strengths, weaknesses, recommendations}, "\n")
	body = s.scrolled(body, height-lipgloss.Height(actionRow)-3)

	content := body + "\n\n" + actionRow
	if statusLine != "" {
		content += "\n" + statusLine
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}

// scrolled trims the report body to the viewport, honoring the scroll
// offset and clamping it at the bottom.
func (s *DiagnosisScreen) scrolled(body string, height int) string {
	if height < 1 {
		height = 1
	}
	lines := strings.Split(body, "\n")
	if len(lines) <= height {
		s.scrollOff = 0
		return body
	}
	maxOff := len(lines) - height
	if s.scrollOff > maxOff {
		s.scrollOff = maxOff
	}
	return strings.Join(lines[s.scrollOff:s.scrollOff+height], "\n")
}

func bulletList(items []string) string {
	var b strings.Builder
	for _, it := range items {
		fmt.Fprintf(&b, "• %s\n", it)
	}
	return strings.TrimRight(b.String(), "\n")
}

func numberedList(items []string) string {
	var b strings.Builder
	for i, it := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, it)
	}
	return strings.TrimRight(b.String(), "\n")
}
