package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/samyrami/exporta-facil-bot/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for the diagnosis
// report cards so they visually align.
func ContentWidth(frameWidth int) int {
	// Leave room for the outer border (2) + inner padding (4)
	w := frameWidth - 6
	if w > 76 {
		w = 76
	}
	if w < 20 {
		w = 20
	}
	return w
}

// ReportCard wraps content in a rounded-border card at the given
// content width, with a colored title line.
func ReportCard(title, content string, titleColor color.Color, cw int) string {
	heading := lipgloss.NewStyle().
		Foreground(titleColor).
		Bold(true).
		Render(title)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Padding(0, 2).
		Render(heading + "\n" + content)
}

// ScoreBadge renders the score and category centered in a highlighted
// double-border box.
func ScoreBadge(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(content)
}

// ActionButton renders one action in the diagnosis footer row.
func ActionButton(label string, selected bool) string {
	if selected {
		return lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.BgDark).
			Background(theme.Accent).
			Padding(0, 1).
			Render("▸ " + label)
	}
	return lipgloss.NewStyle().
		Foreground(theme.Text).
		Background(theme.BgCard).
		Padding(0, 1).
		Render(label)
}
