package components

import (
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/samyrami/exporta-facil-bot/internal/ui/theme"
)

// OptionList is a selector for questionnaire answer options. Options
// are picked with the arrow keys or by pressing their number.
type OptionList struct {
	Prompt    string
	Options   []string
	Selected  int
	Submitted bool
}

// NewOptionList creates a new option list with the first option selected.
func NewOptionList(prompt string, options []string) OptionList {
	return OptionList{
		Prompt:  prompt,
		Options: options,
	}
}

// Init returns nil.
func (o OptionList) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation. Submitted is set when the user
// confirms a choice; the caller reads Selected and resets the list for
// the next question.
func (o OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	if o.Submitted {
		return o, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if o.Selected > 0 {
			o.Selected--
		}
	case "down", "j":
		if o.Selected < len(o.Options)-1 {
			o.Selected++
		}
	case "enter":
		o.Submitted = true
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(o.Options) {
			o.Selected = n - 1
			o.Submitted = true
		}
	}

	return o, nil
}

// View renders the option list.
func (o OptionList) View() string {
	s := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(o.Prompt) + "\n\n"

	for i, opt := range o.Options {
		prefix := "  "
		if i == o.Selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		if i == o.Selected {
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		} else {
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}

	return s
}
