package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/samyrami/exporta-facil-bot/internal/ui/theme"
)

// ChatMessage is one entry in a chat feed.
type ChatMessage struct {
	FromUser bool
	Text     string
}

// ChatFeed renders a scrolling conversation of chat bubbles. New
// messages sit in a pending queue and are revealed one at a time so
// the advisor appears to type; user input should stay blocked while
// Busy reports true.
type ChatFeed struct {
	visible []ChatMessage
	pending []ChatMessage
}

// Append queues messages for gradual reveal.
func (f *ChatFeed) Append(msgs ...ChatMessage) {
	f.pending = append(f.pending, msgs...)
}

// Seed shows messages immediately, bypassing the typing queue. Used to
// replay a resumed conversation.
func (f *ChatFeed) Seed(msgs ...ChatMessage) {
	f.visible = append(f.visible, msgs...)
}

// Reveal moves the next pending message into view. It reports whether
// more messages are still pending.
func (f *ChatFeed) Reveal() bool {
	if len(f.pending) == 0 {
		return false
	}
	f.visible = append(f.visible, f.pending[0])
	f.pending = f.pending[1:]
	return len(f.pending) > 0
}

// Busy reports whether messages are still waiting to be revealed.
func (f *ChatFeed) Busy() bool {
	return len(f.pending) > 0
}

// Len returns the number of visible messages.
func (f *ChatFeed) Len() int {
	return len(f.visible)
}

// View renders the feed bottom-anchored into the given box.
func (f *ChatFeed) View(width, height int) string {
	bubbleWidth := width * 7 / 10
	if bubbleWidth < 20 {
		bubbleWidth = 20
	}

	var blocks []string
	for _, m := range f.visible {
		text := lipgloss.NewStyle().Width(bubbleWidth - 4).Render(m.Text)
		if m.FromUser {
			bubble := theme.UserBubble.Render(text)
			blocks = append(blocks, lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble))
		} else {
			blocks = append(blocks, theme.BotBubble.Render(text))
		}
	}

	if f.Busy() {
		blocks = append(blocks, theme.TypingIndicator.Render("escribiendo…"))
	}

	content := strings.Join(blocks, "\n")

	// Keep the tail of the conversation in view.
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	return strings.Join(lines, "\n")
}
