package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the help overlay content.
func renderHelp(h help.Model, width int) string {
	maxWidth := 50
	if width-4 < maxWidth {
		maxWidth = width - 4
	}
	if maxWidth < 30 {
		maxWidth = 30
	}

	title := overlayTitleStyle.Render("Keyboard Shortcuts")
	body := h.FullHelpView(keys.FullHelp())
	note := dimStyle.Render("Actions disabled in the current state are ignored.")
	closeHint := dimStyle.Render("Press ? to close")

	content := lipgloss.JoinVertical(lipgloss.Left, title, body, "", note, closeHint)
	return overlayStyle.Width(maxWidth).Render(content)
}
