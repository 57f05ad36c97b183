package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func renderStatusBar(m *Model, width int) string {
	left := " " + m.help.ShortHelpView(keys.ShortHelp())

	right := ""
	if m.busy {
		right = lipgloss.NewStyle().Foreground(colorYellow).
			Render(spinnerFrames[m.spinner]+" "+m.running.Label()+"…") + " "
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return statusBarStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
