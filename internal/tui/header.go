package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/susops/susops-tray/internal/daemon/monitor"
	"github.com/susops/susops-tray/internal/daemon/state"
)

func renderHeader(version string, width int) string {
	dot := lipgloss.NewStyle().Foreground(colorCyan).Render("●")
	name := lipgloss.NewStyle().Bold(true).Render("SusOps")

	left := fmt.Sprintf(" %s %s", dot, name)
	right := dimStyle.Render(version) + " "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return headerStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

// StateStyle returns the color a state is rendered in.
func StateStyle(s state.ProcessState) lipgloss.Style {
	switch s {
	case state.Running:
		return stateRunningStyle
	case state.StoppedPartially:
		return statePartialStyle
	case state.Error:
		return stateErrorStyle
	default:
		return stateStoppedStyle
	}
}

func renderState(f *monitor.Frame) string {
	if f == nil {
		return " " + dimStyle.Render("Waiting for first status check…")
	}
	return " " + StateStyle(f.State).Render("● "+f.Title)
}

func renderActions(m Model) string {
	lines := make([]string, 0, len(actionKeys)+1)
	lines = append(lines, " "+sectionHeaderStyle.Render("Actions"))
	for _, ak := range actionKeys {
		k := ak.binding.Help().Key
		label := ak.action.Label()
		if m.Enabled(ak.action) && !m.busy {
			lines = append(lines, "   "+keyStyle.Render(k)+"  "+actionEnabledStyle.Render(label))
		} else {
			lines = append(lines, "   "+dimStyle.Render(k+"  "+label))
		}
	}
	return strings.Join(lines, "\n") + "\n"
}
