package tui

import "github.com/charmbracelet/lipgloss"

// Colors using AdaptiveColor for light/dark terminal support.
var (
	colorWhite  = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	colorDim    = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
	colorRed    = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	colorYellow = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "30", Dark: "45"}
)

// Layout styles.
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(lipgloss.AdaptiveColor{Light: "235", Dark: "236"})

	sectionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorWhite)

	dimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// State styles.
var (
	stateRunningStyle = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	statePartialStyle = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	stateStoppedStyle = lipgloss.NewStyle().Foreground(colorDim)
	stateErrorStyle   = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
)

// Action list styles.
var (
	keyStyle           = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	actionEnabledStyle = lipgloss.NewStyle().Foreground(colorWhite)
)

// Overlay styles.
var (
	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorWhite).
			Padding(1, 2)

	overlayTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorWhite).
				MarginBottom(1)

	overlayDimStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)
