package tui

import (
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"

	"github.com/susops/susops-tray/internal/daemon/monitor"
	"github.com/susops/susops-tray/internal/daemon/state"
)

// LogView writes one log line per frame. It is used instead of the status
// screen when stdout is not a terminal, and also serves as the dialogs
// sink so command output reaches the log.
type LogView struct {
	log zerolog.Logger
}

// NewLogView creates a log view.
func NewLogView(logger zerolog.Logger) *LogView {
	return &LogView{log: logger.With().Str("module", "watch").Logger()}
}

// Apply implements monitor.View.
func (v *LogView) Apply(f monitor.Frame) {
	var enabled []string
	for _, a := range state.Actions() {
		if f.Bindings.Enabled(a) {
			enabled = append(enabled, a.Label())
		}
	}
	v.log.Info().
		Str("state", f.State.String()).
		Strs("enabled", enabled).
		Msg(f.Title)
}

// Alert implements dialog.Dialogs.
func (v *LogView) Alert(title, message string) {
	v.log.Info().Str("title", title).Msg(ansi.Strip(message))
}

// Confirm implements dialog.Dialogs.
func (v *LogView) Confirm(_, _, _, _ string) bool { return false }

// Prompt implements dialog.Dialogs.
func (v *LogView) Prompt(_, _, def string) (string, bool) { return def, false }

// Choose implements dialog.Dialogs.
func (v *LogView) Choose(_, _ string, _ []string) (string, bool) { return "", false }
