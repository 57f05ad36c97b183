package tui

import (
	"github.com/susops/susops-tray/internal/daemon/monitor"
	"github.com/susops/susops-tray/internal/daemon/state"
	"github.com/susops/susops-tray/internal/susops"
)

// FrameMsg carries the frame for a new state.
type FrameMsg struct {
	Frame monitor.Frame
}

// OutputMsg carries a message the dispatcher wants to show.
type OutputMsg struct {
	Title string
	Text  string
}

// actionDoneMsg signals a triggered action finished.
type actionDoneMsg struct {
	Action state.Action
	Result susops.Result
}

// spinnerTickMsg advances the busy spinner.
type spinnerTickMsg struct{}
