package tray

import (
	"sync"

	"github.com/susops/susops-tray/internal/daemon/monitor"
	"github.com/susops/susops-tray/internal/daemon/state"
	"github.com/susops/susops-tray/internal/dialog"
)

// StateNotifier posts a desktop notification when a working proxy degrades
// on its own. Transitions the user asked for, like Stop, stay quiet.
type StateNotifier struct {
	notifier dialog.Notifier

	mu   sync.Mutex
	last state.ProcessState
}

// NewStateNotifier creates a notifier view.
func NewStateNotifier(n dialog.Notifier) *StateNotifier {
	return &StateNotifier{notifier: n, last: state.Initial}
}

// Apply implements monitor.View.
func (s *StateNotifier) Apply(f monitor.Frame) {
	s.mu.Lock()
	prev := s.last
	s.last = f.State
	s.mu.Unlock()

	if msg, ok := degradation(prev, f.State); ok {
		s.notifier.Notify("SusOps", msg)
	}
}

func degradation(prev, next state.ProcessState) (string, bool) {
	switch {
	case prev == state.Running && next == state.StoppedPartially:
		return "Proxy is partially stopped.", true
	case (prev == state.Running || prev == state.StoppedPartially) && next == state.Error:
		return "Proxy status could not be determined.", true
	default:
		return "", false
	}
}
