// Package tui implements the terminal status screen for SusOps.
package tui

import (
	"context"
	"errors"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/susops/susops-tray/internal/daemon/monitor"
	"github.com/susops/susops-tray/internal/susops"
)

// Actions are the commands the screen can trigger.
type Actions interface {
	Start(ctx context.Context) susops.Result
	Stop(ctx context.Context) susops.Result
	Restart(ctx context.Context) susops.Result
	TestAll(ctx context.Context) susops.Result
}

// Options configures Run.
type Options struct {
	Actions Actions
	// Poll runs the state monitor until its context is cancelled.
	Poll    func(ctx context.Context) error
	Version string
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// programRef is a shared reference to the tea.Program for goroutine sends.
// Messages sent before the program exists are dropped, except for the
// latest frame which is replayed on Set.
type programRef struct {
	mu    sync.Mutex
	p     *tea.Program
	frame *monitor.Frame
}

func (r *programRef) Set(p *tea.Program) {
	r.mu.Lock()
	r.p = p
	pending := r.frame
	r.mu.Unlock()
	if p != nil && pending != nil {
		go p.Send(FrameMsg{Frame: *pending})
	}
}

func (r *programRef) Send(msg tea.Msg) {
	r.mu.Lock()
	p := r.p
	if f, ok := msg.(FrameMsg); ok && p == nil {
		r.frame = &f.Frame
	}
	r.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// Clear nils out the program reference, preventing post-exit sends.
func (r *programRef) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = nil
}

// Bridge connects the monitor and the action dispatcher to the screen. It
// is the monitor's View and the dispatcher's Dialogs: frames and alert
// texts become messages; questions are declined because the screen has no
// prompts.
type Bridge struct {
	ref programRef
}

// NewBridge creates a bridge. Pass it to Run once the monitor is built.
func NewBridge() *Bridge {
	return &Bridge{}
}

// Apply implements monitor.View.
func (b *Bridge) Apply(f monitor.Frame) {
	b.ref.Send(FrameMsg{Frame: f})
}

// Alert implements dialog.Dialogs.
func (b *Bridge) Alert(title, message string) {
	b.ref.Send(OutputMsg{Title: title, Text: message})
}

// Confirm implements dialog.Dialogs.
func (b *Bridge) Confirm(_, _, _, _ string) bool { return false }

// Prompt implements dialog.Dialogs.
func (b *Bridge) Prompt(_, _, def string) (string, bool) { return def, false }

// Choose implements dialog.Dialogs.
func (b *Bridge) Choose(_, _ string, _ []string) (string, bool) { return "", false }

// Run shows the status screen until the user quits or ctx is cancelled.
func Run(parent context.Context, b *Bridge, opts Options) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	model := NewModel(ctx, opts.Actions, opts.Version)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	// Store program reference for goroutine sends
	b.ref.Set(p)
	defer b.ref.Clear()

	pollDone := make(chan error, 1)
	go func() { pollDone <- opts.Poll(ctx) }()

	_, err := p.Run()
	cancel()
	<-pollDone
	if errors.Is(err, tea.ErrProgramKilled) && parent.Err() != nil {
		return nil
	}
	return err
}
