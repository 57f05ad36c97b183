package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/susops/susops-tray/internal/daemon/monitor"
	"github.com/susops/susops-tray/internal/daemon/state"
	"github.com/susops/susops-tray/internal/susops"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Model is the root Bubbletea model for the status screen.
type Model struct {
	ctx     context.Context
	actions Actions
	version string

	// Latest frame from the monitor; nil until the first probe.
	frame *monitor.Frame

	// Running action, if any. Only one action runs at a time.
	busy    bool
	running state.Action

	output   *OutputView
	help     help.Model
	showHelp bool
	spinner  int
	width    int
	height   int
}

// NewModel creates the initial model.
func NewModel(ctx context.Context, actions Actions, version string) Model {
	return Model{
		ctx:     ctx,
		actions: actions,
		version: version,
		output:  NewOutputView(),
		help:    help.New(),
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update processes messages and returns an updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.output.SetSize(msg.Width-2, m.outputHeight())
		return m, nil

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		return m, cmd

	case FrameMsg:
		f := msg.Frame
		m.frame = &f
		return m, nil

	case OutputMsg:
		m.output.SetContent(msg.Title, msg.Text)
		return m, nil

	case actionDoneMsg:
		m.busy = false
		title := fmt.Sprintf("%s (exit %d)", msg.Action.Label(), msg.Result.ExitCode)
		if text := msg.Result.Message(); text != "" || !m.output.HasContent() {
			m.output.SetContent(title, text)
		} else {
			m.output.SetTitle(title)
		}
		return m, nil

	case spinnerTickMsg:
		if !m.busy {
			return m, nil
		}
		m.spinner = (m.spinner + 1) % len(spinnerFrames)
		return m, spinnerTick()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit
	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
		return nil
	case key.Matches(msg, keys.Up):
		m.output.ScrollUp()
		return nil
	case key.Matches(msg, keys.Down):
		m.output.ScrollDown()
		return nil
	}

	for _, ak := range actionKeys {
		if !key.Matches(msg, ak.binding) {
			continue
		}
		if m.busy || !m.Enabled(ak.action) {
			return nil
		}
		m.busy = true
		m.running = ak.action
		return tea.Batch(m.runAction(ak.action), spinnerTick())
	}
	return nil
}

// Enabled reports whether a is allowed in the current state. Nothing is
// allowed before the first frame arrives.
func (m Model) Enabled(a state.Action) bool {
	return m.frame != nil && m.frame.Bindings.Enabled(a)
}

func (m Model) runAction(a state.Action) tea.Cmd {
	ctx, actions := m.ctx, m.actions
	return func() tea.Msg {
		var res susops.Result
		switch a {
		case state.ActionStart:
			res = actions.Start(ctx)
		case state.ActionStop:
			res = actions.Stop(ctx)
		case state.ActionRestart:
			res = actions.Restart(ctx)
		case state.ActionTestAll:
			res = actions.TestAll(ctx)
		}
		return actionDoneMsg{Action: a, Result: res}
	}
}

func (m Model) outputHeight() int {
	// header, state, blank, actions, blank, output title, status bar
	h := m.height - 6 - len(actionKeys) - 2
	if h < 3 {
		h = 3
	}
	return h
}

// View renders the screen.
func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(renderHeader(m.version, m.width))
	b.WriteString("\n")
	b.WriteString(renderState(m.frame))
	b.WriteString("\n\n")
	b.WriteString(renderActions(m))
	b.WriteString("\n")
	b.WriteString(m.output.View(m.width))
	b.WriteString("\n")
	b.WriteString(renderStatusBar(&m, m.width))

	base := b.String()
	if m.showHelp {
		return renderOverlay(base, renderHelp(m.help, m.width), m.width, m.height)
	}
	return base
}

func spinnerTick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(_ time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}
