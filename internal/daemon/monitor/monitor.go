package monitor

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/susops/susops-tray/internal/daemon/state"
	"github.com/susops/susops-tray/internal/susops"
)

// Default schedule.
const (
	DefaultStartupDelay = 100 * time.Millisecond
	DefaultInterval     = 5 * time.Second
)

// NoDefaultConnection is printed by `susops ps` before any connection exists.
const NoDefaultConnection = "no default connection found"

// ProbeArgs is the read-only status query.
var ProbeArgs = []string{"ps"}

// Onboarding text shown once when no connection has been configured yet.
const (
	OnboardingTitle   = "🎉 Welcome to SusOps 🎉"
	OnboardingMessage = "To get started, please follow these steps:\n\n" +
		"1. Add a connection\n" +
		"2. Start the proxy\n\n" +
		"If you need help, please check the documentation in 'About' → 'GitHub'."
)

// Options configures a Monitor.
type Options struct {
	StartupDelay time.Duration
	Interval     time.Duration
	Mapping      state.Mapping
	// Onboard is shown the welcome message; nil disables onboarding.
	Onboard susops.Alerter
}

// Cycle is the outcome of one probe.
type Cycle struct {
	Result  susops.Result
	State   state.ProcessState
	Changed bool
}

// Monitor probes the CLI and reconciles the view. Probe, transition and
// reconcile run under one lock, so the view always shows exactly one state.
type Monitor struct {
	runner susops.Runner
	store  *state.Store
	rec    *Reconciler
	opts   Options
	log    zerolog.Logger

	mu        sync.Mutex
	onboarded bool
}

// New creates a monitor. Zero option values fall back to the defaults.
func New(runner susops.Runner, store *state.Store, rec *Reconciler, opts Options, logger zerolog.Logger) *Monitor {
	if opts.StartupDelay <= 0 {
		opts.StartupDelay = DefaultStartupDelay
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Mapping.Codes == nil {
		opts.Mapping = state.MappingV1
	}
	return &Monitor{
		runner: runner,
		store:  store,
		rec:    rec,
		opts:   opts,
		log:    logger.With().Str("module", "monitor").Logger(),
	}
}

// Current returns the current process state.
func (m *Monitor) Current() state.ProcessState {
	return m.store.Current()
}

// Run performs the startup probe after StartupDelay, then probes every
// Interval until ctx is cancelled. Probe failures never stop the loop.
func (m *Monitor) Run(ctx context.Context) error {
	startup := time.NewTimer(m.opts.StartupDelay)
	defer startup.Stop()

	select {
	case <-ctx.Done():
		return nil
	case <-startup.C:
	}
	m.Startup(ctx)

	ticker := time.NewTicker(m.opts.Interval)
	defer ticker.Stop()

	m.log.Info().Dur("interval", m.opts.Interval).Msg("polling started")
	for {
		select {
		case <-ctx.Done():
			m.log.Info().Msg("polling stopped")
			return nil
		case <-ticker.C:
			m.Refresh(ctx)
		}
	}
}

// Startup runs the first probe and shows the onboarding message if the CLI
// has no connection yet. Onboarding happens at most once per Monitor.
func (m *Monitor) Startup(ctx context.Context) Cycle {
	c := m.Refresh(ctx)

	m.mu.Lock()
	show := !m.onboarded && m.opts.Onboard != nil &&
		c.State == state.Error && strings.Contains(c.Result.Output, NoDefaultConnection)
	if show {
		m.onboarded = true
	}
	m.mu.Unlock()

	// The alert blocks until dismissed; keep it outside the lock so actions
	// and the ticker are not held up.
	if show {
		m.log.Info().Msg("no connection configured, showing onboarding")
		m.opts.Onboard.Alert(OnboardingTitle, OnboardingMessage)
	}
	return c
}

// Refresh probes the CLI once and reconciles the view if the state changed.
// Actions call it to skip the wait for the next tick.
func (m *Monitor) Refresh(ctx context.Context) Cycle {
	m.mu.Lock()
	defer m.mu.Unlock()

	res := m.runner.Run(ctx, ProbeArgs, susops.WithSuppressAlert())
	next := m.opts.Mapping.Classify(res.ExitCode, res.Empty())
	c := Cycle{Result: res, State: next}

	if next == state.Error {
		m.log.Debug().Int("exit_code", res.ExitCode).Str("output", res.Output).Msg("probe failed")
	}

	if next == m.store.Current() {
		if m.rec.Stale() {
			m.refreshLocked()
		}
		return c
	}

	frame, err := m.rec.Prepare(next)
	if err != nil {
		// Leave the state untouched so the next probe retries the transition.
		m.log.Error().Err(err).Msg("failed to prepare view")
		return c
	}
	old, changed := m.store.Transition(next)
	if changed {
		m.log.Info().Str("from", old.String()).Str("to", next.String()).Msg("state changed")
		m.rec.Apply(frame)
	}
	c.Changed = changed
	return c
}

// RefreshIcon re-renders the current state, e.g. after the logo style or
// the desktop appearance changed. The state itself is not probed.
func (m *Monitor) RefreshIcon() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshLocked()
}

func (m *Monitor) refreshLocked() {
	cur := m.store.Current()
	if err := m.rec.Reconcile(cur, cur); err != nil {
		m.log.Error().Err(err).Msg("failed to refresh view")
	}
}
