package actions

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/susops/susops-tray/internal/daemon/monitor"
	"github.com/susops/susops-tray/internal/daemon/state"
	"github.com/susops/susops-tray/internal/models"
	"github.com/susops/susops-tray/internal/susops"
)

type fakeRunner struct {
	mu      sync.Mutex
	calls   [][]string
	results map[string]susops.Result // keyed by joined args
}

func (f *fakeRunner) Run(_ context.Context, args []string, _ ...susops.RunOption) susops.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, append([]string(nil), args...))
	if res, ok := f.results[strings.Join(args, " ")]; ok {
		return res
	}
	return susops.Result{Output: "ok"}
}

type fakeMonitor struct {
	current       state.ProcessState
	refreshes     int
	iconRefreshes int
}

func (m *fakeMonitor) Current() state.ProcessState { return m.current }

func (m *fakeMonitor) Refresh(context.Context) monitor.Cycle {
	m.refreshes++
	return monitor.Cycle{State: m.current}
}

func (m *fakeMonitor) RefreshIcon() { m.iconRefreshes++ }

type fakeSettings struct {
	cur     *models.Settings
	saved   []*models.Settings
	reloads int
	saveErr error
}

func (s *fakeSettings) Current() *models.Settings { return s.cur }

func (s *fakeSettings) Reload() (*models.Settings, error) {
	s.reloads++
	return s.cur, nil
}

func (s *fakeSettings) Save(v *models.Settings) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, v)
	s.cur = v
	return nil
}

type alert struct{ title, message string }

// fakeDialogs answers prompts and choices from queues. An exhausted queue
// behaves like the user pressing Cancel.
type fakeDialogs struct {
	prompts  []string
	choices  []string
	confirm  bool
	alerts   []alert
	confirms []string
	defaults []string
}

func (d *fakeDialogs) Alert(title, message string) {
	d.alerts = append(d.alerts, alert{title, message})
}

func (d *fakeDialogs) Confirm(title, _, _, _ string) bool {
	d.confirms = append(d.confirms, title)
	return d.confirm
}

func (d *fakeDialogs) Prompt(_, _, def string) (string, bool) {
	d.defaults = append(d.defaults, def)
	if len(d.prompts) == 0 {
		return def, false
	}
	v := d.prompts[0]
	d.prompts = d.prompts[1:]
	return v, true
}

func (d *fakeDialogs) Choose(_, _ string, _ []string) (string, bool) {
	if len(d.choices) == 0 {
		return "", false
	}
	v := d.choices[0]
	d.choices = d.choices[1:]
	return v, true
}

type fakeInventory struct {
	inv   models.Inventory
	hosts []string
}

func (f *fakeInventory) Inventory() (*models.Inventory, error) { return &f.inv, nil }

func (f *fakeInventory) SSHHosts() []string { return f.hosts }

type harness struct {
	runner    *fakeRunner
	monitor   *fakeMonitor
	settings  *fakeSettings
	dialogs   *fakeDialogs
	inventory *fakeInventory
	d         *Dispatcher
}

func newHarness(current state.ProcessState) *harness {
	h := &harness{
		runner:   &fakeRunner{results: map[string]susops.Result{}},
		monitor:  &fakeMonitor{current: current},
		settings: &fakeSettings{cur: models.NewSettings()},
		dialogs:  &fakeDialogs{},
		inventory: &fakeInventory{inv: models.Inventory{Connections: []models.Connection{
			{
				Tag:      "work",
				PACHosts: []string{"example.com"},
				Forwards: models.Forwards{
					Local:  []models.Forward{{Tag: "db", Src: 5432, Dst: 5432}},
					Remote: []models.Forward{{Tag: "web", Src: 8080, Dst: 3000}},
				},
			},
		}}},
	}
	h.d = New(h.runner, h.monitor, h.settings, h.dialogs, h.inventory, zerolog.Nop())
	return h
}

func (h *harness) lastCall() []string {
	if len(h.runner.calls) == 0 {
		return nil
	}
	return h.runner.calls[len(h.runner.calls)-1]
}
