package monitor

import (
	"context"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/susops/susops-tray/internal/appearance"
	"github.com/susops/susops-tray/internal/daemon/state"
	"github.com/susops/susops-tray/internal/models"
	"github.com/susops/susops-tray/internal/susops"
)

// fakeRunner returns queued results; the last one repeats.
type fakeRunner struct {
	mu      sync.Mutex
	results []susops.Result
	calls   [][]string
}

func (f *fakeRunner) Run(_ context.Context, args []string, _ ...susops.RunOption) susops.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, args)
	if len(f.results) == 0 {
		return susops.Result{ExitCode: 1}
	}
	res := f.results[0]
	if len(f.results) > 1 {
		f.results = f.results[1:]
	}
	return res
}

func (f *fakeRunner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type recordingView struct {
	mu     sync.Mutex
	frames []Frame
}

func (v *recordingView) Apply(f Frame) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.frames = append(v.frames, f)
}

func (v *recordingView) count() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.frames)
}

func (v *recordingView) last() Frame {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.frames[len(v.frames)-1]
}

type staticSettings struct {
	mu sync.Mutex
	s  *models.Settings
}

func (s *staticSettings) Current() *models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.s
}

func (s *staticSettings) set(v *models.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.s = v
}

type countingAlerter struct {
	mu     sync.Mutex
	titles []string
}

func (a *countingAlerter) Alert(title, _ string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.titles = append(a.titles, title)
}

func (a *countingAlerter) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.titles)
}

type switchableAppearance struct {
	mu sync.Mutex
	a  appearance.Appearance
}

func (s *switchableAppearance) Current() appearance.Appearance {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a
}

func (s *switchableAppearance) set(a appearance.Appearance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a = a
}

type fixture struct {
	runner   *fakeRunner
	view     *recordingView
	settings *staticSettings
	look     *switchableAppearance
	alerter  *countingAlerter
	monitor  *Monitor
}

func newFixture(results ...susops.Result) *fixture {
	f := &fixture{
		runner:   &fakeRunner{results: results},
		view:     &recordingView{},
		settings: &staticSettings{s: models.NewSettings()},
		look:     &switchableAppearance{a: appearance.Light},
		alerter:  &countingAlerter{},
	}
	rec := NewReconciler(f.view, f.settings, f.look, zerolog.Nop())
	f.monitor = New(f.runner, state.NewStore(), rec, Options{
		StartupDelay: time.Millisecond,
		Interval:     5 * time.Millisecond,
		Onboard:      f.alerter,
	}, zerolog.Nop())
	return f
}

func enabledActions(b state.Bindings) map[state.Action]bool {
	out := make(map[state.Action]bool)
	for _, a := range state.Actions() {
		if b.Enabled(a) {
			out[a] = true
		}
	}
	return out
}

func TestRefreshScenarios(t *testing.T) {
	tests := []struct {
		name    string
		result  susops.Result
		state   state.ProcessState
		enabled []state.Action
		title   string
	}{
		{
			name:    "running",
			result:  susops.Result{ExitCode: 0, Output: "ok"},
			state:   state.Running,
			enabled: []state.Action{state.ActionStop, state.ActionRestart, state.ActionTestAny, state.ActionTestAll},
			title:   "Status: running",
		},
		{
			name:    "stopped",
			result:  susops.Result{ExitCode: 3, Output: "stopped"},
			state:   state.Stopped,
			enabled: []state.Action{state.ActionStart},
			title:   "Status: stopped",
		},
		{
			name:   "error with empty output",
			result: susops.Result{ExitCode: 7, Output: ""},
			state:  state.Error,
			title:  "Status: error",
		},
		{
			name:    "partially stopped",
			result:  susops.Result{ExitCode: 2, Output: "pac server down"},
			state:   state.StoppedPartially,
			enabled: state.Actions(),
			title:   "Status: stopped partially",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(tt.result)
			c := f.monitor.Refresh(context.Background())

			if c.State != tt.state || !c.Changed {
				t.Fatalf("Refresh() = %v changed=%v, want %v changed=true", c.State, c.Changed, tt.state)
			}
			if f.monitor.Current() != tt.state {
				t.Errorf("Current() = %v", f.monitor.Current())
			}
			frame := f.view.last()
			if frame.Title != tt.title {
				t.Errorf("Title = %q, want %q", frame.Title, tt.title)
			}
			want := make(map[state.Action]bool)
			for _, a := range tt.enabled {
				want[a] = true
			}
			if got := enabledActions(frame.Bindings); !reflect.DeepEqual(got, want) {
				t.Errorf("enabled = %v, want %v", got, want)
			}
		})
	}
}

func TestRefreshProbesWithPs(t *testing.T) {
	f := newFixture(susops.Result{ExitCode: 0, Output: "ok"})
	f.monitor.Refresh(context.Background())
	if got := f.runner.calls[0]; !reflect.DeepEqual(got, []string{"ps"}) {
		t.Errorf("probe args = %v, want [ps]", got)
	}
}

func TestRefreshSkipsReconcileWhenUnchanged(t *testing.T) {
	f := newFixture(susops.Result{ExitCode: 0, Output: "ok"})

	f.monitor.Refresh(context.Background())
	applied := f.view.count()

	c := f.monitor.Refresh(context.Background())
	if c.Changed {
		t.Error("second identical probe reported a change")
	}
	if f.view.count() != applied {
		t.Errorf("view applied %d times after unchanged probe, want %d", f.view.count(), applied)
	}
}

func TestRefreshAppliesIconOnAppearanceChange(t *testing.T) {
	f := newFixture(susops.Result{ExitCode: 0, Output: "ok"})
	f.monitor.Refresh(context.Background())
	if got := f.view.last().IconPath; got != "icons/colored_glasses/dark/running.png" {
		t.Fatalf("IconPath = %q", got)
	}

	f.look.set(appearance.Dark)
	c := f.monitor.Refresh(context.Background())
	if c.Changed {
		t.Error("appearance change reported as state change")
	}
	if got := f.view.last().IconPath; got != "icons/colored_glasses/light/running.png" {
		t.Errorf("IconPath after dark mode = %q", got)
	}
}

func TestRefreshIconFollowsLogoStyle(t *testing.T) {
	f := newFixture(susops.Result{ExitCode: 3, Output: "stopped"})
	f.monitor.Refresh(context.Background())

	f.settings.set(models.NewSettings().WithLogoStyle(models.LogoStyleGear))
	f.monitor.RefreshIcon()

	frame := f.view.last()
	if frame.IconPath != "icons/gear/dark/stopped.png" {
		t.Errorf("IconPath = %q", frame.IconPath)
	}
	if frame.State != state.Stopped {
		t.Errorf("State = %v, RefreshIcon must not change state", frame.State)
	}
}

func TestRefreshIconBeforeFirstProbe(t *testing.T) {
	f := newFixture()
	f.monitor.RefreshIcon()

	frame := f.view.last()
	if frame.State != state.Initial || frame.Title != "Status: initial" {
		t.Errorf("frame = %v %q", frame.State, frame.Title)
	}
	if frame.IconPath != "icons/colored_glasses/dark/stopped.png" {
		t.Errorf("IconPath = %q, initial should look stopped", frame.IconPath)
	}
	if len(enabledActions(frame.Bindings)) != 0 {
		t.Errorf("actions enabled before first probe: %v", enabledActions(frame.Bindings))
	}
}

func TestReconcileIsIdempotent(t *testing.T) {
	view := &recordingView{}
	rec := NewReconciler(view, &staticSettings{s: models.NewSettings()}, appearance.Static(appearance.Dark), zerolog.Nop())

	if err := rec.Reconcile(state.Stopped, state.Running); err != nil {
		t.Fatal(err)
	}
	if err := rec.Reconcile(state.Stopped, state.Running); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(view.frames[0], view.frames[1]) {
		t.Errorf("frames differ:\n%+v\n%+v", view.frames[0], view.frames[1])
	}
}

func TestStartupOnboardingOnce(t *testing.T) {
	missing := susops.Result{ExitCode: 7, Output: "error: no default connection found"}
	f := newFixture(missing, missing)

	c := f.monitor.Startup(context.Background())
	if c.State != state.Error {
		t.Fatalf("State = %v, want ERROR", c.State)
	}
	if f.alerter.count() != 1 {
		t.Fatalf("onboarding shown %d times, want 1", f.alerter.count())
	}
	if f.alerter.titles[0] != OnboardingTitle {
		t.Errorf("title = %q", f.alerter.titles[0])
	}

	f.monitor.Refresh(context.Background())
	f.monitor.Startup(context.Background())
	if f.alerter.count() != 1 {
		t.Errorf("onboarding shown %d times after later probes, want 1", f.alerter.count())
	}
}

func TestStartupNoOnboardingWhenRunning(t *testing.T) {
	f := newFixture(susops.Result{ExitCode: 0, Output: "no default connection found"})
	f.monitor.Startup(context.Background())
	if f.alerter.count() != 0 {
		t.Error("onboarding shown while running")
	}
}

func TestRunPollsUntilCancelled(t *testing.T) {
	f := newFixture(susops.Result{ExitCode: 3, Output: "stopped"})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- f.monitor.Run(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for f.runner.callCount() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if f.runner.callCount() < 3 {
		t.Errorf("probes = %d, want at least 3", f.runner.callCount())
	}
	if f.monitor.Current() != state.Stopped {
		t.Errorf("Current() = %v", f.monitor.Current())
	}
}

func TestRunRecoversAfterProbeFailure(t *testing.T) {
	f := newFixture(
		susops.Result{ExitCode: susops.ExitSpawnFailed, Output: "Error running susops"},
		susops.Result{ExitCode: 0, Output: "ok"},
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go f.monitor.Run(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for f.monitor.Current() != state.Running && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if f.monitor.Current() != state.Running {
		t.Fatalf("Current() = %v, want RUNNING after recovery", f.monitor.Current())
	}
}
