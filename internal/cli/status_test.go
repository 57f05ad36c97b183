package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/susops/susops-tray/internal/daemon/state"
	"github.com/susops/susops-tray/internal/susops"
)

type stubRunner struct {
	res  susops.Result
	args []string
	opts int
}

func (r *stubRunner) Run(_ context.Context, args []string, opts ...susops.RunOption) susops.Result {
	r.args = args
	r.opts = len(opts)
	return r.res
}

func TestProbeStatus(t *testing.T) {
	tests := []struct {
		name    string
		res     susops.Result
		want    state.ProcessState
		actions []string
	}{
		{"running", susops.Result{Output: "pac: running"}, state.Running, []string{"Stop Proxy", "Restart Proxy", "Test Any", "Test All"}},
		{"partial", susops.Result{Output: "pac: stopped", ExitCode: 2}, state.StoppedPartially, []string{"Start Proxy", "Stop Proxy", "Restart Proxy", "Test Any", "Test All"}},
		{"stopped", susops.Result{Output: "stopped", ExitCode: 3}, state.Stopped, []string{"Start Proxy"}},
		{"unmapped code", susops.Result{Output: "boom", ExitCode: 1}, state.Error, nil},
		{"empty output", susops.Result{}, state.Error, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &stubRunner{res: tt.res}
			report := probeStatus(context.Background(), r, state.MappingV1)

			if strings.Join(r.args, " ") != "ps" {
				t.Errorf("probe args = %v, want [ps]", r.args)
			}
			if r.opts != 1 {
				t.Errorf("probe should suppress alerts, got %d options", r.opts)
			}
			if report.state != tt.want || report.State != tt.want.String() {
				t.Errorf("state = %v (%s), want %v", report.state, report.State, tt.want)
			}
			if report.ExitCode != tt.res.ExitCode {
				t.Errorf("exit code = %d, want %d", report.ExitCode, tt.res.ExitCode)
			}
			if strings.Join(report.Actions, ",") != strings.Join(tt.actions, ",") {
				t.Errorf("actions = %v, want %v", report.Actions, tt.actions)
			}
		})
	}
}

func TestRenderStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	report := statusReport{
		State:   state.Running.String(),
		Output:  "socks: running\npac: running",
		Actions: []string{"Stop Proxy"},
		Tray:    &trayStatus{PID: 4242, StartedAt: now.Add(-3 * time.Minute)},
		state:   state.Running,
	}

	var buf bytes.Buffer
	renderStatus(&buf, report, now)
	out := buf.String()

	for _, want := range []string{"SusOps", "running", "socks: running", "pac: running", "Stop Proxy", "PID 4242", "3 minutes ago"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderStatusWithoutTray(t *testing.T) {
	var buf bytes.Buffer
	renderStatus(&buf, statusReport{State: "STOPPED", state: state.Stopped}, time.Now())
	if !strings.Contains(buf.String(), "not running") {
		t.Errorf("expected tray not running, got:\n%s", buf.String())
	}
}

func TestWriteStatusJSON(t *testing.T) {
	report := statusReport{State: "ERROR", ExitCode: 1, Output: "boom", Actions: []string{}, state: state.Error}

	var buf bytes.Buffer
	if err := writeStatusJSON(&buf, report); err != nil {
		t.Fatalf("writeStatusJSON error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded["state"] != "ERROR" {
		t.Errorf("state = %v, want ERROR", decoded["state"])
	}
	if decoded["exit_code"] != float64(1) {
		t.Errorf("exit_code = %v, want 1", decoded["exit_code"])
	}
	if _, ok := decoded["tray"]; ok {
		t.Error("tray should be omitted when not running")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"exit error", &ExitError{Code: 3}, 3},
		{"other", context.Canceled, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestStatusExitCode(t *testing.T) {
	tests := []struct {
		name string
		res  susops.Result
		want int
	}{
		{"running", susops.Result{Output: "pac: running"}, 0},
		{"partial", susops.Result{Output: "pac: stopped", ExitCode: 2}, 2},
		{"stopped", susops.Result{Output: "stopped", ExitCode: 3}, 3},
		{"unmapped code", susops.Result{Output: "boom", ExitCode: 1}, 1},
		{"empty output exit 0", susops.Result{}, 1},
		{"spawn failure", susops.Result{Stderr: "exec: not found", ExitCode: -1}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := probeStatus(context.Background(), &stubRunner{res: tt.res}, state.MappingV1)
			if got := statusExitCode(report); got != tt.want {
				t.Errorf("statusExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
