package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/susops/susops-tray/internal/config"
	"github.com/susops/susops-tray/internal/daemon/monitor"
	"github.com/susops/susops-tray/internal/daemon/state"
	"github.com/susops/susops-tray/internal/models"
	"github.com/susops/susops-tray/internal/susops"
	"github.com/susops/susops-tray/internal/tui"
)

var flagStatusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Probe the proxy once and print its state",
	Long: `Probe the proxy once with "susops ps" and print its state.

The command exits with the exit code of the susops CLI, so it can be used
in scripts. An unusable answer (no output, or the CLI could not be run)
exits with 1.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&flagStatusJSON, "json", false, "print the result as JSON")
}

// statusReport is the outcome of one probe plus the tray instance, if any.
type statusReport struct {
	State    string      `json:"state"`
	ExitCode int         `json:"exit_code"`
	Output   string      `json:"output,omitempty"`
	Tray     *trayStatus `json:"tray,omitempty"`
	Actions  []string    `json:"enabled_actions"`

	state state.ProcessState
}

type trayStatus struct {
	PID       int       `json:"pid"`
	SusOpsBin string    `json:"susops_bin"`
	StartedAt time.Time `json:"started_at"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	bin, err := susops.FindBinary(flagSusOps)
	if err != nil {
		return err
	}

	mapping := state.MappingV1
	if st, err := openSettings(); err == nil {
		if m, err := state.MappingFor(st.Current().MappingVersion); err == nil {
			mapping = m
		}
	}

	runner := susops.NewExecRunner(bin, nil, zlog.Logger)
	report := probeStatus(contextOrBackground(cmd.Context()), runner, mapping)

	if running, info, err := config.IsTrayRunning(); err == nil && running {
		report.Tray = newTrayStatus(info)
	}

	if flagStatusJSON {
		if err := writeStatusJSON(os.Stdout, report); err != nil {
			return err
		}
	} else {
		renderStatus(os.Stdout, report, time.Now())
	}

	if code := statusExitCode(report); code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}

// statusExitCode is the CLI's exit code, except that an ERROR state never
// exits 0 and a failed spawn (negative code) exits 1.
func statusExitCode(r statusReport) int {
	switch {
	case r.ExitCode < 0:
		return 1
	case r.ExitCode == 0 && r.state == state.Error:
		return 1
	default:
		return r.ExitCode
	}
}

// probeStatus runs the same probe the monitor uses and classifies it.
func probeStatus(ctx context.Context, runner susops.Runner, mapping state.Mapping) statusReport {
	res := runner.Run(ctx, monitor.ProbeArgs, susops.WithSuppressAlert())
	s := mapping.Classify(res.ExitCode, res.Empty())

	bindings := state.BindingsFor(s)
	labels := []string{}
	for _, a := range state.Actions() {
		if bindings.Enabled(a) {
			labels = append(labels, a.Label())
		}
	}

	return statusReport{
		State:    s.String(),
		ExitCode: res.ExitCode,
		Output:   res.Message(),
		Actions:  labels,
		state:    s,
	}
}

func newTrayStatus(info *models.TrayInfo) *trayStatus {
	if info == nil {
		return nil
	}
	return &trayStatus{PID: info.PID, SusOpsBin: info.SusOpsBin, StartedAt: info.StartedAt}
}

func writeStatusJSON(w io.Writer, r statusReport) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode status: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func renderStatus(w io.Writer, r statusReport, now time.Time) {
	fmt.Fprintf(w, "  %s %s\n", styleBrand.Render("SusOps"), tui.StateStyle(r.state).Render(r.state.Title()))

	if r.Output != "" {
		fmt.Fprintln(w)
		for _, line := range strings.Split(r.Output, "\n") {
			fmt.Fprintf(w, "    %s\n", styleValue.Render(line))
		}
	}

	fmt.Fprintln(w)
	if len(r.Actions) > 0 {
		fmt.Fprintf(w, "    %s %s\n", styleLabel.Render("Actions"), styleValue.Render(strings.Join(r.Actions, ", ")))
	}
	if r.Tray == nil {
		fmt.Fprintf(w, "    %s    %s\n", styleLabel.Render("Tray"), styleHint.Render("not running"))
		return
	}
	fmt.Fprintf(w, "    %s    %s %s\n",
		styleLabel.Render("Tray"),
		styleSuccess.Render(fmt.Sprintf("running (PID %d)", r.Tray.PID)),
		styleHint.Render("started "+humanize.RelTime(r.Tray.StartedAt, now, "ago", "from now")),
	)
}
