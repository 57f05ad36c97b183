// Package actions runs user commands against the susops CLI. Every command
// is validated before the CLI is invoked and is followed by an immediate
// probe so the view reflects its effect without waiting for the next tick.
package actions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/susops/susops-tray/internal/daemon/monitor"
	"github.com/susops/susops-tray/internal/daemon/state"
	"github.com/susops/susops-tray/internal/dialog"
	"github.com/susops/susops-tray/internal/models"
	"github.com/susops/susops-tray/internal/susops"
)

// MaxAttempts bounds how often a form is shown again after invalid input.
const MaxAttempts = 3

// ErrCancelled is returned when the user dismissed a dialog.
var ErrCancelled = errors.New("cancelled")

// Monitor is the part of the poll scheduler actions depend on.
type Monitor interface {
	Current() state.ProcessState
	Refresh(ctx context.Context) monitor.Cycle
	RefreshIcon()
}

// Settings publishes and persists the settings snapshot.
type Settings interface {
	Current() *models.Settings
	Reload() (*models.Settings, error)
	Save(*models.Settings) error
}

// Inventory lists what the dialogs can offer.
type Inventory interface {
	Inventory() (*models.Inventory, error)
	SSHHosts() []string
}

// Dispatcher holds everything a command needs. It is safe for concurrent
// use; serialisation with the poll loop happens inside the Monitor.
type Dispatcher struct {
	runner    susops.Runner
	monitor   Monitor
	settings  Settings
	dialogs   dialog.Dialogs
	inventory Inventory
	log       zerolog.Logger
}

// New creates a dispatcher.
func New(runner susops.Runner, mon Monitor, settings Settings, dialogs dialog.Dialogs, inventory Inventory, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		runner:    runner,
		monitor:   mon,
		settings:  settings,
		dialogs:   dialogs,
		inventory: inventory,
		log:       logger.With().Str("module", "actions").Logger(),
	}
}

// Execute validates req, runs it and refreshes the state. Invalid requests
// never reach the CLI.
func (d *Dispatcher) Execute(ctx context.Context, req Request, opts ...susops.RunOption) (susops.Result, error) {
	if err := Validate(req); err != nil {
		return susops.Result{}, err
	}
	return d.run(ctx, req.Args(), opts...), nil
}

func (d *Dispatcher) run(ctx context.Context, args []string, opts ...susops.RunOption) susops.Result {
	res := d.runner.Run(ctx, args, opts...)
	d.log.Info().Strs("args", args).Int("exit_code", res.ExitCode).Msg("command finished")
	d.monitor.Refresh(ctx)
	return res
}

// Start starts the proxy.
func (d *Dispatcher) Start(ctx context.Context) susops.Result {
	return d.run(ctx, StartArgs)
}

// Stop stops the proxy, keeping its ports unless they are ephemeral.
func (d *Dispatcher) Stop(ctx context.Context) susops.Result {
	return d.run(ctx, StopArgs(d.currentSettings().EphemeralPorts))
}

// Restart reloads the settings and restarts the proxy.
func (d *Dispatcher) Restart(ctx context.Context) susops.Result {
	if _, err := d.settings.Reload(); err != nil {
		d.log.Warn().Err(err).Msg("failed to reload settings before restart")
	}
	return d.run(ctx, RestartArgs)
}

// Status shows the output of `susops ps`.
func (d *Dispatcher) Status(ctx context.Context) susops.Result {
	res := d.run(ctx, StatusArgs, susops.WithSuppressAlert())
	d.dialogs.Alert("SusOps Status", res.Message())
	return res
}

// List shows every domain and forward.
func (d *Dispatcher) List(ctx context.Context) susops.Result {
	res := d.run(ctx, ListArgs)
	d.dialogs.Alert("Domains & Forwards", res.Message())
	return res
}

// OpenConfig opens the config file in the default editor.
func (d *Dispatcher) OpenConfig(ctx context.Context) susops.Result {
	return d.run(ctx, ConfigArgs)
}

// TestAll tests every configured domain and forward and shows the report.
func (d *Dispatcher) TestAll(ctx context.Context) susops.Result {
	res := d.run(ctx, TestAllArgs, susops.WithSuppressAlert())
	d.dialogs.Alert("SusOps Test All", res.Message())
	return res
}

// Launch opens a browser preconfigured to use the proxy.
func (d *Dispatcher) Launch(ctx context.Context, b Browser) susops.Result {
	return d.run(ctx, []string{string(b)}, susops.WithSuppressAlert())
}

// Reset asks for confirmation, then wipes the CLI configuration and
// reloads the settings. It reports whether the reset ran.
func (d *Dispatcher) Reset(ctx context.Context) bool {
	ok := d.dialogs.Confirm("Reset Everything?",
		"This will stop SusOps and remove all of its configs. "+
			"You will have to reconfigure the ssh host as well as ports.\n\nAre you sure?",
		"Reset Everything", "Cancel")
	if !ok {
		return false
	}

	res := d.runner.Run(ctx, ResetArgs, susops.WithSuppressAlert())
	d.log.Info().Int("exit_code", res.ExitCode).Msg("reset finished")
	if _, err := d.settings.Reload(); err != nil {
		d.log.Warn().Err(err).Msg("failed to reload settings after reset")
	}
	d.monitor.RefreshIcon()
	d.monitor.Refresh(ctx)
	return true
}

// Quit stops the proxy if configured to do so. The caller terminates the
// application afterwards.
func (d *Dispatcher) Quit(ctx context.Context) {
	if !d.currentSettings().StopOnQuit {
		return
	}
	res := d.runner.Run(ctx, QuitStopArgs, susops.WithSuppressAlert())
	d.log.Info().Int("exit_code", res.ExitCode).Msg("proxy stopped on quit")
}

// OfferRestart shows message. While the proxy runs the user may restart it
// right away so the change takes effect.
func (d *Dispatcher) OfferRestart(ctx context.Context, title, message string) {
	if d.monitor.Current() != state.Running {
		d.dialogs.Alert(title, message)
		return
	}
	if d.dialogs.Confirm(title, message, "Restart Proxy", "Skip") {
		d.Restart(ctx)
	}
}

func (d *Dispatcher) currentSettings() *models.Settings {
	if s := d.settings.Current(); s != nil {
		return s
	}
	return models.NewSettings()
}

// SetStopOnQuit persists the stop-on-quit flag.
func (d *Dispatcher) SetStopOnQuit(v bool) (*models.Settings, error) {
	return d.save(d.currentSettings().WithStopOnQuit(v))
}

// SetEphemeralPorts persists the ephemeral-ports flag.
func (d *Dispatcher) SetEphemeralPorts(ctx context.Context, v bool) (*models.Settings, error) {
	s, err := d.save(d.currentSettings().WithEphemeralPorts(v))
	if err != nil {
		return nil, err
	}
	d.OfferRestart(ctx, "Settings Saved", "Settings will be applied on next proxy start.")
	return s, nil
}

// SetLogoStyle persists the logo style and redraws the icon.
func (d *Dispatcher) SetLogoStyle(style models.LogoStyle) (*models.Settings, error) {
	s, err := d.save(d.currentSettings().WithLogoStyle(style))
	if err != nil {
		return nil, err
	}
	d.monitor.RefreshIcon()
	return s, nil
}

func (d *Dispatcher) save(s *models.Settings) (*models.Settings, error) {
	if err := d.settings.Save(s); err != nil {
		d.dialogs.Alert("Error", fmt.Sprintf("Failed to save settings: %v", err))
		return nil, err
	}
	return s, nil
}

func (d *Dispatcher) loadInventory() *models.Inventory {
	inv, err := d.inventory.Inventory()
	if err != nil {
		d.log.Warn().Err(err).Msg("failed to read connection inventory")
		return &models.Inventory{}
	}
	return inv
}

func forwardLabels(fwds []models.Forward) []string {
	out := make([]string, 0, len(fwds))
	for _, f := range fwds {
		out = append(out, f.Label())
	}
	return out
}

func hostHint(hosts []string) string {
	if len(hosts) == 0 {
		return "SSH Host:"
	}
	return "SSH Host:\n\nKnown hosts: " + strings.Join(hosts, ", ")
}
