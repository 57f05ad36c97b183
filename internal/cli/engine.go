package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/susops/susops-tray/internal/appearance"
	"github.com/susops/susops-tray/internal/config"
	"github.com/susops/susops-tray/internal/daemon/actions"
	"github.com/susops/susops-tray/internal/daemon/monitor"
	"github.com/susops/susops-tray/internal/daemon/state"
	"github.com/susops/susops-tray/internal/daemon/watcher"
	"github.com/susops/susops-tray/internal/dialog"
	"github.com/susops/susops-tray/internal/logging"
	"github.com/susops/susops-tray/internal/models"
	"github.com/susops/susops-tray/internal/susops"
)

// engineOptions selects the front end an engine drives.
type engineOptions struct {
	View     monitor.View
	Dialogs  dialog.Dialogs
	Detector appearance.Detector
	// Onboard enables the first-run welcome message.
	Onboard bool
}

// engine is the wired state machine shared by every front end: runner,
// settings snapshot, poll scheduler and action dispatcher.
type engine struct {
	runner   *susops.ExecRunner
	settings *config.SettingsStore
	monitor  *monitor.Monitor
	actions  *actions.Dispatcher
	log      zerolog.Logger
}

func newEngine(opts engineOptions) (*engine, error) {
	log := logging.Module("engine")
	base := zlog.Logger

	bin, err := susops.FindBinary(flagSusOps)
	if err != nil {
		return nil, err
	}

	settings, err := openSettings()
	if err != nil {
		return nil, err
	}

	mapping, err := state.MappingFor(settings.Current().MappingVersion)
	if err != nil {
		log.Warn().Err(err).Msg("falling back to exit code mapping v1")
		mapping = state.MappingV1
	}

	runner := susops.NewExecRunner(bin, opts.Dialogs, base)
	rec := monitor.NewReconciler(opts.View, settings, opts.Detector, base)

	monOpts := monitor.Options{Mapping: mapping}
	if opts.Onboard {
		monOpts.Onboard = opts.Dialogs
	}
	mon := monitor.New(runner, state.NewStore(), rec, monOpts, base)

	sshConfig, err := config.SSHConfigFile()
	if err != nil {
		log.Debug().Err(err).Msg("no ssh config, host suggestions disabled")
	}
	inventory := config.InventoryReader{ConfigPath: settings.Path(), SSHConfigPath: sshConfig}

	log.Info().Str("susops", bin).Str("config", settings.Path()).Msg("engine ready")

	return &engine{
		runner:   runner,
		settings: settings,
		monitor:  mon,
		actions:  actions.New(runner, mon, settings, opts.Dialogs, inventory, base),
		log:      log,
	}, nil
}

func openSettings() (*config.SettingsStore, error) {
	path, err := config.GlobalConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	st, err := config.NewSettingsStore(path, zlog.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return st, nil
}

// followConfig reloads the settings snapshot whenever the config file
// changes on disk and re-renders the icon. onChange, if set, receives each
// fresh snapshot. Watching stops when ctx is done.
func (e *engine) followConfig(ctx context.Context, onChange func(*models.Settings)) error {
	if err := config.EnsureGlobalDir(); err != nil {
		return fmt.Errorf("failed to create %s: %w", config.GlobalDirName, err)
	}
	w, err := watcher.New(e.settings.Path(), watcher.DefaultDebounce, zlog.Logger)
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	if err := w.Start(); err != nil {
		w.Stop()
		return fmt.Errorf("failed to watch config: %w", err)
	}

	go func() {
		defer w.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events():
				if !ok {
					return
				}
				s, err := e.settings.Reload()
				if err != nil {
					e.log.Warn().Err(err).Str("path", ev.Path).Msg("failed to reload settings")
					continue
				}
				e.log.Debug().Str("op", ev.Op.String()).Msg("config changed")
				e.monitor.RefreshIcon()
				if onChange != nil {
					onChange(s)
				}
			}
		}
	}()
	return nil
}
