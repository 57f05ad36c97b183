package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/susops/susops-tray/internal/appearance"
	"github.com/susops/susops-tray/internal/buildinfo"
	"github.com/susops/susops-tray/internal/config"
	"github.com/susops/susops-tray/internal/daemon/monitor"
	"github.com/susops/susops-tray/internal/daemon/tray"
	"github.com/susops/susops-tray/internal/dialog"
	"github.com/susops/susops-tray/internal/logging"
	"github.com/susops/susops-tray/internal/models"
	"github.com/susops/susops-tray/internal/tui"
)

var flagForeground bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the menu bar app",
	Long: `Start the menu bar app.

With --foreground no menu is shown: the state machine runs headless and
state changes are written to the log. Only one instance may run at a time.`,
	Args: cobra.NoArgs,
	RunE: runTray,
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&flagForeground, "foreground", false, "run headless with log output (no menu bar icon)")
}

func runTray(cmd *cobra.Command, args []string) error {
	log := logging.Module("tray")

	if err := config.EnsureGlobalDir(); err != nil {
		return fmt.Errorf("failed to create %s: %w", config.GlobalDirName, err)
	}

	running, info, err := config.IsTrayRunning()
	if err != nil {
		return fmt.Errorf("failed to check for a running instance: %w", err)
	}
	if running {
		return fmt.Errorf("susops-tray is already running (PID %d)", info.PID)
	}

	if flagForeground {
		log.Info().Msg("running in foreground mode (no menu bar icon)")
		return runForeground(cmd.Context())
	}
	log.Info().Msg("running with menu bar icon")
	return runWithTray(cmd.Context())
}

// runForeground runs the state machine without a menu, blocking on signals.
func runForeground(parent context.Context) error {
	ctx, stop := signal.NotifyContext(contextOrBackground(parent), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	view := tui.NewLogView(zlog.Logger)
	eng, err := newEngine(engineOptions{
		View:     view,
		Dialogs:  view,
		Detector: appearance.System{},
	})
	if err != nil {
		return err
	}

	if err := registerInstance(eng); err != nil {
		return err
	}
	defer unregisterInstance(eng)

	if err := eng.followConfig(ctx, nil); err != nil {
		eng.log.Warn().Err(err).Msg("config changes will not be picked up")
	}

	err = eng.monitor.Run(ctx)
	eng.actions.Quit(context.Background())
	return err
}

// runWithTray runs the menu bar app. systray.Run must occupy the main
// goroutine on macOS (Cocoa requirement).
func runWithTray(parent context.Context) error {
	ctx, cancel := context.WithCancel(contextOrBackground(parent))
	defer cancel()

	log := logging.Module("tray")
	dialogs := dialog.NewAppleScript(nil, zlog.Logger)
	view := tray.NewView()
	notifier := tray.NewStateNotifier(dialog.NewDesktop("", zlog.Logger))

	eng, err := newEngine(engineOptions{
		View:     monitor.Views{view, notifier},
		Dialogs:  dialogs,
		Detector: appearance.System{},
		Onboard:  true,
	})
	if err != nil {
		return err
	}

	onStart := func() {
		if err := registerInstance(eng); err != nil {
			log.Error().Err(err).Msg("failed to record instance")
		}

		if err := eng.followConfig(ctx, view.SyncSettings); err != nil {
			log.Warn().Err(err).Msg("config changes will not be picked up")
		}

		go func() {
			if err := eng.monitor.Run(ctx); err != nil {
				log.Error().Err(err).Msg("monitor stopped")
			}
		}()

		// Handle OS signals: quit tray on SIGINT/SIGTERM
		go func() {
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)
			select {
			case sig := <-sigCh:
				log.Info().Str("signal", sig.String()).Msg("shutting down")
				eng.actions.Quit(context.Background())
				tray.Quit()
			case <-ctx.Done():
			}
		}()
	}

	onExit := func() {
		cancel()
		unregisterInstance(eng)
		log.Info().Msg("stopped")
	}

	// This blocks the main goroutine until tray exits.
	tray.Run(tray.App{
		Ctx:      ctx,
		View:     view,
		Actions:  eng.actions,
		Settings: eng.settings,
		Version:  buildinfo.Version,
		Log:      log,
	}, onStart, onExit)
	return nil
}

func registerInstance(eng *engine) error {
	info := models.NewTrayInfo(os.Getpid(), eng.runner.Binary())
	if err := config.SaveTrayInfo(info); err != nil {
		return fmt.Errorf("failed to write instance info: %w", err)
	}
	eng.log.Info().Int("pid", info.PID).Msg("instance registered")
	return nil
}

func unregisterInstance(eng *engine) {
	if err := config.RemoveTrayInfo(); err != nil {
		eng.log.Warn().Err(err).Msg("failed to remove instance info")
	}
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
