package cli

import (
	"os"
	"os/signal"
	"syscall"

	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/susops/susops-tray/internal/appearance"
	"github.com/susops/susops-tray/internal/buildinfo"
	"github.com/susops/susops-tray/internal/tui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show the proxy state in the terminal",
	Long: `Show the proxy state in the terminal and control it from the keyboard.

Keys: s start, x stop, r restart, t test all, q quit.
When stdout is not a terminal, state changes are printed as log lines.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(contextOrBackground(cmd.Context()), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if !tui.IsTerminal(os.Stdout) {
		view := tui.NewLogView(zlog.Logger)
		eng, err := newEngine(engineOptions{View: view, Dialogs: view, Detector: appearance.Static(appearance.Light)})
		if err != nil {
			return err
		}
		return eng.monitor.Run(ctx)
	}

	bridge := tui.NewBridge()
	eng, err := newEngine(engineOptions{View: bridge, Dialogs: bridge, Detector: appearance.Static(appearance.Light)})
	if err != nil {
		return err
	}
	if err := eng.followConfig(ctx, nil); err != nil {
		eng.log.Debug().Err(err).Msg("config changes will not be picked up")
	}

	return tui.Run(ctx, bridge, tui.Options{
		Actions: eng.actions,
		Poll:    eng.monitor.Run,
		Version: buildinfo.Version,
	})
}
