package cli

import (
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/susops/susops-tray/internal/config"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Quit a running menu bar app",
	Long: `Quit a running menu bar app.

The app handles this like a click on Quit, so the proxy is stopped as
well when "stop on quit" is enabled.`,
	Args: cobra.NoArgs,
	RunE: runStop,
}

func runStop(cmd *cobra.Command, args []string) error {
	running, info, err := config.IsTrayRunning()
	if err != nil {
		return fmt.Errorf("failed to check for a running instance: %w", err)
	}

	if !running || info == nil {
		fmt.Println("susops-tray is not running.")
		return nil
	}

	process, err := os.FindProcess(info.PID)
	if err != nil {
		return fmt.Errorf("failed to find process %d: %w", info.PID, err)
	}
	if err := process.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("failed to send stop signal: %w", err)
	}

	// Poll for shutdown (max 10 seconds, quitting may stop the proxy first)
	for i := 0; i < 100; i++ {
		time.Sleep(100 * time.Millisecond)
		stillRunning, _, err := config.IsTrayRunning()
		if err == nil && !stillRunning {
			fmt.Println(styleSuccess.Render("susops-tray stopped."))
			return nil
		}
	}

	return fmt.Errorf("susops-tray (PID %d) did not stop within timeout", info.PID)
}
