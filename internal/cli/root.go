// Package cli implements the susops-tray commands.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/susops/susops-tray/internal/logging"
)

var (
	flagSusOps   string
	flagLogLevel string
	flagLogJSON  bool
)

var rootCmd = &cobra.Command{
	Use:   "susops-tray",
	Short: "Menu bar front end for the susops SSH proxy",
	Long: `susops-tray supervises the susops CLI from the menu bar.
It polls the proxy state, keeps the icon and menu in step with it and
runs susops commands on your behalf.

Without a subcommand it starts the menu bar app (same as "run").`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
	RunE:              runTray,
}

// ExitError carries a process exit code out of a command.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return "exit status " + strconv.Itoa(e.Code)
}

// Execute runs the CLI. Errors other than *ExitError are printed.
func Execute() error {
	err := rootCmd.Execute()
	var exitErr *ExitError
	if err != nil && !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, styleError.Render("Error:"), err)
	}
	return err
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagSusOps, "susops", "", "path to the susops CLI (default: $SUSOPS_BIN, app bundle, then $PATH)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	pf.BoolVar(&flagLogJSON, "log-json", false, "log as JSON instead of console text")

	// The root command runs the tray, so it takes the same flags as run.
	addRunFlags(rootCmd)
	addRunFlags(runCmd)

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(watchCmd)
}

func setupLogging(cmd *cobra.Command, args []string) error {
	_, err := logging.Setup(logging.Options{Level: flagLogLevel, JSON: flagLogJSON})
	return err
}
