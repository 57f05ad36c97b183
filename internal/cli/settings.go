package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/susops/susops-tray/internal/daemon/actions"
	"github.com/susops/susops-tray/internal/models"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the tray settings",
	Long: `Show or change the tray settings stored in ~/.susops/config.yaml.

Only the tray's own keys are touched; the rest of the file is preserved.
A running tray picks up changes immediately.`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a setting.

Keys:
  pac-port         PAC server port (1-65535)
  logo-style       gear, colored_glasses or colored_s
  stop-on-quit     stop the proxy when the tray quits (yes/no)
  ephemeral-ports  pick random ports on every start (yes/no)`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: settingKeys(),
	RunE:      runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsShowCmd)
}

// settingSetters apply one textual value to a settings snapshot.
var settingSetters = map[string]func(s *models.Settings, value string) (*models.Settings, error){
	"pac-port": func(s *models.Settings, value string) (*models.Settings, error) {
		if !actions.IsPort(value) {
			return nil, &actions.ValidationError{Field: "PAC server port", Reason: actions.ReasonPort}
		}
		port, _ := strconv.Atoi(value)
		return s.WithPACServerPort(port), nil
	},
	"logo-style": func(s *models.Settings, value string) (*models.Settings, error) {
		style, err := models.ParseLogoStyle(value)
		if err != nil {
			return nil, err
		}
		return s.WithLogoStyle(style), nil
	},
	"stop-on-quit": func(s *models.Settings, value string) (*models.Settings, error) {
		v, err := parseYesNo(value)
		if err != nil {
			return nil, err
		}
		return s.WithStopOnQuit(v), nil
	},
	"ephemeral-ports": func(s *models.Settings, value string) (*models.Settings, error) {
		v, err := parseYesNo(value)
		if err != nil {
			return nil, err
		}
		return s.WithEphemeralPorts(v), nil
	},
}

func settingKeys() []string {
	keys := make([]string, 0, len(settingSetters))
	for k := range settingSetters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// applySetting returns a copy of s with key set to value.
func applySetting(s *models.Settings, key, value string) (*models.Settings, error) {
	set, ok := settingSetters[key]
	if !ok {
		return nil, fmt.Errorf("unknown setting %q (valid: %s)", key, strings.Join(settingKeys(), ", "))
	}
	return set(s, strings.TrimSpace(value))
}

func parseYesNo(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "1", "y", "yes", "true", "on":
		return true, nil
	case "0", "n", "no", "false", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid value %q: expected yes or no", value)
	}
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	st, err := openSettings()
	if err != nil {
		return err
	}
	s := st.Current()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  %s %s\n", styleBrand.Render("Settings"), styleHint.Render(st.Path()))
	rows := []struct{ label, value string }{
		{"PAC server port", strconv.Itoa(s.PACServerPort)},
		{"Logo style     ", s.LogoStyle.Label()},
		{"Stop on quit   ", yesNo(s.StopOnQuit)},
		{"Ephemeral ports", yesNo(s.EphemeralPorts)},
		{"Exit code map  ", "v" + strconv.Itoa(s.MappingVersion)},
	}
	for _, r := range rows {
		fmt.Fprintf(out, "    %s  %s\n", styleLabel.Render(r.label), styleValue.Render(r.value))
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	st, err := openSettings()
	if err != nil {
		return err
	}

	next, err := applySetting(st.Current(), args[0], args[1])
	if err != nil {
		return err
	}
	if err := st.Save(next); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), styleSuccess.Render("Settings saved."))
	if args[0] == "ephemeral-ports" || args[0] == "pac-port" {
		fmt.Fprintln(cmd.OutOrStdout(), styleHint.Render("Restart the proxy to apply the change."))
	}
	return nil
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
