package models

import (
	"fmt"
	"strings"

	"github.com/creasty/defaults"
)

// LogoStyle selects the icon set shown in the menu bar.
type LogoStyle string

// Known logo styles, in the order they are offered in the settings menu.
const (
	LogoStyleGear           LogoStyle = "GEAR"
	LogoStyleColoredGlasses LogoStyle = "COLORED_GLASSES"
	LogoStyleColoredS       LogoStyle = "COLORED_S"
)

// DefaultLogoStyle is used when the configured style is absent or unknown.
const DefaultLogoStyle = LogoStyleColoredGlasses

// LogoStyles lists every known logo style.
func LogoStyles() []LogoStyle {
	return []LogoStyle{LogoStyleGear, LogoStyleColoredGlasses, LogoStyleColoredS}
}

// LookupLogoStyle returns the style whose stored name is exactly s.
func LookupLogoStyle(s string) (LogoStyle, bool) {
	for _, style := range LogoStyles() {
		if string(style) == s {
			return style, true
		}
	}
	return "", false
}

// ParseLogoStyle parses a style name typed by a user, ignoring case.
func ParseLogoStyle(s string) (LogoStyle, error) {
	if style, ok := LookupLogoStyle(strings.ToUpper(strings.TrimSpace(s))); ok {
		return style, nil
	}
	return "", fmt.Errorf("unknown logo style %q", s)
}

// Label returns a human readable name for the style.
func (s LogoStyle) Label() string {
	return strings.ReplaceAll(strings.ToLower(string(s)), "_", " ")
}

// Settings is an immutable snapshot of the tray application configuration.
// The values live in ~/.susops/config.yaml next to the CLI's own keys.
// A snapshot is never modified after it has been published; use With* to
// derive a changed copy.
type Settings struct {
	PACServerPort  int       `yaml:"pac_server_port" default:"1081" validate:"min=1,max=65535"`
	LogoStyle      LogoStyle `yaml:"logo_style" default:"COLORED_GLASSES" validate:"oneof=GEAR COLORED_GLASSES COLORED_S"`
	StopOnQuit     bool      `yaml:"stop_on_quit" default:"true"`
	EphemeralPorts bool      `yaml:"ephemeral_ports" default:"true"`
	// MappingVersion selects the exit code contract of the installed CLI.
	MappingVersion int `yaml:"mapping_version" default:"1" validate:"min=1"`
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	s := &Settings{}
	if err := defaults.Set(s); err != nil {
		// Only reachable if the struct tags above are malformed.
		panic(fmt.Sprintf("settings defaults: %v", err))
	}
	return s
}

// WithLogoStyle returns a copy of s using the given logo style.
func (s Settings) WithLogoStyle(style LogoStyle) *Settings {
	s.LogoStyle = style
	return &s
}

// WithStopOnQuit returns a copy of s with StopOnQuit set.
func (s Settings) WithStopOnQuit(v bool) *Settings {
	s.StopOnQuit = v
	return &s
}

// WithEphemeralPorts returns a copy of s with EphemeralPorts set.
func (s Settings) WithEphemeralPorts(v bool) *Settings {
	s.EphemeralPorts = v
	return &s
}

// WithPACServerPort returns a copy of s using the given PAC server port.
func (s Settings) WithPACServerPort(port int) *Settings {
	s.PACServerPort = port
	return &s
}
