// Package appearance detects whether the desktop uses a light or dark theme.
package appearance

import (
	"context"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// Appearance is the desktop theme.
type Appearance string

// Desktop themes.
const (
	Light Appearance = "LIGHT"
	Dark  Appearance = "DARK"
)

// Detector reports the current desktop appearance.
type Detector interface {
	Current() Appearance
}

// Static always reports the same appearance.
type Static Appearance

// Current implements Detector.
func (s Static) Current() Appearance {
	return Appearance(s)
}

// System asks the operating system. On macOS the global
// AppleInterfaceStyle default is "Dark" in dark mode and absent otherwise.
// Other platforms report Light.
type System struct {
	// Read runs the query; nil uses `defaults read -g AppleInterfaceStyle`.
	Read func(ctx context.Context) (string, error)
}

// Current implements Detector.
func (s System) Current() Appearance {
	read := s.Read
	if read == nil {
		if runtime.GOOS != "darwin" {
			return Light
		}
		read = readInterfaceStyle
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	out, err := read(ctx)
	if err != nil {
		return Light
	}
	return Parse(out)
}

// Parse maps an interface style string to an appearance.
func Parse(style string) Appearance {
	if strings.Contains(strings.ToLower(style), "dark") {
		return Dark
	}
	return Light
}

func readInterfaceStyle(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "defaults", "read", "-g", "AppleInterfaceStyle").Output()
	return string(out), err
}
