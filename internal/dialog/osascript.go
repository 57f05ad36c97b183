package dialog

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

// ErrCancelled is returned by a script the user dismissed with Cancel.
var ErrCancelled = errors.New("user cancelled")

// ScriptFunc runs an AppleScript and returns its trimmed output.
type ScriptFunc func(ctx context.Context, script string) (string, error)

// AppleScript shows native macOS dialogs through osascript.
type AppleScript struct {
	run ScriptFunc
	log zerolog.Logger
}

// NewAppleScript creates macOS dialogs. run may be nil to use osascript.
func NewAppleScript(run ScriptFunc, logger zerolog.Logger) *AppleScript {
	if run == nil {
		run = Osascript
	}
	return &AppleScript{run: run, log: logger.With().Str("module", "dialog").Logger()}
}

// Osascript runs script with /usr/bin/osascript. A dialog closed with the
// cancel button yields ErrCancelled.
func Osascript(ctx context.Context, script string) (string, error) {
	cmd := exec.CommandContext(ctx, "osascript", "-e", script)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && strings.Contains(string(exitErr.Stderr), "-128") {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("osascript: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Alert implements Dialogs.
func (a *AppleScript) Alert(title, message string) {
	script := fmt.Sprintf(`display alert %s message %s`, quote(title), quote(message))
	if _, err := a.exec(script); err != nil && !errors.Is(err, ErrCancelled) {
		a.log.Error().Err(err).Str("title", title).Msg(message)
	}
}

// Confirm implements Dialogs.
func (a *AppleScript) Confirm(title, message, ok, cancel string) bool {
	script := fmt.Sprintf(
		`display alert %s message %s buttons {%s, %s} default button %s cancel button %s`,
		quote(title), quote(message), quote(cancel), quote(ok), quote(ok), quote(cancel))
	out, err := a.exec(script)
	if err != nil {
		return false
	}
	return field(out, "button returned") == ok
}

// Prompt implements Dialogs.
func (a *AppleScript) Prompt(title, message, def string) (string, bool) {
	script := fmt.Sprintf(
		`display dialog %s with title %s default answer %s buttons {"Cancel", "OK"} default button "OK"`,
		quote(message), quote(title), quote(def))
	out, err := a.exec(script)
	if err != nil {
		return def, false
	}
	return strings.TrimSpace(field(out, "text returned")), true
}

// Choose implements Dialogs.
func (a *AppleScript) Choose(title, message string, items []string) (string, bool) {
	if len(items) == 0 {
		return "", false
	}
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = quote(item)
	}
	script := fmt.Sprintf(`choose from list {%s} with title %s with prompt %s default items {%s}`,
		strings.Join(quoted, ", "), quote(title), quote(message), quoted[0])
	out, err := a.exec(script)
	if err != nil || out == "false" {
		return "", false
	}
	return out, true
}

func (a *AppleScript) exec(script string) (string, error) {
	out, err := a.run(context.Background(), script)
	if err != nil && !errors.Is(err, ErrCancelled) {
		a.log.Warn().Err(err).Msg("dialog failed")
	}
	return out, err
}

// quote renders s as an AppleScript string literal.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}

// field extracts a value from osascript record output such as
// "button returned:OK, text returned:foo". The text field is last, so it
// may itself contain commas.
func field(out, name string) string {
	prefix := name + ":"
	i := strings.Index(out, prefix)
	if i < 0 {
		return ""
	}
	rest := out[i+len(prefix):]
	if name == "text returned" {
		return rest
	}
	if j := strings.Index(rest, ", "); j >= 0 {
		return rest[:j]
	}
	return rest
}
