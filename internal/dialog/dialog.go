// Package dialog shows blocking dialogs and desktop notifications.
//
// Every dialog returns the user's decision as a value; callers never rely on
// window callbacks.
package dialog

import (
	"github.com/rs/zerolog"
)

// Dialogs is the set of synchronous dialogs the application uses.
type Dialogs interface {
	// Alert shows a message and waits until it is dismissed.
	Alert(title, message string)
	// Confirm asks a yes/no question. ok and cancel label the buttons.
	Confirm(title, message, ok, cancel string) bool
	// Prompt asks for a line of text, pre-filled with def. The second
	// result is false when the user cancelled.
	Prompt(title, message, def string) (string, bool)
	// Choose asks the user to pick one of items.
	Choose(title, message string, items []string) (string, bool)
}

// Logging is used when no desktop is available. Alerts are written to the
// log, confirmations are declined and prompts are cancelled.
type Logging struct {
	log zerolog.Logger
}

// NewLogging creates headless dialogs writing to logger.
func NewLogging(logger zerolog.Logger) *Logging {
	return &Logging{log: logger.With().Str("module", "dialog").Logger()}
}

// Alert implements Dialogs.
func (l *Logging) Alert(title, message string) {
	l.log.Info().Str("title", title).Msg(message)
}

// Confirm implements Dialogs.
func (l *Logging) Confirm(title, message, _, _ string) bool {
	l.log.Warn().Str("title", title).Msg("confirmation declined without a desktop: " + message)
	return false
}

// Prompt implements Dialogs.
func (l *Logging) Prompt(title, _, def string) (string, bool) {
	l.log.Warn().Str("title", title).Msg("prompt cancelled without a desktop")
	return def, false
}

// Choose implements Dialogs.
func (l *Logging) Choose(title, _ string, _ []string) (string, bool) {
	l.log.Warn().Str("title", title).Msg("selection cancelled without a desktop")
	return "", false
}
