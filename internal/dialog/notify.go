package dialog

import (
	"github.com/gen2brain/beeep"
	"github.com/rs/zerolog"
)

// Notifier posts non-blocking desktop notifications.
type Notifier interface {
	Notify(title, message string)
}

// Desktop sends notifications through the platform notification center.
type Desktop struct {
	iconPath string
	log      zerolog.Logger
}

// NewDesktop creates a notifier. iconPath may be empty.
func NewDesktop(iconPath string, logger zerolog.Logger) *Desktop {
	return &Desktop{iconPath: iconPath, log: logger.With().Str("module", "notify").Logger()}
}

// Notify implements Notifier. Failures are logged and otherwise ignored.
func (d *Desktop) Notify(title, message string) {
	if err := beeep.Notify(title, message, d.iconPath); err != nil {
		d.log.Warn().Err(err).Str("title", title).Msg("notification failed")
	}
}

// Silent drops every notification.
type Silent struct{}

// Notify implements Notifier.
func (Silent) Notify(string, string) {}
