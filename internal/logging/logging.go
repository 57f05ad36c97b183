// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options controls logger output.
type Options struct {
	Level string // trace, debug, info, warn, error
	JSON  bool
	Out   io.Writer
}

// Setup builds the root logger, installs it as the global zerolog logger and
// returns it.
func Setup(opts Options) (zerolog.Logger, error) {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = parsed
	}

	var logger zerolog.Logger
	if opts.JSON {
		logger = zerolog.New(out).With().Timestamp().Logger()
	} else {
		cw := zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly, NoColor: !colorable(out)}
		logger = zerolog.New(cw).With().Timestamp().Logger()
	}
	logger = logger.Level(level)

	zerolog.SetGlobalLevel(level)
	log.Logger = logger
	return logger, nil
}

// colorable reports whether out is a terminal that understands colors.
func colorable(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Module returns a child of the global logger tagged with a component name.
func Module(name string) zerolog.Logger {
	return log.Logger.With().Str("module", name).Logger()
}
