// Package cli implements the takitaro command-line interface.
//
// The CLI is built using cobra and reports progress through the
// charmbracelet/log library. User-facing status lines (successes, warnings
// and written files) go to stdout; logs go to stderr.
//
// # Commands
//
// The main commands are:
//   - export: Write one animated SVG per layer of an Inkscape drawing
//   - plan: Show the files export would write without writing them
//   - cache: Manage the path measurement cache
//
// # Configuration
//
// Export defaults can be kept in a TOML file (--config, or
// ~/.config/takitaro/config.toml). Flags given on the command line take
// precedence over the file.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// reports per-step and cache events. Loggers are passed through
// context.Context to the event hooks.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a leveled logger writing to w with short wall-clock
// timestamps ("14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one command and logs its outcome, e.g.
// "Exported 3 files (1.234s)".
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type loggerKey struct{}

// withLogger attaches l to ctx so the export and cache hooks can log through
// the command's logger.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() for contexts that did not pass through the root command.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
