// Package cli implements the toric command-line interface.
//
// Five commands cover the lifecycle of an integer program: solve
// completes the Gröbner basis of its lattice ideal, optimize walks a
// feasible point down to its fiber optimum, fiber enumerates and
// renders a fiber, serve exposes the job API over HTTP, and cache
// maintains the local basis store.
//
// Logging is structured through charmbracelet/log. Every command
// receives a logger via its context; --verbose (-v) switches it to
// debug level.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger builds the logger all commands share: millisecond
// timestamps, messages filtered at level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	opts := log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
	}
	return log.NewWithOptions(w, opts)
}

// progress stamps the start of a long operation so its completion line
// can report the elapsed time, e.g. "Completed basis with 3 vectors (1.2s)".
type progress struct {
	logger *log.Logger
	began  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, began: time.Now()}
}

func (p *progress) done(msg string) {
	elapsed := time.Since(p.began).Round(time.Millisecond)
	p.logger.Infof("%s (%s)", msg, elapsed)
}

// loggerKey is the context key for the command logger.
type loggerKey struct{}

// withLogger attaches l to ctx for loggerFromContext to find.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger attached to ctx, or the package
// default when the context carries none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
