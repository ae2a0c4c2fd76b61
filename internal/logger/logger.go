// Package logger owns the allocation trace channel. Output is discarded unless
// the HEAPKIT_LOG_ALLOC environment variable is set when the channel is first
// consulted; the decision is cached for the life of the process.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

// EnvAlloc names the environment variable that enables allocation tracing.
const EnvAlloc = "HEAPKIT_LOG_ALLOC"

var (
	out io.Writer = os.Stderr

	allocEnabled = sync.OnceValue(func() bool {
		return os.Getenv(EnvAlloc) != ""
	})

	allocLogger = sync.OnceValue(func() *slog.Logger {
		if !allocEnabled() {
			return nil
		}
		return New(out)
	})
)

// Enabled reports whether allocation tracing was requested.
func Enabled() bool { return allocEnabled() }

// Alloc returns the process-wide allocation trace logger, or nil when tracing
// is disabled. A nil logger means callers skip building log records entirely.
func Alloc() *slog.Logger { return allocLogger() }

// New returns a trace logger writing one text line per record to w.
func New(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Trace lines are read next to each other; wall time is noise.
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
