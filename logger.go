package gef

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for gef and all its sub-packages.
// By default, gef produces no log output. Pass nil to restore the silent
// default.
//
// Log levels used by gef:
//   - [slog.LevelDebug]: anchor attach and detach, position recomputation,
//     outline fallbacks
//   - [slog.LevelInfo]: diagram loading and rendering
//   - [slog.LevelWarn]: connection ends that could not be anchored
//
// Example:
//
//	gef.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Sub-packages call it at log time, so
// a logger set after an anchor was created still takes effect.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
