package dropbubble

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/gg"
)

// nopHandler discards every record. Enabled reports false so callers skip
// formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger for this package and for the gg raster
// backend. By default nothing is logged. Pass nil to silence logging again.
//
// Levels used:
//   - [slog.LevelDebug]: session transitions, ignored pointer events, frame stats
//   - [slog.LevelInfo]: overlay attach/remove, listener notifications
//   - [slog.LevelWarn]: recoverable host problems (screenshot and config I/O)
func SetLogger(l *slog.Logger) {
	gg.SetLogger(l)
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current package logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
