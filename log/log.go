// Package log manages the default logger of the library.
package log

import (
	"log/slog"
	"sync/atomic"

	intlog "github.com/ghettovoice/countdown/internal/log"
)

var def atomic.Pointer[slog.Logger]

func init() {
	def.Store(intlog.Def)
}

// Default returns the logger used by the library objects
// when no logger is provided in options.
func Default() *slog.Logger { return def.Load() }

// SetDefault replaces the default logger.
// Nil logger resets the default logger back to the initial one.
func SetDefault(l *slog.Logger) {
	if l == nil {
		l = intlog.Def
	}
	def.Store(l)
}
