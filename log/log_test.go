package log_test

import (
	"log/slog"
	"testing"

	"github.com/ghettovoice/countdown/log"
)

func TestDefault(t *testing.T) {
	if log.Default() == nil {
		t.Fatal("log.Default() = nil, want logger")
	}
}

func TestSetDefault(t *testing.T) {
	orig := log.Default()
	t.Cleanup(func() { log.SetDefault(orig) })

	custom := slog.New(slog.DiscardHandler)
	log.SetDefault(custom)

	if got := log.Default(); got != custom {
		t.Fatalf("log.Default() = %v, want the custom logger", got)
	}

	// nil resets back to the package default
	log.SetDefault(nil)

	if got := log.Default(); got == custom || got == nil {
		t.Fatalf("log.Default() after reset = %v, want the package default", got)
	}
}
