package testenv

import (
	"log/slog"
	"os"
	"testing"
)

// Skips tests that wait out real timeouts unless the SLOW environment variable is set.
func SlowTest(t *testing.T) {
	if os.Getenv("SLOW") == "" {
		t.Skip("skipping slow tests: set SLOW environment variable to run")
	}
}

// A logger that writes through [t.Log], so output only shows up for failing tests.
func Logger(t *testing.T) *slog.Logger {
	return slog.New(slog.NewTextHandler(tWriter{t}, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type tWriter struct {
	t *testing.T
}

func (w tWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}
