package testutil

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/vk/attrinspect/internal/ctxlog"
)

// NewLoggerContext returns a context carrying a debug-level text logger that
// writes into the returned buffer. Setting ATTRINSPECT_TEST_LOGS=true dumps
// the buffer at the end of the test.
func NewLoggerContext(t *testing.T) (context.Context, *SafeBuffer) {
	t.Helper()

	logBuffer := &SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(logBuffer, &slog.HandlerOptions{Level: slog.LevelDebug}))

	t.Cleanup(func() {
		if os.Getenv("ATTRINSPECT_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return ctxlog.WithLogger(context.Background(), logger), logBuffer
}
