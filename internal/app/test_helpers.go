package app

import (
	"os"
	"testing"

	"github.com/vk/attrinspect/internal/hcl"
	"github.com/vk/attrinspect/internal/testutil"
)

// SetupAppTest creates a new app instance for system testing. Reports and
// logs are captured in separate buffers.
func SetupAppTest(t *testing.T, appConfig *Config) (*App, *testutil.SafeBuffer, *testutil.SafeBuffer) {
	t.Helper()

	outBuffer := &testutil.SafeBuffer{}
	logBuffer := &testutil.SafeBuffer{}
	appConfig.LogLevel = "debug"
	testApp := NewApp(outBuffer, logBuffer, appConfig, hcl.NewLoader())

	t.Cleanup(func() {
		if os.Getenv("ATTRINSPECT_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, outBuffer, logBuffer
}
