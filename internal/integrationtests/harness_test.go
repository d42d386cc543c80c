package integration_tests

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/attrinspect/internal/app"
	"github.com/vk/attrinspect/internal/cli"
	"github.com/vk/attrinspect/internal/hcl"
	"github.com/vk/attrinspect/internal/testutil"
)

// harnessResult holds everything one end-to-end run produced.
type harnessResult struct {
	App       *app.App
	Dir       string
	Output    string
	LogOutput string
	Err       error
}

// runIntegrationTest writes files into a temporary directory, parses args as
// the CLI would (with the directory substituted for every "{dir}" prefix) and
// runs the app. Startup panics are captured into Err.
func runIntegrationTest(t *testing.T, files map[string]string, args ...string) *harnessResult {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		testutil.WriteFile(t, dir, name, content)
	}
	for i, a := range args {
		if len(a) >= 5 && a[:5] == "{dir}" {
			args[i] = filepath.Join(dir, a[5:])
		}
	}

	out := &testutil.SafeBuffer{}
	logs := &testutil.SafeBuffer{}
	result := &harnessResult{Dir: dir}

	t.Cleanup(func() {
		if os.Getenv("ATTRINSPECT_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})

	cfg, exit, err := cli.Parse(append([]string{"-log-level", "debug"}, args...), out)
	require.NoError(t, err)
	require.False(t, exit)

	func() {
		defer func() {
			if r := recover(); r != nil {
				result.Err = fmt.Errorf("application startup panicked | %v", r)
			}
		}()
		result.App = app.NewApp(out, logs, cfg, hcl.NewLoader())
		result.Err = result.App.Run(context.Background())
	}()

	result.Output = out.String()
	result.LogOutput = logs.String()
	return result
}
