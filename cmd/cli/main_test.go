package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/attrinspect/internal/testutil"
)

func TestRun_PanicRecovery(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// A config file with a syntax error is guaranteed to cause a panic during
	// the loading phase inside app.NewApp().
	tempDir := t.TempDir()
	schemaPath := testutil.WriteSchema(t, tempDir)
	cfgPath := testutil.WriteFile(t, tempDir, "main.hcl", `
		window {
			tab = "node"
		// Missing closing brace here
	`)

	args := []string{"-schema", schemaPath, "-config", cfgPath}
	out := &bytes.Buffer{}

	// --- Act ---
	runErr := run(context.Background(), out, &bytes.Buffer{}, args)

	// --- Assert ---
	require.Error(t, runErr, "run() should have returned an error after recovering from a panic")

	errStr := runErr.Error()
	require.True(t, strings.Contains(errStr, "application startup panicked"), "The error message should indicate that a panic was recovered.")
	require.True(t, strings.Contains(errStr, "failed to parse"), "The error message should contain the underlying reason for the panic.")
}

func TestRun_MissingSchemaPanics(t *testing.T) {
	t.Parallel()

	args := []string{"-schema", t.TempDir() + "/attributes.xml"}

	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, args)

	require.Error(t, err)
	require.Contains(t, err.Error(), "application startup panicked | failed to load attribute schema")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, &bytes.Buffer{}, args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Providing an unknown flag will cause cli.Parse to return an error.
	args := []string{"--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, &bytes.Buffer{}, args)

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_Dump(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	tempDir := t.TempDir()
	schemaPath := testutil.WriteSchema(t, tempDir)
	docPath := testutil.WriteFile(t, tempDir, "sample.gv", testutil.SampleDOT)
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, &bytes.Buffer{}, []string{"-schema", schemaPath, "-dump", docPath})

	// --- Assert ---
	require.NoError(t, err)
	require.Contains(t, out.String(), "Attributes of sample.gv")
	require.Contains(t, out.String(), "Edge Attributes")
}
