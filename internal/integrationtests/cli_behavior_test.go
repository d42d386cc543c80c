package integration_tests

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/attrinspect/internal/testutil"
)

func TestCLI_DumpDocument(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"attributes.xml": testutil.SampleSchema,
		"flow.gv":        testutil.SampleDOT,
	}

	// --- Act ---
	result := runIntegrationTest(t, files, "-schema", "{dir}/attributes.xml", "{dir}/flow.gv")

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.True(t, strings.HasPrefix(result.Output, "Attributes of flow.gv\n"))
	assert.Regexp(t, `(?m)^\*\s+color\s+red\s+black$`, result.Output)
	assert.Contains(t, result.LogOutput, "Document opened.")
}

func TestCLI_DescribeUnknownAttribute(t *testing.T) {
	t.Parallel()

	files := map[string]string{"attributes.xml": testutil.SampleSchema}

	result := runIntegrationTest(t, files, "-schema", "{dir}/attributes.xml", "describe", "penwidth")

	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), `"penwidth"`)
}

func TestCLI_SchemaWithoutEdgeType(t *testing.T) {
	t.Parallel()

	// A schema lacking one component type still starts: the tab is empty.
	start := strings.Index(testutil.SampleSchema, `<xsd:complexType name="edge">`)
	end := strings.Index(testutil.SampleSchema[start:], `</xsd:complexType>`) + start + len(`</xsd:complexType>`)
	schema := testutil.SampleSchema[:start] + testutil.SampleSchema[end:]
	files := map[string]string{"attributes.xml": schema}

	result := runIntegrationTest(t, files, "-schema", "{dir}/attributes.xml")

	require.NoError(t, result.Err)
	assert.Contains(t, result.LogOutput, "Schema declares no attributes for component kind.")
	assert.Contains(t, result.Output, "Edge Attributes")
}

func TestCLI_InvalidSchemaPanics(t *testing.T) {
	t.Parallel()

	files := map[string]string{"attributes.xml": "<html><body/></html>"}

	result := runIntegrationTest(t, files, "-schema", "{dir}/attributes.xml")

	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "application startup panicked | failed to load attribute schema")
}
