package integration_tests

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"github.com/vk/attrinspect/internal/attrschema"
	"github.com/vk/attrinspect/internal/testutil"
)

func ptr(s string) *string { return &s }

// TestLoader_SchemaToDescriptors verifies that the schema named in a config
// file is turned into the descriptor sets the window reads from.
func TestLoader_SchemaToDescriptors(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"share/attributes.xml": testutil.SampleSchema,
		"attrinspect.hcl": `
schema = "${base_dir}/share/attributes.xml"
`,
	}

	// --- Act ---
	result := runIntegrationTest(t, files, "-config", "{dir}/attrinspect.hcl", "-dump")

	// --- Assert ---
	require.NoError(t, result.Err)
	require.Contains(t, result.LogOutput, "Attribute schema loaded.")
	require.Contains(t, result.LogOutput, "Registry validation passed.")

	want := []*attrschema.Descriptor{
		{
			Kind:          attrschema.KindEdge,
			Name:          "arrowhead",
			Default:       ptr("normal"),
			AllowedValues: []string{"normal", "dot", "none"},
		},
		{
			Kind:    attrschema.KindEdge,
			Name:    "color",
			Default: ptr("black"),
		},
		{
			Kind:          attrschema.KindEdge,
			Name:          "constraint",
			Default:       ptr("true"),
			AllowedValues: []string{"false", "true"},
		},
		{
			Kind:    attrschema.KindEdge,
			Name:    "weight",
			Default: ptr("1"),
		},
	}
	got := result.App.Registry().Set(attrschema.KindEdge).All()
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("edge descriptors mismatch (-want +got):\n%s", diff)
	}

	rankdir, ok := result.App.Registry().Lookup(attrschema.KindGraph, "rankdir")
	require.True(t, ok)
	wantRankdir := &attrschema.Descriptor{
		Kind:          attrschema.KindGraph,
		Name:          "rankdir",
		Default:       ptr("TB"),
		Description:   ptr("Sets direction of graph layout.\r\nFor example, if rankdir=\"LR\", the graph is laid out from left to right."),
		AllowedValues: []string{"TB", "LR", "BT", "RL"},
	}
	if diff := cmp.Diff(wantRankdir, rankdir); diff != "" {
		t.Errorf("rankdir descriptor mismatch (-want +got):\n%s", diff)
	}
}
