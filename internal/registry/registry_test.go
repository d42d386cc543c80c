package registry

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/attrinspect/internal/attrschema"
	"github.com/vk/attrinspect/internal/testutil"
)

func TestPopulateFromSchema(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx, _ := testutil.NewLoggerContext(t)
	schema, err := attrschema.Parse(strings.NewReader(testutil.SampleSchema))
	require.NoError(t, err)
	reg := New()

	// --- Act ---
	err = reg.PopulateFromSchema(ctx, schema)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []string{"rankdir", "bgcolor", "center", "label"}, reg.Set(attrschema.KindGraph).Names())
	assert.Equal(t, []string{"shape", "color", "fixedsize", "label"}, reg.Set(attrschema.KindNode).Names())
	assert.Equal(t, []string{"arrowhead", "color", "constraint", "weight"}, reg.Set(attrschema.KindEdge).Names())

	d, ok := reg.Lookup(attrschema.KindNode, "shape")
	require.True(t, ok)
	assert.Equal(t, "ellipse", d.DefaultValue())

	_, ok = reg.Lookup(attrschema.KindEdge, "shape")
	assert.False(t, ok, "node attributes must not leak into the edge set")
}

func TestValidate_FreezesRegistry(t *testing.T) {
	t.Parallel()

	ctx, _ := testutil.NewLoggerContext(t)
	schema, err := attrschema.Parse(strings.NewReader(testutil.SampleSchema))
	require.NoError(t, err)
	reg := New()
	require.NoError(t, reg.PopulateFromSchema(ctx, schema))

	require.NoError(t, reg.Validate(ctx))
	assert.True(t, reg.Frozen())

	err = reg.PopulateFromSchema(ctx, schema)
	assert.True(t, errors.Is(err, ErrFrozen))
	assert.True(t, errors.Is(reg.Register(attrschema.NewSet(attrschema.KindGraph)), ErrFrozen))
}

func TestValidate_Errors(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx, logs := testutil.NewLoggerContext(t)
	reg := New()

	node := attrschema.NewSet(attrschema.KindNode)
	node.Add(&attrschema.Descriptor{Kind: attrschema.KindNode, Name: "shape"})
	node.Add(&attrschema.Descriptor{Kind: attrschema.KindNode, Name: "shape"})
	require.NoError(t, reg.Register(node))

	bad := "hexagon"
	edge := attrschema.NewSet(attrschema.KindEdge)
	edge.Add(&attrschema.Descriptor{Kind: attrschema.KindEdge, Name: "dir", Default: &bad, AllowedValues: []string{"forward", "back"}})
	require.NoError(t, reg.Register(edge))

	// --- Act ---
	err := reg.Validate(ctx)

	// --- Assert ---
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registry validation failed")
	assert.Contains(t, err.Error(), "kind 'graph': no descriptor set registered")
	assert.NotContains(t, err.Error(), "shape", "a repeated attribute is only a warning")
	assert.NotContains(t, err.Error(), "dir", "a default outside the enumeration is only a warning")
	assert.Contains(t, logs.String(), "Attribute is declared more than once.")
	assert.Contains(t, logs.String(), "Default value is not one of the allowed values.")
	assert.False(t, reg.Frozen())
}

func TestValidate_RepeatedAttributeKeepsFirst(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx, logs := testutil.NewLoggerContext(t)
	src := strings.Replace(testutil.SampleSchema,
		`<xsd:attribute ref="shape" default="ellipse"/>`,
		`<xsd:attribute ref="shape" default="ellipse"/><xsd:attribute ref="shape" default="box"/>`, 1)
	schema, err := attrschema.Parse(strings.NewReader(src))
	require.NoError(t, err)
	reg := New()
	require.NoError(t, reg.PopulateFromSchema(ctx, schema))

	// --- Act ---
	err = reg.Validate(ctx)

	// --- Assert ---
	require.NoError(t, err)
	assert.True(t, reg.Frozen())
	assert.Contains(t, logs.String(), "Attribute is declared more than once.")
	d, ok := reg.Lookup(attrschema.KindNode, "shape")
	require.True(t, ok)
	assert.Equal(t, "ellipse", d.DefaultValue())
}

func TestSet_UnknownKindIsEmpty(t *testing.T) {
	t.Parallel()

	reg := New()
	set := reg.Set(attrschema.KindEdge)

	require.NotNil(t, set)
	assert.Equal(t, 0, set.Len())
	assert.Equal(t, attrschema.KindEdge, set.Kind())
}
