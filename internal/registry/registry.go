package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/attrinspect/internal/attrschema"
	"github.com/vk/attrinspect/internal/ctxlog"
)

// ErrFrozen is returned when a validated registry is populated again.
var ErrFrozen = errors.New("registry is frozen")

// Registry holds the descriptor sets for graph, node and edge attributes.
type Registry struct {
	sets   map[attrschema.Kind]*attrschema.Set
	source string
	frozen bool
}

// New creates and initializes a new, empty Registry instance.
func New() *Registry {
	return &Registry{
		sets: make(map[attrschema.Kind]*attrschema.Set),
	}
}

// PopulateFromSchema runs the schema mapper for every component kind and
// stores the resulting descriptor sets.
func (r *Registry) PopulateFromSchema(ctx context.Context, schema *attrschema.Schema) error {
	logger := ctxlog.FromContext(ctx)
	if r.frozen {
		return ErrFrozen
	}

	for _, kind := range attrschema.Kinds() {
		set, err := schema.Descriptors(kind)
		if err != nil {
			return fmt.Errorf("failed to build %s descriptors: %w", kind, err)
		}
		r.sets[kind] = set
		logger.Debug("Descriptor set built.", "kind", kind.String(), "count", set.Len())
	}
	r.source = schema.Path()
	return nil
}

// Register stores a prebuilt descriptor set, replacing any previous set of
// the same kind.
func (r *Registry) Register(set *attrschema.Set) error {
	if r.frozen {
		return ErrFrozen
	}
	r.sets[set.Kind()] = set
	return nil
}

// Set returns the descriptor set of kind, or an empty set if none was
// registered.
func (r *Registry) Set(kind attrschema.Kind) *attrschema.Set {
	if set, ok := r.sets[kind]; ok {
		return set
	}
	return attrschema.NewSet(kind)
}

// Lookup returns the descriptor named name within kind.
func (r *Registry) Lookup(kind attrschema.Kind, name string) (*attrschema.Descriptor, bool) {
	set, ok := r.sets[kind]
	if !ok {
		return nil, false
	}
	return set.Lookup(name)
}

// Source returns the path of the schema the registry was populated from.
func (r *Registry) Source() string {
	return r.source
}

// Frozen reports whether the registry passed validation.
func (r *Registry) Frozen() bool {
	return r.frozen
}
