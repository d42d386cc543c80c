package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/attrinspect/internal/attrschema"
	"github.com/vk/attrinspect/internal/ctxlog"
)

// Validate checks the integrity of the descriptor sets and freezes the
// registry when they pass. Every kind must have a set. Repeated names and
// defaults outside the enumeration are only reported.
func (r *Registry) Validate(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, kind := range attrschema.Kinds() {
		set, ok := r.sets[kind]
		if !ok {
			errs = append(errs, fmt.Sprintf("kind '%s': no descriptor set registered", kind))
			continue
		}
		if set.Len() == 0 {
			logger.Warn("Schema declares no attributes for component kind.", "kind", kind.String())
		}

		// Lookups resolve a repeated name to its first declaration.
		for _, name := range set.Duplicates() {
			logger.Warn("Attribute is declared more than once.", "kind", kind.String(), "attribute", name)
		}

		// The schema is allowed to carry defaults outside their own
		// enumeration; the editor shows them as-is.
		for _, d := range set.All() {
			if d.HasDefault() && !d.Allows(d.DefaultValue()) {
				logger.Warn("Default value is not one of the allowed values.",
					"kind", kind.String(), "attribute", d.Name, "default", d.DefaultValue(), "allowed", d.AllowedValues)
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	r.frozen = true
	return nil
}
