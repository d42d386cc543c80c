package inspector

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vk/attrinspect/internal/attrschema"
)

var (
	// ErrUnknownProperty is returned for attributes the schema does not describe.
	ErrUnknownProperty = errors.New("unknown property")
	// ErrNoGraph is returned when editing while no graph is bound.
	ErrNoGraph = errors.New("no graph is being inspected")
)

// InvalidValueError reports a value outside a closed choice.
type InvalidValueError struct {
	Kind    attrschema.Kind
	Name    string
	Value   string
	Allowed []string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %q for %s attribute %q: must be one of %s",
		e.Value, e.Kind, e.Name, strings.Join(e.Allowed, ", "))
}
