package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/muesli/termenv"
	"github.com/vk/attrinspect/internal/attrschema"
	"github.com/vk/attrinspect/internal/registry"
)

// ErrNotDeclared is returned by Describe for names with no top-level
// declaration in the schema.
var ErrNotDeclared = errors.New("attribute is not declared in the schema")

const highlightStyle = "monokai"

// Describe prints the schema declaration of name, highlighted as XML, followed
// by the descriptor of every kind that uses it.
func (r *Report) Describe(schema *attrschema.Schema, reg *registry.Registry, name string) error {
	decl, ok := schema.Declaration(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotDeclared, name)
	}

	if _, err := fmt.Fprintln(r.out, r.heading(name)); err != nil {
		return err
	}
	if err := quick.Highlight(r.out, decl+"\n", "xml", r.formatter(), highlightStyle); err != nil {
		return fmt.Errorf("failed to highlight declaration of %q: %w", name, err)
	}

	for _, kind := range attrschema.Kinds() {
		d, ok := reg.Lookup(kind, name)
		if !ok {
			continue
		}
		var b strings.Builder
		fmt.Fprintf(&b, "\n%s\n", r.header(kind.String()))
		if d.HasDefault() {
			fmt.Fprintf(&b, "  default: %s\n", d.DefaultValue())
		}
		if d.ClosedChoice() {
			fmt.Fprintf(&b, "  allowed: %s\n", strings.Join(d.AllowedValues, ", "))
		} else {
			b.WriteString("  allowed: any\n")
		}
		if d.HasDescription() {
			for _, p := range strings.Split(d.DescriptionText(), "\r\n") {
				fmt.Fprintf(&b, "  %s\n", p)
			}
		}
		if _, err := fmt.Fprint(r.out, b.String()); err != nil {
			return err
		}
	}
	return nil
}

// formatter picks the chroma terminal formatter matching the color profile.
func (r *Report) formatter() string {
	switch r.profile {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI256:
		return "terminal256"
	case termenv.ANSI:
		return "terminal16"
	default:
		return "noop"
	}
}
