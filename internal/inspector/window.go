package inspector

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/vk/attrinspect/internal/attrschema"
	"github.com/vk/attrinspect/internal/ctxlog"
	"github.com/vk/attrinspect/internal/document"
	"github.com/vk/attrinspect/internal/registry"
)

const (
	defaultTitle = "Attributes"
	titlePrefix  = "Attributes of "
)

// Tab is one page of the property grid.
type Tab struct {
	Kind  attrschema.Kind
	Title string
}

var tabs = []Tab{
	{Kind: attrschema.KindGraph, Title: "Graph Attributes"},
	{Kind: attrschema.KindNode, Title: "Node Attributes"},
	{Kind: attrschema.KindEdge, Title: "Edge Attributes"},
}

// Row is one property of the grid.
type Row struct {
	Descriptor *attrschema.Descriptor
	// Value is the bound value, or the descriptor default when the graph
	// does not set the attribute.
	Value string
	// Explicit is true when the graph sets a non-empty value.
	Explicit bool
}

// Window is the inspector window. All methods are safe for concurrent use:
// change notifications may arrive from feed goroutines.
type Window struct {
	logger *slog.Logger
	reg    *registry.Registry

	mu          sync.Mutex
	title       string
	doc         *document.Document
	graph       *document.Graph
	active      attrschema.Kind
	visible     bool
	unsubscribe func()
	onChange    func()
}

// New creates the window over the descriptor sets in reg, subscribes to
// ctrl and inspects the current document right away. The registry must be
// fully populated: the tabs read their descriptor sets from it.
func New(ctx context.Context, reg *registry.Registry, ctrl *document.Controller) *Window {
	w := &Window{
		logger: ctxlog.FromContext(ctx).With("component", "inspector"),
		reg:    reg,
		title:  defaultTitle,
		active: attrschema.KindGraph,
	}
	w.unsubscribe = ctrl.Subscribe(w.inspect)
	w.inspect(ctrl.Current())
	return w
}

// inspect binds the window to doc when it exposes a graph.
func (w *Window) inspect(doc *document.Document) {
	graph := doc.Graph()
	if graph == nil {
		w.logger.Debug("Current document has no graph, keeping the previous binding.")
		return
	}

	w.mu.Lock()
	w.doc = doc
	w.graph = graph
	w.title = titlePrefix + doc.Name()
	w.mu.Unlock()

	w.logger.Debug("Inspecting document.", "document", doc.Name())
	w.changed()
}

// OnChange registers fn to be called after every visible change. Only one
// callback is kept.
func (w *Window) OnChange(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

func (w *Window) changed() {
	w.mu.Lock()
	fn := w.onChange
	w.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Detach stops following the document controller.
func (w *Window) Detach() {
	w.mu.Lock()
	unsubscribe := w.unsubscribe
	w.unsubscribe = nil
	w.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
}

// Title returns the window title.
func (w *Window) Title() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.title
}

// Document returns the inspected document, or nil.
func (w *Window) Document() *document.Document {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.doc
}

// Tabs returns the grid pages in display order.
func (w *Window) Tabs() []Tab {
	return slices.Clone(tabs)
}

// ActiveTab returns the selected page.
func (w *Window) ActiveTab() attrschema.Kind {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active
}

// SelectTab switches to the page of kind.
func (w *Window) SelectTab(kind attrschema.Kind) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %s", attrschema.ErrUnknownKind, kind)
	}
	w.mu.Lock()
	w.active = kind
	w.mu.Unlock()
	w.changed()
	return nil
}

// CycleTab moves the selection by step pages, wrapping around.
func (w *Window) CycleTab(step int) attrschema.Kind {
	w.mu.Lock()
	n := len(tabs)
	idx := (int(w.active) + step%n + n) % n
	w.active = tabs[idx].Kind
	kind := w.active
	w.mu.Unlock()
	w.changed()
	return kind
}

// Rows returns the properties of kind in schema order.
func (w *Window) Rows(kind attrschema.Kind) []Row {
	w.mu.Lock()
	defer w.mu.Unlock()
	graph := w.graph

	descriptors := w.reg.Set(kind).All()
	rows := make([]Row, 0, len(descriptors))
	for _, d := range descriptors {
		row := Row{Descriptor: d, Value: d.DefaultValue()}
		if graph != nil {
			if v, ok := graph.Attr(kind, d.Name); ok && v != "" {
				row.Value = v
				row.Explicit = true
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Undescribed returns root attributes of kind set on the graph that the
// schema does not describe.
func (w *Window) Undescribed(kind attrschema.Kind) []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	graph := w.graph
	if graph == nil {
		return nil
	}

	var names []string
	for _, name := range graph.AttrNames(kind) {
		if _, ok := w.reg.Lookup(kind, name); !ok {
			names = append(names, name)
		}
	}
	return names
}

// SetValue sets an attribute of the inspected graph. Closed-choice
// attributes only accept their allowed values.
func (w *Window) SetValue(kind attrschema.Kind, name, value string) error {
	d, ok := w.reg.Lookup(kind, name)
	if !ok {
		return fmt.Errorf("%w: %s attribute %q", ErrUnknownProperty, kind, name)
	}
	if !d.Allows(value) {
		return &InvalidValueError{Kind: kind, Name: name, Value: value, Allowed: d.AllowedValues}
	}

	w.mu.Lock()
	graph := w.graph
	if graph != nil {
		graph.SetAttr(kind, name, value)
	}
	w.mu.Unlock()
	if graph == nil {
		return ErrNoGraph
	}

	w.logger.Debug("Attribute set.", "kind", kind.String(), "attribute", name, "value", value)
	w.changed()
	return nil
}

// ResetValue removes the graph's value so the default applies again.
func (w *Window) ResetValue(kind attrschema.Kind, name string) error {
	if _, ok := w.reg.Lookup(kind, name); !ok {
		return fmt.Errorf("%w: %s attribute %q", ErrUnknownProperty, kind, name)
	}

	w.mu.Lock()
	graph := w.graph
	if graph != nil {
		graph.DeleteAttr(kind, name)
	}
	w.mu.Unlock()
	if graph == nil {
		return ErrNoGraph
	}

	w.logger.Debug("Attribute reset.", "kind", kind.String(), "attribute", name)
	w.changed()
	return nil
}

// CycleValue steps a closed-choice attribute through its allowed values and
// returns the new value. The step starts from the current value, or from the
// default when the current value is not in the list.
func (w *Window) CycleValue(kind attrschema.Kind, name string, step int) (string, error) {
	d, ok := w.reg.Lookup(kind, name)
	if !ok {
		return "", fmt.Errorf("%w: %s attribute %q", ErrUnknownProperty, kind, name)
	}
	if !d.ClosedChoice() || len(d.AllowedValues) == 0 {
		return "", fmt.Errorf("%s attribute %q is free-form", kind, name)
	}

	current := d.DefaultValue()
	for _, row := range w.Rows(kind) {
		if row.Descriptor == d {
			current = row.Value
			break
		}
	}

	n := len(d.AllowedValues)
	idx := slices.Index(d.AllowedValues, current)
	switch {
	case idx < 0 && step >= 0:
		idx = 0
	case idx < 0:
		idx = n - 1
	default:
		idx = (idx + step%n + n) % n
	}

	value := d.AllowedValues[idx]
	return value, w.SetValue(kind, name, value)
}

// Show makes the window visible.
func (w *Window) Show() {
	w.setVisible(true)
}

// Close hides the window. It is never destroyed, so showing it again is
// cheap.
func (w *Window) Close() {
	w.setVisible(false)
}

// Toggle flips visibility and returns the new state.
func (w *Window) Toggle() bool {
	w.mu.Lock()
	visible := !w.visible
	w.mu.Unlock()
	w.setVisible(visible)
	return visible
}

// Visible reports whether the window is shown.
func (w *Window) Visible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.visible
}

func (w *Window) setVisible(visible bool) {
	w.mu.Lock()
	w.visible = visible
	w.mu.Unlock()
	w.changed()
}
