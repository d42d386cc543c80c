package document

import "path/filepath"

// Document is an open diagram. Graph may be nil for documents that carry
// no diagram; the inspector ignores those.
type Document struct {
	name  string
	path  string
	graph *Graph
}

// New creates a document.
func New(name, path string, graph *Graph) *Document {
	if name == "" && path != "" {
		name = filepath.Base(path)
	}
	return &Document{name: name, path: path, graph: graph}
}

// Name returns the document display name.
func (d *Document) Name() string { return d.name }

// Path returns the file the document was read from, if any.
func (d *Document) Path() string { return d.path }

// Graph returns the document's graph, or nil.
func (d *Document) Graph() *Graph {
	if d == nil {
		return nil
	}
	return d.graph
}
