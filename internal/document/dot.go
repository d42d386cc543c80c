package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/awalterschulze/gographviz"
	"github.com/awalterschulze/gographviz/ast"
	"github.com/vk/attrinspect/internal/attrschema"
)

// LoadDOT reads a DOT file into a document named after the file.
func LoadDOT(path string) (*Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}
	doc, err := ParseDOT(filepath.Base(path), src)
	if err != nil {
		return nil, fmt.Errorf("failed to load document %s: %w", path, err)
	}
	doc.path = path
	return doc, nil
}

// ParseDOT parses DOT source into a document.
func ParseDOT(name string, src []byte) (*Document, error) {
	tree, err := gographviz.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DOT: %w", err)
	}

	b := &dotBuilder{}
	if err := gographviz.Analyse(tree, b); err != nil {
		return nil, fmt.Errorf("failed to analyse DOT: %w", err)
	}
	if b.graph == nil {
		b.graph = NewGraph(b.name, b.directed)
	}

	// The analyser folds node and edge default statements into the nodes and
	// edges themselves; the root tables come from the top-level statements.
	for _, stmt := range tree.StmtList {
		switch s := stmt.(type) {
		case ast.NodeAttrs:
			for k, v := range ast.AttrList(s).GetMap() {
				b.graph.SetAttr(attrschema.KindNode, k, unquote(v))
			}
		case ast.EdgeAttrs:
			for k, v := range ast.AttrList(s).GetMap() {
				b.graph.SetAttr(attrschema.KindEdge, k, unquote(v))
			}
		}
	}

	return New(name, "", b.graph), nil
}

// dotBuilder receives the analysed DOT graph and builds a Graph from it.
type dotBuilder struct {
	name     string
	directed bool
	strict   bool
	graph    *Graph
}

var _ gographviz.Interface = (*dotBuilder)(nil)

func (b *dotBuilder) ensure() *Graph {
	if b.graph == nil {
		b.graph = NewGraph(b.name, b.directed)
		b.graph.strict = b.strict
	}
	return b.graph
}

func (b *dotBuilder) SetStrict(strict bool) error {
	b.strict = strict
	if b.graph != nil {
		b.graph.strict = strict
	}
	return nil
}

func (b *dotBuilder) SetDir(directed bool) error {
	b.directed = directed
	if b.graph != nil {
		b.graph.directed = directed
	}
	return nil
}

func (b *dotBuilder) SetName(name string) error {
	b.name = unquote(name)
	if b.graph != nil {
		b.graph.name = b.name
	}
	return nil
}

func (b *dotBuilder) AddPortEdge(src, srcPort, dst, dstPort string, directed bool, attrs map[string]string) error {
	b.ensure().AddEdge(unquote(src), unquote(dst), unquoteAll(attrs))
	return nil
}

func (b *dotBuilder) AddEdge(src, dst string, directed bool, attrs map[string]string) error {
	return b.AddPortEdge(src, "", dst, "", directed, attrs)
}

func (b *dotBuilder) AddNode(parentGraph string, name string, attrs map[string]string) error {
	b.ensure().AddNode(unquote(name), unquoteAll(attrs))
	return nil
}

func (b *dotBuilder) AddAttr(parentGraph string, field, value string) error {
	g := b.ensure()
	if unquote(parentGraph) == g.name {
		g.SetAttr(attrschema.KindGraph, field, unquote(value))
		return nil
	}
	g.subgraph(unquote(parentGraph)).Attrs[field] = unquote(value)
	return nil
}

func (b *dotBuilder) AddSubGraph(parentGraph string, name string, attrs map[string]string) error {
	sg := b.ensure().subgraph(unquote(name))
	for k, v := range attrs {
		sg.Attrs[k] = unquote(v)
	}
	return nil
}

func (b *dotBuilder) String() string {
	if b.graph == nil {
		return ""
	}
	return b.graph.name
}

// unquote strips DOT string quotes and unescapes embedded quotes.
func unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return strings.ReplaceAll(s[1:len(s)-1], `\"`, `"`)
	}
	return s
}

func unquoteAll(attrs map[string]string) map[string]string {
	if len(attrs) == 0 {
		return nil
	}
	out := make(map[string]string, len(attrs))
	for k, v := range attrs {
		out[k] = unquote(v)
	}
	return out
}
