package document

import (
	"maps"
	"slices"

	"github.com/vk/attrinspect/internal/attrschema"
)

// edgeKeyAttr is the attribute Graphviz uses to tell multi-edges apart. It
// cannot be changed once an edge exists.
const edgeKeyAttr = "key"

// Graph is a diagram with root attribute tables per component kind.
type Graph struct {
	name      string
	directed  bool
	strict    bool
	root      map[attrschema.Kind]map[string]string
	nodes     []*Node
	nodeIndex map[string]*Node
	edges     []*Edge
	subgraphs []*Subgraph
}

// Node is a named vertex with its own attributes.
type Node struct {
	graph *Graph
	name  string
	attrs map[string]string
}

// Edge connects two nodes and carries its own attributes.
type Edge struct {
	graph *Graph
	tail  string
	head  string
	attrs map[string]string
}

// Subgraph records a named subgraph and its graph attributes.
type Subgraph struct {
	Name  string
	Attrs map[string]string
}

// NewGraph creates an empty graph.
func NewGraph(name string, directed bool) *Graph {
	g := &Graph{
		name:      name,
		directed:  directed,
		root:      make(map[attrschema.Kind]map[string]string, 3),
		nodeIndex: make(map[string]*Node),
	}
	for _, kind := range attrschema.Kinds() {
		g.root[kind] = make(map[string]string)
	}
	return g
}

// Name returns the graph identifier.
func (g *Graph) Name() string { return g.name }

// Directed reports whether the graph is a digraph.
func (g *Graph) Directed() bool { return g.directed }

// Strict reports whether the graph forbids multi-edges.
func (g *Graph) Strict() bool { return g.strict }

// Attr returns the root attribute name of kind and whether it is declared.
func (g *Graph) Attr(kind attrschema.Kind, name string) (string, bool) {
	table, ok := g.root[kind]
	if !ok {
		return "", false
	}
	value, ok := table[name]
	return value, ok
}

// SetAttr sets a root attribute of kind, declaring it if needed. Unknown
// kinds are ignored.
func (g *Graph) SetAttr(kind attrschema.Kind, name, value string) {
	if table, ok := g.root[kind]; ok {
		table[name] = value
	}
}

// DeleteAttr removes a root attribute of kind.
func (g *Graph) DeleteAttr(kind attrschema.Kind, name string) {
	if table, ok := g.root[kind]; ok {
		delete(table, name)
	}
}

// AttrNames lists the declared root attributes of kind, sorted.
func (g *Graph) AttrNames(kind attrschema.Kind) []string {
	return slices.Sorted(maps.Keys(g.root[kind]))
}

// declare makes name known at the root of kind with an empty default.
func (g *Graph) declare(kind attrschema.Kind, name string) {
	if _, ok := g.root[kind][name]; !ok {
		g.SetAttr(kind, name, "")
	}
}

// AddNode adds a node, or merges attrs into an existing node of that name.
func (g *Graph) AddNode(name string, attrs map[string]string) *Node {
	n, ok := g.nodeIndex[name]
	if !ok {
		n = &Node{graph: g, name: name, attrs: make(map[string]string)}
		g.nodeIndex[name] = n
		g.nodes = append(g.nodes, n)
	}
	for k, v := range attrs {
		n.SetAttr(k, v)
	}
	return n
}

// Node returns the node called name.
func (g *Graph) Node(name string) (*Node, bool) {
	n, ok := g.nodeIndex[name]
	return n, ok
}

// Nodes returns the nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	return slices.Clone(g.nodes)
}

// AddEdge adds an edge between tail and head, creating missing endpoints.
func (g *Graph) AddEdge(tail, head string, attrs map[string]string) *Edge {
	g.AddNode(tail, nil)
	g.AddNode(head, nil)
	e := &Edge{graph: g, tail: tail, head: head, attrs: make(map[string]string)}
	for k, v := range attrs {
		if k == edgeKeyAttr {
			e.attrs[k] = v
			continue
		}
		e.SetAttr(k, v)
	}
	g.edges = append(g.edges, e)
	return e
}

// Edges returns the edges in insertion order.
func (g *Graph) Edges() []*Edge {
	return slices.Clone(g.edges)
}

// Subgraphs returns the recorded subgraphs.
func (g *Graph) Subgraphs() []*Subgraph {
	return slices.Clone(g.subgraphs)
}

func (g *Graph) subgraph(name string) *Subgraph {
	for _, sg := range g.subgraphs {
		if sg.Name == name {
			return sg
		}
	}
	sg := &Subgraph{Name: name, Attrs: make(map[string]string)}
	g.subgraphs = append(g.subgraphs, sg)
	return sg
}

// Name returns the node identifier.
func (n *Node) Name() string { return n.name }

// Attr returns the node's own value for name, falling back to the root
// node default.
func (n *Node) Attr(name string) (string, bool) {
	if v, ok := n.attrs[name]; ok {
		return v, true
	}
	return n.graph.Attr(attrschema.KindNode, name)
}

// SetAttr sets a node attribute.
func (n *Node) SetAttr(name, value string) {
	n.graph.declare(attrschema.KindNode, name)
	n.attrs[name] = value
}

// Attrs returns a copy of the node's own attributes.
func (n *Node) Attrs() map[string]string {
	return maps.Clone(n.attrs)
}

// Tail returns the name of the edge's source node.
func (e *Edge) Tail() string { return e.tail }

// Head returns the name of the edge's target node.
func (e *Edge) Head() string { return e.head }

// Attr returns the edge's own value for name, falling back to the root edge
// default.
func (e *Edge) Attr(name string) (string, bool) {
	if v, ok := e.attrs[name]; ok {
		return v, true
	}
	return e.graph.Attr(attrschema.KindEdge, name)
}

// SetAttr sets an edge attribute. Attempts to modify "key" are silently
// ignored.
func (e *Edge) SetAttr(name, value string) {
	if name == edgeKeyAttr {
		return
	}
	e.graph.declare(attrschema.KindEdge, name)
	e.attrs[name] = value
}

// Attrs returns a copy of the edge's own attributes.
func (e *Edge) Attrs() map[string]string {
	return maps.Clone(e.attrs)
}
