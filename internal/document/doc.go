// Package document provides the diagrams the inspector looks at and the
// controller that tracks which one is current.
//
// A Document exposes a single Graph. The graph keeps one root attribute table
// per component kind: the graph's own attributes and the default attributes
// of its nodes and edges. Those tables are what the inspector edits. Nodes
// and edges keep their own attribute maps; setting an attribute on one of
// them declares the attribute at the root with an empty default, the way
// Graphviz does.
//
// The Controller is the source of "current document changed" notifications.
// Feeds such as the file Watcher replace the current document; subscribers
// re-pull whatever they need from it.
package document
