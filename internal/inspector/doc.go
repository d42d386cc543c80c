// Package inspector implements the attribute inspector window: a property
// grid over the root attributes of the current document's graph, with one
// tab per component kind.
//
// The window is constructed from a populated registry and subscribes to the
// document controller. Each "current document changed" notification re-pulls
// the document's graph. Closing the window only hides it.
package inspector
