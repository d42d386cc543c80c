// Package render writes the non-interactive reports: a per-tab dump of the
// inspector window and the describe view of a single schema attribute.
package render
