// Package testutil provides shared fixtures and helpers for the package
// tests: a sample attribute schema, a sample DOT document, a thread-safe log
// buffer and a context carrying a debug logger.
package testutil
