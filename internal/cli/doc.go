// Package cli handles command-line argument parsing and validation. It turns
// the arguments into an app.Config and reports usage errors as ExitError.
package cli
