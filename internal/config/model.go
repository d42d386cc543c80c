package config

import (
	"context"
	"fmt"
	"strings"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads configuration from the given files or directories, merging
	// them in order so that later sources override earlier ones.
	Load(ctx context.Context, paths ...string) (*Model, error)
}

// Model is the unified, format-agnostic representation of the inspector
// configuration.
type Model struct {
	// SchemaPath is the attribute schema file. Empty means the default
	// attributes.xml next to the executable.
	SchemaPath string
	// DocumentPath is the DOT document opened at startup, if any.
	DocumentPath string
	Log          Log
	Window       Window
	Notify       Notify
	// Sources lists the files the model was read from, in merge order.
	Sources []string
}

// Log selects the logger level and output format.
type Log struct {
	Level  string
	Format string
}

// Window holds the initial state of the inspector window.
type Window struct {
	Tab    string
	Hidden bool
	Watch  bool
}

// Notify configures the socket.io document feed.
type Notify struct {
	URL                string
	Namespace          string
	InsecureSkipVerify bool
}

// Enabled reports whether a feed endpoint is configured.
func (n Notify) Enabled() bool {
	return n.URL != ""
}

// NewModel returns a model with the built-in defaults.
func NewModel() *Model {
	return &Model{
		Log:    Log{Level: "info", Format: "text"},
		Window: Window{Tab: "graph"},
		Notify: Notify{Namespace: "/"},
	}
}

// Validate checks enumerated settings.
func (m *Model) Validate() error {
	var errs []string
	switch m.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level %q must be 'debug', 'info', 'warn' or 'error'", m.Log.Level))
	}
	switch m.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("log.format %q must be 'text' or 'json'", m.Log.Format))
	}
	switch strings.ToLower(m.Window.Tab) {
	case "graph", "node", "edge":
	default:
		errs = append(errs, fmt.Sprintf("window.tab %q must be 'graph', 'node' or 'edge'", m.Window.Tab))
	}
	if m.Notify.Namespace != "" && !strings.HasPrefix(m.Notify.Namespace, "/") {
		errs = append(errs, fmt.Sprintf("notify.namespace %q must start with '/'", m.Notify.Namespace))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
