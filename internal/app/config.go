package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vk/attrinspect/internal/attrschema"
	"github.com/vk/attrinspect/internal/config"
)

// Config holds the command line settings for an App instance. Empty strings
// and false booleans mean "not given": the configuration files or the
// built-in defaults apply instead.
type Config struct {
	SchemaPath   string
	DocumentPath string
	ConfigPaths  []string

	Tab    string
	Dump   bool
	Watch  bool
	Hidden bool

	NotifyURL       string
	NotifyNamespace string

	LogFormat string
	LogLevel  string

	// Describe, when set, prints the schema entry of one attribute instead
	// of inspecting a document.
	Describe string
}

// NewConfig validates cfg.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Tab != "" {
		if _, err := attrschema.ParseKind(cfg.Tab); err != nil {
			return nil, fmt.Errorf("invalid tab: %w", err)
		}
	}
	if cfg.Describe != "" && cfg.Dump {
		return nil, errors.New("describe and dump cannot be combined")
	}
	return &cfg, nil
}

// apply overlays the command line settings on the loaded model.
func (c *Config) apply(m *config.Model) {
	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&m.SchemaPath, c.SchemaPath)
	override(&m.DocumentPath, c.DocumentPath)
	override(&m.Window.Tab, strings.ToLower(c.Tab))
	override(&m.Notify.URL, c.NotifyURL)
	override(&m.Notify.Namespace, c.NotifyNamespace)
	override(&m.Log.Level, c.LogLevel)
	override(&m.Log.Format, c.LogFormat)
	m.Window.Watch = m.Window.Watch || c.Watch
	m.Window.Hidden = m.Window.Hidden || c.Hidden
}
