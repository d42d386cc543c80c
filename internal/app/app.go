package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/vk/attrinspect/internal/attrschema"
	"github.com/vk/attrinspect/internal/config"
	"github.com/vk/attrinspect/internal/ctxlog"
	"github.com/vk/attrinspect/internal/document"
	"github.com/vk/attrinspect/internal/inspector"
	"github.com/vk/attrinspect/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logW     io.Writer
	logger   *slog.Logger
	cfg      *Config
	config   *config.Model
	schema   *attrschema.Schema
	registry *registry.Registry
	ctrl     *document.Controller
	window   *inspector.Window

	newScreen  func() (tcell.Screen, error)
	isTerminal func(io.Writer) bool
}

// NewApp is the constructor for the main application. Reports go to outW and
// logs to logW. Fatal startup errors (unreadable configuration or schema, a
// schema that fails registry validation) panic; the CLI recovers them.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader) *App {
	// 1. Logger, from the command line until the configuration is known.
	logger := newLogger(orDefault(cfg.LogLevel, defaultLogLevel), orDefault(cfg.LogFormat, defaultLogFormat), logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	// 2. Configuration files, with command line settings on top.
	model, err := loader.Load(ctx, cfg.ConfigPaths...)
	if err != nil {
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	cfg.apply(model)
	if err := model.Validate(); err != nil {
		panic(err)
	}
	if model.Window.Watch && model.DocumentPath == "" {
		panic(errors.New("watch requires a document path"))
	}
	if model.Log.Level != orDefault(cfg.LogLevel, defaultLogLevel) || model.Log.Format != orDefault(cfg.LogFormat, defaultLogFormat) {
		logger = newLogger(model.Log.Level, model.Log.Format, logW)
		ctx = ctxlog.WithLogger(context.Background(), logger)
		logger.Debug("Logger reconfigured from configuration files.", "level", model.Log.Level, "format", model.Log.Format)
	}
	logger.Debug("Configuration loaded.", "sources", model.Sources)

	// 3. Attribute schema.
	schemaPath := model.SchemaPath
	if schemaPath == "" {
		schemaPath = attrschema.DefaultPath(executableDir())
	}
	schema, err := attrschema.Load(schemaPath)
	if err != nil {
		panic(fmt.Errorf("failed to load attribute schema: %w", err))
	}
	logger.Debug("Attribute schema loaded.", "path", schemaPath, "declarations", schema.DeclarationCount())

	// 4. Descriptor registry.
	reg := registry.New()
	if err := reg.PopulateFromSchema(ctx, schema); err != nil {
		panic(err)
	}
	if err := reg.Validate(ctx); err != nil {
		// The schema does not describe a usable attribute set.
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	// 5. Document controller.
	ctrl := document.NewController()

	// 6. Inspector window, after the registry it reads from.
	window := inspector.New(ctx, reg, ctrl)
	if kind, err := attrschema.ParseKind(model.Window.Tab); err == nil {
		_ = window.SelectTab(kind)
	}
	if !model.Window.Hidden {
		window.Show()
	}
	logger.Debug("Inspector window created.", "tab", model.Window.Tab, "visible", window.Visible())

	return &App{
		outW:       outW,
		logW:       logW,
		logger:     logger,
		cfg:        cfg,
		config:     model,
		schema:     schema,
		registry:   reg,
		ctrl:       ctrl,
		window:     window,
		newScreen:  tcell.NewScreen,
		isTerminal: isTerminal,
	}
}

// executableDir is the application base directory holding attributes.xml.
func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Window returns the inspector window.
func (a *App) Window() *inspector.Window {
	return a.window
}

// Controller returns the document controller.
func (a *App) Controller() *document.Controller {
	return a.ctrl
}

// Config returns the effective configuration.
func (a *App) Config() *config.Model {
	return a.config
}
