package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/attrinspect/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("attrinspect", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
attrinspect - Inspect and edit the attributes of Graphviz diagrams.

Usage:
  attrinspect [options] [DOCUMENT]
  attrinspect [options] describe NAME

Arguments:
  DOCUMENT
    Path to a DOT file whose graph, node and edge attributes are inspected.
  describe NAME
    Print the schema declaration of attribute NAME and exit.

Options:
`)
		flagSet.PrintDefaults()
	}

	var configPaths stringList
	schemaFlag := flagSet.String("schema", "", "Path to the attribute schema. Defaults to attributes.xml next to the executable.")
	flagSet.Var(&configPaths, "config", "Path to an .hcl config file or directory. Repeatable.")
	tabFlag := flagSet.String("tab", "", "Initial tab: 'graph', 'node' or 'edge'.")
	dumpFlag := flagSet.Bool("dump", false, "Print the attribute tables instead of starting the terminal UI.")
	watchFlag := flagSet.Bool("watch", false, "Reload DOCUMENT when it changes on disk.")
	hiddenFlag := flagSet.Bool("hidden", false, "Start with the inspector window hidden.")
	notifyURLFlag := flagSet.String("notify-url", "", "socket.io endpoint announcing document switches.")
	notifyNSFlag := flagSet.String("notify-namespace", "", "socket.io namespace of the document feed.")
	logFormatFlag := flagSet.String("log-format", "", "Log output format. Options: 'text' or 'json'. Default 'text'.")
	logLevelFlag := flagSet.String("log-level", "", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'. Default 'info'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	var documentPath, describe string
	rest := flagSet.Args()
	switch {
	case len(rest) > 0 && rest[0] == "describe":
		if len(rest) != 2 {
			return nil, false, &ExitError{Code: 2, Message: "describe takes exactly one attribute name"}
		}
		describe = rest[1]
	case len(rest) == 1:
		documentPath = rest[0]
	case len(rest) > 1:
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("expected at most one document, got %d", len(rest))}
	}
	slog.Debug("Positional arguments determined.", "document", documentPath, "describe", describe)

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "" && logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "", "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		SchemaPath:      *schemaFlag,
		DocumentPath:    documentPath,
		ConfigPaths:     configPaths,
		Tab:             *tabFlag,
		Dump:            *dumpFlag,
		Watch:           *watchFlag,
		Hidden:          *hiddenFlag,
		NotifyURL:       *notifyURLFlag,
		NotifyNamespace: *notifyNSFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		Describe:        describe,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
