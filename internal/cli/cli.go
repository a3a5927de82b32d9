package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/nodeflowgo/internal/app"
	"github.com/vk/nodeflowgo/modules/world"
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

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Parse processes command-line arguments. It returns a populated Config, a
// boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("nodeflow", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
NodeFlow - Evaluate node graphs against a headless host world.

Usage:
  nodeflow [options] [GRAPH_PATH]

Arguments:
  GRAPH_PATH
    Path to a graph document (.hcl, or .json in HCL JSON syntax).

Options:
`)
		flagSet.PrintDefaults()
	}

	graphFlag := flagSet.String("graph", "", "Path to the graph document.")
	gFlag := flagSet.String("g", "", "Path to the graph document (shorthand).")
	envFlag := flagSet.String("environment", "", "Path to an environment descriptor. Defaults to every built-in type.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	intervalFlag := flagSet.Duration("interval", 0, "Re-evaluate the graph on this interval. 0 evaluates once.")
	worldTimeFlag := flagSet.Int64("world-time", 0, "Initial world clock in ticks.")
	positionFlag := flagSet.String("position", "0,64,0", "Block position of the host, as x,y,z.")
	syncURLFlag := flagSet.String("sync-url", "", "socket.io endpoint receiving graph snapshots after every pass.")
	syncNamespaceFlag := flagSet.String("sync-namespace", "", "socket.io namespace for graph snapshots.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, usageError("%s", err.Error())
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *graphFlag != "" {
		path = *graphFlag
	} else if *gFlag != "" {
		path = *gFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Graph path determined.", "path", path)

	if path == "" {
		slog.Debug("No graph path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, usageError("invalid log-format: must be 'text' or 'json'")
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	pos, err := world.ParseBlockPos(*positionFlag)
	if err != nil {
		return nil, false, usageError("invalid position: %v", err)
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		GraphPath:       path,
		EnvironmentPath: *envFlag,
		HealthcheckPort: *healthPortFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		Interval:        *intervalFlag,
		WorldTime:       *worldTimeFlag,
		Position:        pos,
		SyncURL:         *syncURLFlag,
		SyncNamespace:   *syncNamespaceFlag,
	})
	if err != nil {
		return nil, false, usageError("%s", err.Error())
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
