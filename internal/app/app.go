package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/vk/nodeflowgo/internal/ctxlog"
	"github.com/vk/nodeflowgo/internal/environment"
	"github.com/vk/nodeflowgo/internal/graph"
	"github.com/vk/nodeflowgo/internal/graphsync"
	"github.com/vk/nodeflowgo/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	registry   *registry.Registry
	env        *environment.Environment
	graph      *graph.Graph
	host       *Host
	sync       *graphsync.Publisher
	httpServer *http.Server
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App with its own logger and registry, and the graph loaded.
// Startup problems panic; the entrypoint recovers them.
func NewApp(outW io.Writer, cfg *Config, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if len(modules) == 0 {
		modules = coreModules
	}
	reg := registry.New().Load(modules...)
	logger.Debug("All Go modules registered.", "count", len(modules), "node_types", len(reg.NodeTypes()))

	if err := reg.ValidateRegistry(ctx); err != nil {
		// A node kind disagreeing with its own registration is a programmer error.
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	a := &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		registry: reg,
		host:     NewHost(cfg.WorldTime, cfg.Position),
	}
	if err := a.load(ctx); err != nil {
		panic(err)
	}
	return a
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Graph returns the loaded graph.
func (a *App) Graph() *graph.Graph {
	return a.graph
}

// Host returns the simulated world the graph acts on.
func (a *App) Host() *Host {
	return a.host
}
