package app

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/nodeflowgo/internal/ctxlog"
	"github.com/vk/nodeflowgo/internal/environment"
	"github.com/vk/nodeflowgo/internal/graph"
)

// load builds the environment and decodes the graph document.
func (a *App) load(ctx context.Context) error {
	env, err := a.loadEnvironment(ctx)
	if err != nil {
		return err
	}
	a.env = env

	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading graph...", "graph_path", a.config.GraphPath)
	src, err := os.ReadFile(a.config.GraphPath)
	if err != nil {
		return fmt.Errorf("failed to read graph: %w", err)
	}

	g := graph.New(env, a.registry)
	if err := g.Decode(ctx, src, a.config.GraphPath); err != nil {
		return err
	}
	a.graph = g
	logger.Info("📄 Graph loaded", "nodes", len(g.Nodes()), "connections", len(g.Connections()))
	return nil
}

func (a *App) loadEnvironment(ctx context.Context) (*environment.Environment, error) {
	logger := ctxlog.FromContext(ctx)
	if a.config.EnvironmentPath == "" {
		logger.Debug("No environment descriptor given, allowing every registered type.")
		env, err := environment.FromRegistry(a.registry)
		if err != nil {
			return nil, fmt.Errorf("failed to build default environment: %w", err)
		}
		return env, nil
	}

	logger.Debug("Loading environment...", "environment_path", a.config.EnvironmentPath)
	src, err := os.ReadFile(a.config.EnvironmentPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	env, err := environment.DecodeHCL(a.registry, src, a.config.EnvironmentPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("Environment loaded.", "data_types", len(env.AllowedDataTypes()), "node_types", len(env.NodeTypes()))
	return env, nil
}
