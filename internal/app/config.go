package app

import (
	"errors"
	"time"

	"github.com/vk/nodeflowgo/modules/world"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	GraphPath       string // hcl or json graph document
	EnvironmentPath string // optional environment descriptor

	LogFormat       string
	LogLevel        string
	HealthcheckPort int

	// Interval re-evaluates the graph on a timer. Zero evaluates once.
	Interval  time.Duration
	WorldTime int64
	Position  world.BlockPos

	SyncURL       string
	SyncNamespace string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.GraphPath == "" {
		return nil, errors.New("GraphPath is a required configuration field and cannot be empty")
	}
	if cfg.Interval < 0 {
		return nil, errors.New("Interval cannot be negative")
	}
	if cfg.WorldTime < 0 {
		return nil, errors.New("WorldTime cannot be negative")
	}
	if cfg.SyncNamespace != "" && cfg.SyncURL == "" {
		return nil, errors.New("SyncNamespace requires SyncURL")
	}
	if cfg.SyncURL != "" && cfg.SyncNamespace == "" {
		cfg.SyncNamespace = "/"
	}
	return &cfg, nil
}
