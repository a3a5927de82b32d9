package app

import (
	"context"
	"fmt"
	"time"

	"github.com/vk/nodeflowgo/internal/ctxlog"
	"github.com/vk/nodeflowgo/internal/evalerr"
	"github.com/vk/nodeflowgo/internal/graphsync"
)

// Run evaluates the graph once, or on every tick of the configured interval
// until ctx is cancelled. In single-pass mode a failed pass is returned as an
// error; in interval mode failures are only logged.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	a.startHealthcheckServer(ctx)
	defer a.closeHealthcheckServer(ctx)

	if a.config.SyncURL != "" {
		p, err := graphsync.Dial(ctx, graphsync.Config{URL: a.config.SyncURL, Namespace: a.config.SyncNamespace})
		if err != nil {
			return fmt.Errorf("failed to connect graph sync: %w", err)
		}
		a.sync = p
		defer p.Close()
	}

	if a.config.Interval == 0 {
		if errs := a.Pass(ctx); len(errs) > 0 {
			return fmt.Errorf("evaluation failed: %w", evalerr.Join(errs))
		}
		a.logger.Info("🏁 Evaluation finished.")
		return nil
	}

	a.logger.Info("🚀 Evaluating on a timer", "interval", a.config.Interval)
	ticker := time.NewTicker(a.config.Interval)
	defer ticker.Stop()
	for {
		a.Pass(ctx)
		select {
		case <-ctx.Done():
			a.logger.Info("🏁 Evaluation loop stopped.")
			return nil
		case <-ticker.C:
		}
	}
}

// Pass runs a single evaluation. Messages sent by nodes are delivered only if
// the pass succeeds. The world clock advances by one tick either way.
func (a *App) Pass(ctx context.Context) []*evalerr.Error {
	logger := ctxlog.FromContext(ctx)

	errs := a.graph.Evaluate(ctx, a.host.Values(a.registry))
	if len(errs) == 0 {
		delivered := a.host.Commit(ctx)
		logger.Debug("Pass succeeded.", "tick", a.host.Time(), "messages", delivered)
	} else {
		dropped := a.host.Discard()
		for _, err := range errs {
			logger.Warn("Pass failed.", "tick", a.host.Time(), "kind", err.Kind.String(), "user_caused", err.Kind.IsUserCaused(), "error", err.Error(), "dropped_messages", dropped)
		}
	}
	a.host.Tick()

	if a.sync != nil {
		if err := a.sync.Publish(ctx, a.graph, errs); err != nil {
			logger.Error("Failed to publish graph snapshot", "error", err)
		}
	}
	return errs
}
