// Package graphsync ships graph snapshots to a socket.io endpoint. Every
// publish re-sends the full document; there is no delta encoding.
package graphsync

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"time"

	"github.com/vk/nodeflowgo/internal/ctxlog"
	"github.com/vk/nodeflowgo/internal/evalerr"
	"github.com/vk/nodeflowgo/internal/graph"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Event is the socket.io event a snapshot is emitted under.
const Event = "graph_sync"

// ConnectTimeout bounds how long Dial waits for the handshake.
const ConnectTimeout = 15 * time.Second

// Config addresses the sync endpoint.
type Config struct {
	URL                string
	Namespace          string
	InsecureSkipVerify bool
}

// Payload is one snapshot: the graph document, the environment descriptor as
// cty JSON, and the errors of the pass that produced it.
type Payload struct {
	Graph       string   `json:"graph"`
	Environment string   `json:"environment"`
	Errors      []string `json:"errors"`
	Nodes       int      `json:"nodes"`
	Connections int      `json:"connections"`
}

// BuildPayload snapshots g together with the result of its last pass.
func BuildPayload(g *graph.Graph, errs []*evalerr.Error) (Payload, error) {
	env, err := g.Env().MarshalJSON()
	if err != nil {
		return Payload{}, fmt.Errorf("failed to encode environment: %w", err)
	}
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, e.Error())
	}
	return Payload{
		Graph:       string(g.Encode()),
		Environment: string(env),
		Errors:      messages,
		Nodes:       len(g.Nodes()),
		Connections: len(g.Connections()),
	}, nil
}

// Publisher emits snapshots over an established connection.
type Publisher struct {
	emit  func(event string, payload any)
	close func()
}

// NewPublisher wraps an arbitrary emit function, e.g. a socket already
// managed by the caller.
func NewPublisher(emit func(event string, payload any)) *Publisher {
	return &Publisher{emit: emit, close: func() {}}
}

// Dial connects to cfg.URL and waits for the socket.io handshake.
func Dial(ctx context.Context, cfg Config) (*Publisher, error) {
	logger := ctxlog.FromContext(ctx).With("component", "graphsync", "url", cfg.URL)

	parsedURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse sync URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("sync URL '%s' must be absolute", cfg.URL)
	}

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	if cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	connected := make(chan error, 1)
	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(cfg.Namespace, opts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("🔌 Graph sync connected", "sid", io.Id())
		signal(connected, nil)
	})
	io.Once(types.EventName("connect_error"), func(args ...any) {
		signal(connected, connectError(args...))
	})

	logger.Debug("Initiating connection...")
	io.Connect()

	select {
	case err := <-connected:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection")
	case <-time.After(ConnectTimeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", ConnectTimeout)
	}

	return &Publisher{
		emit: func(event string, payload any) { io.Emit(event, payload) },
		close: func() {
			logger.Debug("Disconnecting graph sync.", "sid", io.Id())
			io.Disconnect()
		},
	}, nil
}

// connectError turns the arguments of a connect_error event into an error.
func connectError(args ...any) error {
	if len(args) == 0 {
		return fmt.Errorf("connect_error without details")
	}
	if err, ok := args[0].(error); ok && err != nil {
		return err
	}
	return fmt.Errorf("%v", args[0])
}

// signal reports the first handshake outcome; later ones are dropped.
func signal(ch chan<- error, err error) {
	select {
	case ch <- err:
	default:
	}
}

// Publish emits a snapshot of g and the errors of its last pass.
func (p *Publisher) Publish(ctx context.Context, g *graph.Graph, errs []*evalerr.Error) error {
	payload, err := BuildPayload(g, errs)
	if err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("Publishing graph snapshot.", "event", Event, "nodes", payload.Nodes, "connections", payload.Connections, "errors", len(payload.Errors))
	p.emit(Event, payload)
	return nil
}

func (p *Publisher) Close() {
	p.close()
}
