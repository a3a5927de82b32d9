// Package app wires the registry, the environment and a graph document into a
// runnable headless host. It owns the evaluation loop, the simulated server
// world the nodes act on, the health check endpoint and the optional graph
// sync connection, decoupled from any specific entrypoint like a CLI.
package app
